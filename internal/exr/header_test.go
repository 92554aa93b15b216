package exr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// --- header fixture builders ---

type testChannel struct {
	name string
	typ  PixelType
}

func chlist(chans ...testChannel) []byte {
	var b bytes.Buffer
	for _, c := range chans {
		b.WriteString(c.name)
		b.WriteByte(0)
		binary.Write(&b, binary.LittleEndian, int32(c.typ))
		b.Write([]byte{0, 0, 0, 0})
		binary.Write(&b, binary.LittleEndian, int32(1))
		binary.Write(&b, binary.LittleEndian, int32(1))
	}
	b.WriteByte(0)
	return b.Bytes()
}

func attr(b *bytes.Buffer, name, typ string, value []byte) {
	b.WriteString(name)
	b.WriteByte(0)
	b.WriteString(typ)
	b.WriteByte(0)
	binary.Write(b, binary.LittleEndian, int32(len(value)))
	b.Write(value)
}

func singlePart(chans ...testChannel) []byte {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, uint32(magic))
	binary.Write(&b, binary.LittleEndian, uint32(2))
	attr(&b, "compression", "compression", []byte{3})
	attr(&b, "channels", "chlist", chlist(chans...))
	attr(&b, "lineOrder", "lineOrder", []byte{0})
	b.WriteByte(0)
	// Offset table and pixel data follow; the parser must not care.
	b.Write(make([]byte, 64))
	return b.Bytes()
}

func rgbaChannels() []testChannel {
	return []testChannel{
		{"A", PixelHalf},
		{"B", PixelHalf},
		{"G", PixelHalf},
		{"R", PixelHalf},
		{"albedo.B", PixelHalf},
		{"albedo.G", PixelHalf},
		{"albedo.R", PixelHalf},
		{"diffuse.B", PixelFloat},
		{"diffuse.G", PixelFloat},
		{"diffuse.R", PixelFloat},
		{"lpe.shadow.B", PixelHalf},
		{"lpe.shadow.G", PixelHalf},
		{"lpe.shadow.R", PixelHalf},
		{"sampleCount", PixelFloat},
	}
}

// --- tests ---

func TestParseHeader_SinglePart(t *testing.T) {
	h, err := ParseHeader(bytes.NewReader(singlePart(rgbaChannels()...)))
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Version != 2 || h.Multipart || h.Tiled {
		t.Errorf("header flags = %+v", h)
	}
	chans := h.Channels()
	if len(chans) != 14 {
		t.Fatalf("got %d channels, want 14", len(chans))
	}
	if chans[7].Name != "diffuse.B" || chans[7].Type != PixelFloat {
		t.Errorf("chans[7] = %+v", chans[7])
	}
	if chans[0].XSampling != 1 || chans[0].YSampling != 1 {
		t.Errorf("sampling = %d,%d", chans[0].XSampling, chans[0].YSampling)
	}
}

func TestLayers_DedupAndOrder(t *testing.T) {
	h, err := ParseHeader(bytes.NewReader(singlePart(rgbaChannels()...)))
	if err != nil {
		t.Fatal(err)
	}
	got := Layers(h.Channels())
	want := []string{"A", "B", "G", "R", "albedo", "diffuse", "lpe.shadow", "sampleCount"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Layers = %v, want %v", got, want)
	}
}

func TestLayerName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"diffuse.R", "diffuse"},
		{"lpe.shadow.G", "lpe.shadow"},
		{"A", "A"},
		{".hidden", ".hidden"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LayerName(tt.in); got != tt.want {
			t.Errorf("LayerName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHeader_Multipart(t *testing.T) {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, uint32(magic))
	binary.Write(&b, binary.LittleEndian, uint32(2|flagMultipart))
	attr(&b, "name", "string", []byte("beauty"))
	attr(&b, "channels", "chlist", chlist(testChannel{"R", PixelHalf}, testChannel{"G", PixelHalf}))
	b.WriteByte(0)
	attr(&b, "name", "string", []byte("aovs"))
	attr(&b, "channels", "chlist", chlist(testChannel{"normal.X", PixelFloat}, testChannel{"R", PixelHalf}))
	b.WriteByte(0)
	b.WriteByte(0)

	h, err := ParseHeader(&b)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if !h.Multipart || len(h.Parts) != 2 {
		t.Fatalf("parts = %d multipart = %v", len(h.Parts), h.Multipart)
	}
	if h.Parts[1].Name != "aovs" || h.Parts[1].Channels[0].Part != 1 {
		t.Errorf("second part = %+v", h.Parts[1])
	}
	want := []string{"R", "G", "normal"}
	if got := Layers(h.Channels()); !reflect.DeepEqual(got, want) {
		t.Errorf("Layers = %v, want %v", got, want)
	}
}

func TestParseHeader_Errors(t *testing.T) {
	valid := singlePart(testChannel{"R", PixelHalf})

	noChannels := func() []byte {
		var b bytes.Buffer
		binary.Write(&b, binary.LittleEndian, uint32(magic))
		binary.Write(&b, binary.LittleEndian, uint32(2))
		attr(&b, "compression", "compression", []byte{0})
		b.WriteByte(0)
		return b.Bytes()
	}()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotEXR},
		{"bad magic", append([]byte{1, 2, 3, 4}, valid[4:]...), ErrNotEXR},
		{"truncated attribute", valid[:20], ErrTruncated},
		{"no channels", noChannels, ErrNoChannels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadLayers_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.1001.exr")
	if err := os.WriteFile(path, singlePart(rgbaChannels()...), 0o644); err != nil {
		t.Fatal(err)
	}
	layers, err := ReadLayers(path)
	if err != nil {
		t.Fatalf("ReadLayers: %v", err)
	}
	if len(layers) != 8 {
		t.Errorf("got %d layers: %v", len(layers), layers)
	}
}

func TestReadHeader_MissingFile(t *testing.T) {
	if _, err := ReadHeader(filepath.Join(t.TempDir(), "nope.exr")); err == nil {
		t.Fatal("expected error")
	}
}
