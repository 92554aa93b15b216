package exr

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	magic = 20000630

	flagTiled     = 0x200
	flagLongNames = 0x400
	flagDeep      = 0x800
	flagMultipart = 0x1000

	maxNameLen = 255
	// Guard against corrupt size fields allocating gigabytes.
	maxAttrSize = 64 << 20
)

// ReadHeader opens path and parses its header.
func ReadHeader(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("exr: open %s: %w", path, err)
	}
	defer f.Close()

	h, err := ParseHeader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("exr: %s: %w", path, err)
	}
	return h, nil
}

// ReadLayers returns the de-duplicated layer names stored in path.
func ReadLayers(path string) ([]string, error) {
	h, err := ReadHeader(path)
	if err != nil {
		return nil, err
	}
	return Layers(h.Channels()), nil
}

// ParseHeader reads the magic number, version and every part header from r.
// At least one channels attribute must be present.
func ParseHeader(r io.Reader) (*Header, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	var pre [2]uint32
	if err := binary.Read(br, binary.LittleEndian, &pre); err != nil {
		return nil, ErrNotEXR
	}
	if pre[0] != magic {
		return nil, ErrNotEXR
	}
	h := &Header{
		Version:   int(pre[1] & 0xff),
		Tiled:     pre[1]&flagTiled != 0,
		LongNames: pre[1]&flagLongNames != 0,
		Deep:      pre[1]&flagDeep != 0,
		Multipart: pre[1]&flagMultipart != 0,
	}

	for idx := 0; ; idx++ {
		part, empty, err := readPart(br, idx)
		if err != nil {
			return nil, err
		}
		if empty {
			// A lone terminator ends the part list of a multipart file.
			break
		}
		h.Parts = append(h.Parts, part)
		if !h.Multipart {
			break
		}
	}

	if len(h.Channels()) == 0 {
		return nil, ErrNoChannels
	}
	return h, nil
}

// readPart consumes one attribute table. empty is true when the table had
// no attributes at all.
func readPart(r *bufio.Reader, idx int) (part Part, empty bool, err error) {
	for n := 0; ; n++ {
		name, err := readString(r)
		if err != nil {
			return part, false, err
		}
		if name == "" {
			return part, n == 0, nil
		}
		typ, err := readString(r)
		if err != nil {
			return part, false, err
		}
		var size int32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return part, false, ErrTruncated
		}
		if size < 0 || size > maxAttrSize {
			return part, false, fmt.Errorf("attribute %q: invalid size %d", name, size)
		}
		value := make([]byte, size)
		if _, err := io.ReadFull(r, value); err != nil {
			return part, false, ErrTruncated
		}

		switch {
		case name == "channels" && typ == "chlist":
			chans, err := parseChannelList(value, idx)
			if err != nil {
				return part, false, err
			}
			part.Channels = chans
		case name == "name" && typ == "string":
			part.Name = string(value)
		}
	}
}

// parseChannelList decodes a chlist value:
//
//	{ name\0 pixelType:int32 pLinear:uint8 reserved[3] xSampling:int32 ySampling:int32 }* \0
func parseChannelList(b []byte, part int) ([]Channel, error) {
	var out []Channel
	for {
		end := bytes.IndexByte(b, 0)
		if end < 0 {
			return nil, fmt.Errorf("chlist: %w", ErrTruncated)
		}
		if end == 0 {
			return out, nil
		}
		name := string(b[:end])
		b = b[end+1:]
		if len(b) < 16 {
			return nil, fmt.Errorf("chlist %q: %w", name, ErrTruncated)
		}
		out = append(out, Channel{
			Name:      name,
			Type:      PixelType(int32(binary.LittleEndian.Uint32(b[0:4]))),
			Linear:    b[4] != 0,
			XSampling: int32(binary.LittleEndian.Uint32(b[8:12])),
			YSampling: int32(binary.LittleEndian.Uint32(b[12:16])),
			Part:      part,
		})
		b = b[16:]
	}
}

func readString(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			return "", ErrTruncated
		}
		if c == 0 {
			return string(buf), nil
		}
		if len(buf) >= maxNameLen {
			return "", fmt.Errorf("attribute name longer than %d bytes", maxNameLen)
		}
		buf = append(buf, c)
	}
}
