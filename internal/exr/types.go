package exr

import (
	"errors"
	"strings"
)

// Sentinel errors for malformed input.
var (
	ErrNotEXR     = errors.New("not an OpenEXR file")
	ErrTruncated  = errors.New("truncated OpenEXR header")
	ErrNoChannels = errors.New("OpenEXR header has no channels attribute")
)

// PixelType is the storage type of a channel.
type PixelType int32

const (
	PixelUint  PixelType = 0
	PixelHalf  PixelType = 1
	PixelFloat PixelType = 2
)

func (p PixelType) String() string {
	switch p {
	case PixelUint:
		return "uint"
	case PixelHalf:
		return "half"
	case PixelFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Channel is one entry of a chlist attribute.
type Channel struct {
	Name      string
	Type      PixelType
	Linear    bool
	XSampling int32
	YSampling int32
	Part      int
}

// Header summarizes the parts of an EXR file.
type Header struct {
	Version   int
	Tiled     bool
	LongNames bool
	Deep      bool
	Multipart bool
	Parts     []Part
}

// Part is one image part and its channels.
type Part struct {
	Name     string
	Channels []Channel
}

// Channels returns every channel of every part, in file order.
func (h *Header) Channels() []Channel {
	var out []Channel
	for _, p := range h.Parts {
		out = append(out, p.Channels...)
	}
	return out
}

// LayerName strips the last ".suffix" from a channel name
// (diffuse.R -> diffuse, lpe.shadow.G -> lpe.shadow). Names without a dot,
// or whose only dot is leading, are returned unchanged.
func LayerName(channel string) string {
	if i := strings.LastIndexByte(channel, '.'); i > 0 {
		return channel[:i]
	}
	return channel
}

// Layers collapses channels into de-duplicated layer names, keeping the
// order in which each layer is first seen.
func Layers(channels []Channel) []string {
	seen := make(map[string]bool, len(channels))
	var out []string
	for _, c := range channels {
		name := LayerName(c.Name)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
