package frames

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// Placeholder replaces the frame number in a sequence template.
const Placeholder = "####"

// ErrNoFrames is returned when a directory holds no numbered EXR frames.
var ErrNoFrames = errors.New("no frame matching *.####.exr found")

var reFrameNumber = regexp.MustCompile(`([0-9]{4})(\.exr)$`)

// Sequence describes one frame sequence on disk.
type Sequence struct {
	Dir        string
	Template   string // Full path with the frame number replaced by ####.
	FirstFrame string // Full path of the first matching frame.
}

// Discover lists dir in lexical order and returns the sequence formed by
// the first file matching the frame pattern.
func Discover(dir string) (Sequence, error) {
	names, err := frameNames(dir)
	if err != nil {
		return Sequence{}, err
	}
	if len(names) == 0 {
		return Sequence{}, fmt.Errorf("%s: %w", dir, ErrNoFrames)
	}
	first := names[0]
	return Sequence{
		Dir:        dir,
		Template:   filepath.Join(dir, TemplateName(first)),
		FirstFrame: filepath.Join(dir, first),
	}, nil
}

// TemplateName replaces the four-digit frame number of name with ####.
// Names that do not match are returned unchanged.
func TemplateName(name string) string {
	return reFrameNumber.ReplaceAllString(name, Placeholder+"$2")
}

// IsFrame reports whether name looks like a numbered EXR frame.
func IsFrame(name string) bool {
	return reFrameNumber.MatchString(name)
}

// Count returns how many files in the sequence directory share the
// sequence's template.
func (s Sequence) Count() (int, error) {
	names, err := frameNames(s.Dir)
	if err != nil {
		return 0, err
	}
	want := filepath.Base(s.Template)
	n := 0
	for _, name := range names {
		if TemplateName(name) == want {
			n++
		}
	}
	return n, nil
}

func frameNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frames dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsFrame(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
