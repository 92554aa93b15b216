package frames

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyRange is returned when either bound of a frame range is blank.
var ErrEmptyRange = errors.New("frame range cannot be empty")

// Range is an inclusive frame range as typed by the user.
type Range struct {
	Start string
	End   string
}

// Validate requires both bounds to be present, integral, and ordered.
func (r Range) Validate() error {
	start := strings.TrimSpace(r.Start)
	end := strings.TrimSpace(r.End)
	if start == "" || end == "" {
		return ErrEmptyRange
	}
	s, err := strconv.Atoi(start)
	if err != nil {
		return fmt.Errorf("frame range start must be a whole number (got %q)", r.Start)
	}
	e, err := strconv.Atoi(end)
	if err != nil {
		return fmt.Errorf("frame range end must be a whole number (got %q)", r.End)
	}
	if s > e {
		return fmt.Errorf("frame range start %d is after end %d", s, e)
	}
	return nil
}

// String renders the range in denoise_batch's frame-include syntax, "S-E".
func (r Range) String() string {
	return strings.TrimSpace(r.Start) + "-" + strings.TrimSpace(r.End)
}

// ParseRange splits "S-E" into a Range. A single number yields S-S.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, ErrEmptyRange
	}
	// Skip a leading sign so "-5-3" is not split on its first rune.
	idx := strings.Index(s[1:], "-")
	if idx < 0 {
		r := Range{Start: s, End: s}
		return r, r.Validate()
	}
	idx++
	r := Range{Start: s[:idx], End: s[idx+1:]}
	return r, r.Validate()
}
