package types

import (
	"strings"

	"github.com/arthur-debert/toolbars/pkg/errors"
)

// Alignment indicates which edge of a toolbar an item is grouped towards
type Alignment string

const (
	// AlignLeft groups the item towards the leading edge
	AlignLeft Alignment = "left"

	// AlignRight groups the item towards the trailing edge
	AlignRight Alignment = "right"
)

// ParseAlignment parses a user supplied alignment. It accepts "left", "l",
// "right" and "r" in any case.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return AlignLeft, nil
	case "right", "r":
		return AlignRight, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown alignment %q", s).
			WithDetail("alignment", s)
	}
}

// IsValid reports whether a is one of the known alignments
func (a Alignment) IsValid() bool {
	return a == AlignLeft || a == AlignRight
}

// String returns the string representation of the alignment
func (a Alignment) String() string {
	return string(a)
}

// MarshalText implements encoding.TextMarshaler
func (a Alignment) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown alignment %q", string(a))
	}
	return []byte(a), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Alignment) UnmarshalText(text []byte) error {
	parsed, err := ParseAlignment(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
