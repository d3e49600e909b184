package types

import "fmt"

// ToolbarKey is an opaque token identifying the toolbar that owns an item
type ToolbarKey string

// Toolbar is a toolbar known to the registry. Items that reference a key
// with no matching Toolbar are reported as missing targets.
type Toolbar struct {
	// Key identifies the toolbar
	Key ToolbarKey

	// Title is a human-readable name, used for display only
	Title string
}

// DisplayName returns the title if set, otherwise the key
func (t Toolbar) DisplayName() string {
	if t.Title != "" {
		return t.Title
	}
	return string(t.Key)
}

// ItemDescriptor describes one toolbar item and where it wants to be placed.
// Descriptors are values; nothing in this module mutates one after it is
// constructed.
type ItemDescriptor struct {
	// ID identifies the item (for example a type name)
	ID string

	// Toolbar is the key of the owning toolbar
	Toolbar ToolbarKey

	// Alignment selects the left or right group
	Alignment Alignment

	// Index orders items inside their alignment group, ascending
	Index int

	// Fallback marks a low priority item that yields its slot to a
	// non-fallback item with the same alignment and index
	Fallback bool

	// Origin records where the descriptor came from (file path, source
	// name). It is informational and never affects ordering.
	Origin string
}

// String returns a compact representation used in log and warning messages
func (d ItemDescriptor) String() string {
	s := fmt.Sprintf("%s(%s/%s:%d", d.ID, d.Toolbar, d.Alignment, d.Index)
	if d.Fallback {
		s += ",fallback"
	}
	return s + ")"
}

// SameSlot reports whether two descriptors compete for the same position
// within one toolbar
func (d ItemDescriptor) SameSlot(other ItemDescriptor) bool {
	return d.Toolbar == other.Toolbar &&
		d.Alignment == other.Alignment &&
		d.Index == other.Index
}
