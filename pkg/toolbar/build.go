package toolbar

import (
	"github.com/arthur-debert/toolbars/pkg/types"
)

// ToolbarSet reports which toolbars exist. registry.Registry[types.Toolbar]
// satisfies it.
type ToolbarSet interface {
	Has(name string) bool
	Values() []types.Toolbar
}

// emptySet knows no toolbars
type emptySet struct{}

func (emptySet) Has(string) bool         { return false }
func (emptySet) Values() []types.Toolbar { return nil }

// Build orders descriptors per toolbar. Descriptors whose toolbar is not in
// known are skipped with one missing target warning each; descriptors with
// no ID or an invalid alignment are skipped with an invalid input warning.
// A nil known set knows no toolbars. The input slice is not modified.
func Build(descriptors []types.ItemDescriptor, known ToolbarSet, sink WarningSink) *Layout {
	if sink == nil {
		sink = Discard
	}
	if known == nil {
		known = emptySet{}
	}

	layout := newLayout()
	for _, tb := range known.Values() {
		layout.toolbars[tb.Key] = tb
		layout.entries[tb.Key] = []types.ItemDescriptor{}
	}

	groups := make(map[types.ToolbarKey][]types.ItemDescriptor)
	var order []types.ToolbarKey
	for _, d := range descriptors {
		if d.ID == "" || !d.Alignment.IsValid() {
			sink.Warn(malformed(d))
			continue
		}
		if !known.Has(string(d.Toolbar)) {
			sink.Warn(missingTarget(d))
			continue
		}
		if _, seen := groups[d.Toolbar]; !seen {
			order = append(order, d.Toolbar)
		}
		groups[d.Toolbar] = append(groups[d.Toolbar], d)
	}

	for _, key := range order {
		var placed []types.ItemDescriptor
		for _, d := range groups[key] {
			placed = place(placed, d, sink)
		}
		layout.entries[key] = placed
	}

	return layout
}

// place inserts d into entries, which must already satisfy the ordering
// invariant, and returns the updated slice.
func place(entries []types.ItemDescriptor, d types.ItemDescriptor, sink WarningSink) []types.ItemDescriptor {
	if d.Alignment == types.AlignRight {
		return placeRight(entries, d, sink)
	}
	return placeLeft(entries, d, sink)
}

// placeLeft scans from the front and stops at the first right aligned entry
// or the first entry with a greater index.
func placeLeft(entries []types.ItemDescriptor, d types.ItemDescriptor, sink WarningSink) []types.ItemDescriptor {
	for i, e := range entries {
		if e.Alignment == types.AlignRight || e.Index > d.Index {
			return insertAt(entries, i, d)
		}
		if e.Index == d.Index {
			return resolve(entries, i, d, sink)
		}
	}
	return append(entries, d)
}

// placeRight scans from the back and stops at the first left aligned entry
// or the first entry with a smaller index.
func placeRight(entries []types.ItemDescriptor, d types.ItemDescriptor, sink WarningSink) []types.ItemDescriptor {
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Alignment == types.AlignLeft || e.Index < d.Index {
			return insertAt(entries, i+1, d)
		}
		if e.Index == d.Index {
			return resolve(entries, i, d, sink)
		}
	}
	return insertAt(entries, 0, d)
}

// resolve handles a newcomer d that wants the slot held by entries[i]
func resolve(entries []types.ItemDescriptor, i int, d types.ItemDescriptor, sink WarningSink) []types.ItemDescriptor {
	existing := entries[i]
	if d.Fallback {
		sink.Warn(conflict(existing, d))
		return entries
	}
	entries[i] = d
	sink.Warn(conflict(d, existing))
	return entries
}

func insertAt(entries []types.ItemDescriptor, i int, d types.ItemDescriptor) []types.ItemDescriptor {
	entries = append(entries, types.ItemDescriptor{})
	copy(entries[i+1:], entries[i:])
	entries[i] = d
	return entries
}
