package toolbar

import (
	"sort"

	"github.com/arthur-debert/toolbars/pkg/types"
)

// Layout is the built, immutable result of ordering a descriptor set.
// Every known toolbar has an entry, possibly empty.
type Layout struct {
	toolbars map[types.ToolbarKey]types.Toolbar
	entries  map[types.ToolbarKey][]types.ItemDescriptor
}

func newLayout() *Layout {
	return &Layout{
		toolbars: make(map[types.ToolbarKey]types.Toolbar),
		entries:  make(map[types.ToolbarKey][]types.ItemDescriptor),
	}
}

// Keys returns the toolbar keys in the layout, sorted
func (l *Layout) Keys() []types.ToolbarKey {
	if l == nil {
		return nil
	}
	keys := make([]types.ToolbarKey, 0, len(l.toolbars))
	for k := range l.toolbars {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Toolbar returns the toolbar declaration for key
func (l *Layout) Toolbar(key types.ToolbarKey) (types.Toolbar, bool) {
	if l == nil {
		return types.Toolbar{}, false
	}
	tb, ok := l.toolbars[key]
	return tb, ok
}

// IDs returns the ordered item identifiers for key. Unknown keys yield an
// empty, non-nil slice.
func (l *Layout) IDs(key types.ToolbarKey) []string {
	entries := l.Entries(key)
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

// Entries returns a copy of the ordered descriptors for key
func (l *Layout) Entries(key types.ToolbarKey) []types.ItemDescriptor {
	if l == nil {
		return []types.ItemDescriptor{}
	}
	src := l.entries[key]
	out := make([]types.ItemDescriptor, len(src))
	copy(out, src)
	return out
}

// Split returns the left and right aligned identifiers for key
func (l *Layout) Split(key types.ToolbarKey) (left, right []string) {
	left, right = []string{}, []string{}
	for _, e := range l.Entries(key) {
		if e.Alignment == types.AlignLeft {
			left = append(left, e.ID)
		} else {
			right = append(right, e.ID)
		}
	}
	return left, right
}

// Len returns the total number of placed items across all toolbars
func (l *Layout) Len() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, e := range l.entries {
		n += len(e)
	}
	return n
}
