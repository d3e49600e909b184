package descriptors

import "github.com/arthur-debert/toolbars/pkg/types"

// Static is a fixed descriptor set
type Static struct {
	Items        []types.ItemDescriptor
	ToolbarDecls []types.Toolbar
}

// Descriptors returns a copy of the items
func (s *Static) Descriptors() ([]types.ItemDescriptor, error) {
	return append([]types.ItemDescriptor(nil), s.Items...), nil
}

// Toolbars returns a copy of the declared toolbars
func (s *Static) Toolbars() ([]types.Toolbar, error) {
	return append([]types.Toolbar(nil), s.ToolbarDecls...), nil
}
