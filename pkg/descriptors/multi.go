package descriptors

import (
	"github.com/arthur-debert/toolbars/pkg/toolbar"
	"github.com/arthur-debert/toolbars/pkg/types"
)

// Multi concatenates several sources in order
type Multi []toolbar.Source

// Descriptors implements toolbar.Source
func (m Multi) Descriptors() ([]types.ItemDescriptor, error) {
	var all []types.ItemDescriptor
	for _, src := range m {
		items, err := src.Descriptors()
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}

// Toolbars implements toolbar.ToolbarSource for members that declare toolbars
func (m Multi) Toolbars() ([]types.Toolbar, error) {
	var all []types.Toolbar
	for _, src := range m {
		ts, ok := src.(toolbar.ToolbarSource)
		if !ok {
			continue
		}
		decls, err := ts.Toolbars()
		if err != nil {
			return nil, err
		}
		all = append(all, decls...)
	}
	return all, nil
}
