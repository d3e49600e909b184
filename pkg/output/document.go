package output

import (
	"github.com/arthur-debert/toolbars/pkg/toolbar"
	"github.com/arthur-debert/toolbars/pkg/types"
)

// ItemDoc is one placed item
type ItemDoc struct {
	ID       string `json:"id" toml:"id" yaml:"id"`
	Toolbar  string `json:"toolbar" toml:"toolbar" yaml:"toolbar"`
	Align    string `json:"align" toml:"align" yaml:"align"`
	Index    int    `json:"index" toml:"index" yaml:"index"`
	Fallback bool   `json:"fallback,omitempty" toml:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// ToolbarDoc is one toolbar declaration
type ToolbarDoc struct {
	Key   string `json:"key" toml:"key" yaml:"key"`
	Title string `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
}

// LayoutDocument is the structured form of a built layout. Its field names
// match the manifest schema, so an exported layout loads back as a manifest
// producing the same order.
type LayoutDocument struct {
	Toolbars []ToolbarDoc `json:"toolbar" toml:"toolbar" yaml:"toolbar"`
	Items    []ItemDoc    `json:"item" toml:"item" yaml:"item"`
}

// WarningDoc is the structured form of a build warning
type WarningDoc struct {
	Code      string `json:"code" toml:"code" yaml:"code"`
	Toolbar   string `json:"toolbar" toml:"toolbar" yaml:"toolbar"`
	Discarded string `json:"discarded" toml:"discarded" yaml:"discarded"`
	Kept      string `json:"kept,omitempty" toml:"kept,omitempty" yaml:"kept,omitempty"`
	Origin    string `json:"origin,omitempty" toml:"origin,omitempty" yaml:"origin,omitempty"`
	Message   string `json:"message" toml:"message" yaml:"message"`
}

// WarningsDocument wraps a warning list so every encoder has a table root
type WarningsDocument struct {
	Warnings []WarningDoc `json:"warnings" toml:"warning" yaml:"warnings"`
}

// NewLayoutDocument converts the toolbars selected by keys into a document.
// An empty keys slice selects every toolbar in the layout.
func NewLayoutDocument(layout *toolbar.Layout, keys []types.ToolbarKey) LayoutDocument {
	if len(keys) == 0 {
		keys = layout.Keys()
	}

	doc := LayoutDocument{Toolbars: []ToolbarDoc{}, Items: []ItemDoc{}}
	for _, key := range keys {
		tb, ok := layout.Toolbar(key)
		if !ok {
			tb = types.Toolbar{Key: key}
		}
		doc.Toolbars = append(doc.Toolbars, ToolbarDoc{Key: string(tb.Key), Title: tb.Title})
		for _, e := range layout.Entries(key) {
			doc.Items = append(doc.Items, ItemDoc{
				ID:       e.ID,
				Toolbar:  string(e.Toolbar),
				Align:    e.Alignment.String(),
				Index:    e.Index,
				Fallback: e.Fallback,
			})
		}
	}
	return doc
}

// NewWarningsDocument converts warnings into a document
func NewWarningsDocument(warnings []toolbar.Warning) WarningsDocument {
	doc := WarningsDocument{Warnings: make([]WarningDoc, 0, len(warnings))}
	for _, w := range warnings {
		doc.Warnings = append(doc.Warnings, WarningDoc{
			Code:      string(w.Code),
			Toolbar:   string(w.Toolbar),
			Discarded: w.Discarded.ID,
			Kept:      w.Kept.ID,
			Origin:    w.Discarded.Origin,
			Message:   w.Message,
		})
	}
	return doc
}
