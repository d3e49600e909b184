package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/toolbar"
	"github.com/arthur-debert/toolbars/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Renderer writes layouts, warnings and toolbar lists in one format
type Renderer struct {
	writer io.Writer
	format Format
	styles Styles
}

// NewRenderer creates a renderer for w. format must already be resolved;
// FormatAuto is treated as FormatText.
func NewRenderer(w io.Writer, format Format) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if format == FormatTerminal {
		lr.SetColorProfile(termenv.ANSI256)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		writer: w,
		format: format,
		styles: DefaultStyles(lr),
	}
}

// Format returns the renderer's output format
func (r *Renderer) Format() Format {
	return r.format
}

// RenderLayout writes the toolbars selected by keys, every toolbar when
// keys is empty
func (r *Renderer) RenderLayout(layout *toolbar.Layout, keys []types.ToolbarKey) error {
	if r.format.Structured() {
		return Encode(r.writer, r.format, NewLayoutDocument(layout, keys))
	}
	if len(keys) == 0 {
		keys = layout.Keys()
	}

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		r.writeToolbar(&b, layout, key)
	}
	return r.write(b.String())
}

func (r *Renderer) writeToolbar(b *strings.Builder, layout *toolbar.Layout, key types.ToolbarKey) {
	tb, ok := layout.Toolbar(key)
	if !ok {
		tb = types.Toolbar{Key: key}
	}

	header := r.styles.Get("Header").Render(tb.DisplayName())
	if tb.Title != "" && tb.Title != string(tb.Key) {
		header += " " + r.styles.Get("Key").Render("("+string(tb.Key)+")")
	}
	b.WriteString(header + "\n")

	entries := layout.Entries(key)
	if len(entries) == 0 {
		b.WriteString("  " + r.styles.Get("Muted").Render("(empty)") + "\n")
		return
	}

	for _, e := range entries {
		alignStyle := r.styles.Get("Left")
		if e.Alignment == types.AlignRight {
			alignStyle = r.styles.Get("Right")
		}
		line := fmt.Sprintf("  %s %s  %s",
			alignStyle.Render(fmt.Sprintf("%-5s", e.Alignment)),
			r.styles.Get("Index").Render(fmt.Sprintf("%d", e.Index)),
			r.styles.Get("Item").Render(e.ID))
		if e.Fallback {
			line += " " + r.styles.Get("Fallback").Render("fallback")
		}
		b.WriteString(line + "\n")
	}
}

// RenderWarnings writes build warnings
func (r *Renderer) RenderWarnings(warnings []toolbar.Warning) error {
	if r.format.Structured() {
		return Encode(r.writer, r.format, NewWarningsDocument(warnings))
	}
	if len(warnings) == 0 {
		return r.write(r.styles.Get("Muted").Render("no warnings") + "\n")
	}

	var b strings.Builder
	for _, w := range warnings {
		style := r.styles.Get("Warning")
		if w.Code == errors.ErrMissingTarget {
			style = r.styles.Get("Error")
		}
		b.WriteString(style.Render(string(w.Code)) + " " + w.Message)
		if w.Discarded.Origin != "" {
			b.WriteString(" " + r.styles.Get("Muted").Render(w.Discarded.Origin))
		}
		b.WriteString("\n")
	}
	return r.write(b.String())
}

// RenderToolbars writes the known toolbar list
func (r *Renderer) RenderToolbars(toolbars []types.Toolbar) error {
	if r.format.Structured() {
		doc := LayoutDocument{Toolbars: make([]ToolbarDoc, 0, len(toolbars)), Items: []ItemDoc{}}
		for _, tb := range toolbars {
			doc.Toolbars = append(doc.Toolbars, ToolbarDoc{Key: string(tb.Key), Title: tb.Title})
		}
		return Encode(r.writer, r.format, doc)
	}

	var b strings.Builder
	for _, tb := range toolbars {
		b.WriteString(r.styles.Get("Header").Render(string(tb.Key)))
		if tb.Title != "" {
			b.WriteString("  " + r.styles.Get("Muted").Render(tb.Title))
		}
		b.WriteString("\n")
	}
	return r.write(b.String())
}

func (r *Renderer) write(s string) error {
	if _, err := io.WriteString(r.writer, s); err != nil {
		return errors.Wrap(err, errors.ErrOutputWrite, "failed to write output")
	}
	return nil
}
