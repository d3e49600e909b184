package topics

// Renderer turns raw topic content into terminal output. format is the
// topic file extension, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(content string, format string) string

// Render calls f
func (f RendererFunc) Render(content string, format string) string {
	return f(content, format)
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
