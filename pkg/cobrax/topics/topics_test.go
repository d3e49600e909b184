package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"ordering.md":       {Data: []byte("# Ordering\n\nLeft items come first.")},
		"manifests.txt":     {Data: []byte("Manifest files")},
		"option-format.txt": {Data: []byte("Output formats")},
		"notes.json":        {Data: []byte("{}")},
		"nested/fallback.md": {
			Data: []byte("# Fallback"),
		},
	}
}

func TestTopicManager_Scan(t *testing.T) {
	tm := New(testFS(), Options{})
	require.NoError(t, tm.Scan())

	assert.Equal(t, []string{"fallback", "manifests", "option-format", "ordering"}, tm.ListTopics())

	tests := []struct {
		name    string
		found   bool
		content string
	}{
		{"ordering", true, "# Ordering\n\nLeft items come first."},
		{"manifests", true, "Manifest files"},
		{"--format", true, "Output formats"},
		{"format", true, "Output formats"},
		{"notes", false, ""},
		{"missing", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic, ok := tm.GetTopic(tt.name)
			assert.Equal(t, tt.found, ok)
			if ok {
				assert.Equal(t, tt.content, topic.Content)
			}
		})
	}
}

func TestTopicManager_CustomExtensions(t *testing.T) {
	tm := New(testFS(), Options{Extensions: []string{".json"}})
	require.NoError(t, tm.Scan())
	assert.Equal(t, []string{"notes"}, tm.ListTopics())
}

func TestTopicManager_WriteList(t *testing.T) {
	tm := New(testFS(), Options{})
	require.NoError(t, tm.Scan())

	var buf bytes.Buffer
	tm.WriteList(&buf, "toolbars")
	out := buf.String()
	assert.Contains(t, out, "General topics:")
	assert.Contains(t, out, "  ordering\n")
	assert.Contains(t, out, "  --format\n")
	assert.Contains(t, out, "'toolbars help <topic>'")

	empty := New(fstest.MapFS{}, Options{})
	require.NoError(t, empty.Scan())
	buf.Reset()
	empty.WriteList(&buf, "toolbars")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestInitialize(t *testing.T) {
	root := &cobra.Command{Use: "toolbars"}
	root.AddCommand(&cobra.Command{Use: "layout", Short: "Print layouts", Run: func(*cobra.Command, []string) {}})

	_, err := Initialize(root, testFS(), Options{})
	require.NoError(t, err)

	run := func(args ...string) string {
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return buf.String()
	}

	assert.Equal(t, "Manifest files", run("help", "manifests"))
	assert.Contains(t, run("help", "topics"), "Available help topics:")
	assert.True(t, strings.Contains(run("help", "layout"), "Print layouts"))
}

func TestGlamourRenderer(t *testing.T) {
	r := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain", r.Render("plain", ".txt"))

	out := r.Render("# Title\n\nbody text", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body text")
}

func TestTopicManager_Renderer(t *testing.T) {
	tm := New(testFS(), Options{
		Renderer: RendererFunc(func(content, format string) string {
			return format + ":" + strings.ToUpper(content)
		}),
	})
	require.NoError(t, tm.Scan())

	topic, ok := tm.GetTopic("manifests")
	require.True(t, ok)
	assert.Equal(t, ".txt:MANIFEST FILES", tm.Render(topic))
}
