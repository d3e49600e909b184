package toolbars

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/toolbars/pkg/descriptors"
	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/output"
	"github.com/arthur-debert/toolbars/pkg/toolbar"
	"github.com/arthur-debert/toolbars/pkg/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
[[toolbar]]
key = "main"
title = "Main"

[[toolbar]]
key = "scene"

[[item]]
id = "Play"
toolbar = "main"
index = 10

[[item]]
id = "Search"
toolbar = "main"
align = "right"
index = 5

[[item]]
id = "Pause"
toolbar = "main"
index = 20

[[item]]
id = "Grid"
toolbar = "scene"
index = 1
`

// setupEnv isolates config and log locations and returns a manifest path
func setupEnv(t *testing.T, manifest string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("NO_COLOR", "1")

	path := filepath.Join(dir, "main.toml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runWithStderr(t, args...)
	return out, err
}

func runWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func findCommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func TestRootCmd_Structure(t *testing.T) {
	root := NewRootCmd()

	tests := []struct {
		name  string
		group string
	}{
		{"layout", "core"},
		{"check", "core"},
		{"toolbars", "core"},
		{"export", "core"},
		{"watch", "core"},
		{"gen-config", "misc"},
		{"topics", "misc"},
		{"version", "misc"},
		{"completion", "misc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := findCommand(root, tt.name)
			require.NotNil(t, c, "command %s should exist", tt.name)
			assert.Equal(t, tt.group, c.GroupID)
		})
	}

	for _, flag := range []string{"verbose", "config", "format", "no-color", "manifest"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestLayoutCommand(t *testing.T) {
	manifest := setupEnv(t, testManifest)

	t.Run("all toolbars", func(t *testing.T) {
		out, err := run(t, "layout", "-m", manifest, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "Main (main)")
		assert.Contains(t, out, "Grid")
		assert.Less(t, bytes.Index([]byte(out), []byte("Pause")), bytes.Index([]byte(out), []byte("Search")))
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "layout", "main", "-m", manifest, "--format", "json")
		require.NoError(t, err)

		var doc output.LayoutDocument
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		var ids []string
		for _, it := range doc.Items {
			ids = append(ids, it.ID)
		}
		assert.Equal(t, []string{"Play", "Pause", "Search"}, ids)
	})

	t.Run("unknown toolbar prints empty", func(t *testing.T) {
		out, err := run(t, "layout", "nope", "-m", manifest, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "(empty)")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := run(t, "layout", "-m", manifest, "--format", "xml")
		require.Error(t, err)
	})
}

func TestCheckCommand(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		manifest := setupEnv(t, testManifest)
		out, err := run(t, "check", "-m", manifest, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "no warnings")
	})

	conflicting := testManifest + `
[[item]]
id = "Stop"
toolbar = "main"
index = 10
fallback = true
`

	t.Run("conflict lenient", func(t *testing.T) {
		manifest := setupEnv(t, conflicting)
		out, err := run(t, "check", "-m", manifest, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, string(errors.ErrItemConflict))
		assert.Contains(t, out, "0 missing target(s), 1 conflict(s)")
	})

	t.Run("conflict strict", func(t *testing.T) {
		manifest := setupEnv(t, conflicting)
		_, err := run(t, "check", "--strict", "-m", manifest)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrItemConflict))
	})

	t.Run("conflict is logged for humans", func(t *testing.T) {
		manifest := setupEnv(t, conflicting)
		_, stderr, err := runWithStderr(t, "check", "-m", manifest, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, stderr, "WRN")
		assert.Contains(t, stderr, string(errors.ErrItemConflict))
		assert.NotContains(t, stderr, `{"level"`)
	})

	t.Run("missing target", func(t *testing.T) {
		manifest := setupEnv(t, testManifest+`
[[item]]
id = "Lost"
toolbar = "ghost"
index = 1
`)
		out, err := run(t, "check", "-m", manifest, "--format", "json")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingTarget))

		var doc output.WarningsDocument
		require.NoError(t, json.Unmarshal([]byte(out), &doc))
		require.Len(t, doc.Warnings, 1)
		assert.Equal(t, "Lost", doc.Warnings[0].Discarded)
		assert.Equal(t, manifest, doc.Warnings[0].Origin)
	})
}

func TestToolbarsCommand(t *testing.T) {
	manifest := setupEnv(t, testManifest)
	out, err := run(t, "toolbars", "-m", manifest, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "main  Main\nscene\n", out)

	setupEnv(t, "")
	out, err = run(t, "toolbars", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoToolbarsKnown)
}

func TestExportCommand(t *testing.T) {
	manifest := setupEnv(t, testManifest)
	exported := filepath.Join(t.TempDir(), "layout.yaml")

	_, err := run(t, "export", "-m", manifest, "--format", "yaml", "-o", exported)
	require.NoError(t, err)

	m, err := descriptors.LoadManifest(exported)
	require.NoError(t, err)
	var ids []string
	for _, d := range m.Items {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"Play", "Pause", "Search", "Grid"}, ids)

	t.Run("default toml", func(t *testing.T) {
		out, err := run(t, "export", "-m", manifest)
		require.NoError(t, err)
		assert.Contains(t, out, "[[item]]")
	})

	t.Run("text rejected", func(t *testing.T) {
		_, err := run(t, "export", "-m", manifest, "--format", "text")
		require.Error(t, err)
	})
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		flag, configured string
		want             output.Format
		wantErr          bool
	}{
		{"", "auto", output.FormatTOML, false},
		{"", "yaml", output.FormatYAML, false},
		{"json", "auto", output.FormatJSON, false},
		{"term", "auto", 0, true},
		{"bogus", "auto", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.flag+"/"+tt.configured, func(t *testing.T) {
			got, err := exportFormat(tt.flag, tt.configured)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderBuild(t *testing.T) {
	sink := &toolbar.Collector{}
	layout := toolbar.Build([]types.ItemDescriptor{
		{ID: "Lost", Toolbar: "ghost", Index: 1, Origin: "lost.toml"},
	}, nil, sink)
	keys := []types.ToolbarKey{"main"}

	t.Run("warnings follow the layout", func(t *testing.T) {
		var buf bytes.Buffer
		r := output.NewRenderer(&buf, output.FormatText)
		require.NoError(t, renderBuild(&buf, r, layout, keys, sink.Warnings()))

		out := buf.String()
		assert.Contains(t, out, "(empty)")
		assert.Contains(t, out, string(errors.ErrMissingTarget))
		assert.Less(t, strings.Index(out, "(empty)"), strings.Index(out, string(errors.ErrMissingTarget)))
	})

	t.Run("clean build prints only the layout", func(t *testing.T) {
		var buf bytes.Buffer
		r := output.NewRenderer(&buf, output.FormatText)
		require.NoError(t, renderBuild(&buf, r, layout, keys, nil))

		assert.Contains(t, buf.String(), "(empty)")
		assert.NotContains(t, buf.String(), "no warnings")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r := output.NewRenderer(&buf, output.FormatJSON)
		require.NoError(t, renderBuild(&buf, r, layout, keys, sink.Warnings()))

		dec := json.NewDecoder(&buf)
		var doc output.LayoutDocument
		require.NoError(t, dec.Decode(&doc))
		var warnings output.WarningsDocument
		require.NoError(t, dec.Decode(&warnings))
		require.Len(t, warnings.Warnings, 1)
		assert.Equal(t, "Lost", warnings.Warnings[0].Discarded)
	})
}

func TestWatchCommand_NoManifests(t *testing.T) {
	setupEnv(t, "")
	_, err := run(t, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no manifests configured")
}

func TestGenConfigCommand(t *testing.T) {
	setupEnv(t, "")

	out, err := run(t, "gen-config")
	require.NoError(t, err)
	assert.Contains(t, out, "[output]")
	assert.Contains(t, out, "# format")

	out, err = run(t, "gen-config", "-w")
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")

	_, err = run(t, "gen-config", "-w")
	require.Error(t, err)

	_, err = run(t, "gen-config", "-w", "--force")
	require.NoError(t, err)
}

func TestTopicsCommand(t *testing.T) {
	setupEnv(t, "")

	out, err := run(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "ordering")
	assert.Contains(t, out, "--format")

	out, err = run(t, "topics", "format")
	require.NoError(t, err)
	assert.Contains(t, out, "--format selects")

	_, err = run(t, "topics", "nope")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	setupEnv(t, "")
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "toolbars version dev")
}

func TestCompletionCommand(t *testing.T) {
	setupEnv(t, "")
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "toolbars")

	_, err = run(t, "completion", "tcsh")
	require.Error(t, err)
}
