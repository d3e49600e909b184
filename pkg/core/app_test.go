package core

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/toolbars/pkg/config"
	"github.com/arthur-debert/toolbars/pkg/descriptors"
	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/toolbar"
	"github.com/arthur-debert/toolbars/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainManifest = `
[[toolbar]]
key = "main"
title = "Main"

[[item]]
id = "Play"
toolbar = "main"
align = "left"
index = 10

[[item]]
id = "Search"
toolbar = "main"
align = "right"
index = 5

[[item]]
id = "Pause"
toolbar = "main"
align = "left"
index = 10
fallback = true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testConfig(manifests ...string) *config.Config {
	cfg := config.Default()
	cfg.Manifests = manifests
	return cfg
}

func TestApp_Layout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.toml", mainManifest)

	app, err := New(testConfig(path))
	require.NoError(t, err)

	assert.Equal(t, []string{"Play", "Search"}, app.Items.Get("main"))
	assert.Equal(t, []types.Toolbar{{Key: "main", Title: "Main"}}, app.KnownToolbars())
}

func TestApp_ConfiguredToolbars(t *testing.T) {
	cfg := testConfig()
	cfg.Toolbars = []config.ToolbarConfig{{Key: "scene", Title: "Scene"}}

	app, err := New(cfg, &descriptors.Static{Items: []types.ItemDescriptor{
		{ID: "Grid", Toolbar: "scene", Alignment: types.AlignLeft, Index: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Grid"}, app.Items.Get("scene"))
}

func TestApp_Check(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.toml", mainManifest+`
[[item]]
id = "Orphan"
toolbar = "ghost"
index = 1
`)

	app, err := New(testConfig(path))
	require.NoError(t, err)

	res, err := app.Check()
	require.NoError(t, err)
	assert.Equal(t, 1, res.MissingTargets)
	assert.Equal(t, 1, res.Conflicts)
	assert.Equal(t, 0, res.Invalid)

	checkErr := res.Err(false)
	require.Error(t, checkErr)
	assert.True(t, errors.IsErrorCode(checkErr, errors.ErrMissingTarget))

	// a second check reports the same warnings, not an accumulation
	res, err = app.Check()
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 2)
}

func TestCheckResult_Err(t *testing.T) {
	tests := []struct {
		name   string
		res    CheckResult
		strict bool
		code   errors.ErrorCode
	}{
		{"clean", CheckResult{}, true, ""},
		{"conflict lenient", CheckResult{Conflicts: 2}, false, ""},
		{"conflict strict", CheckResult{Conflicts: 2}, true, errors.ErrItemConflict},
		{"missing", CheckResult{MissingTargets: 1}, false, errors.ErrMissingTarget},
		{"invalid", CheckResult{Invalid: 1}, false, errors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.res.Err(tt.strict)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsErrorCode(err, tt.code))
		})
	}
}

func TestApp_AutoRegister(t *testing.T) {
	cfg := testConfig()
	cfg.Registry.AutoRegister = true

	app, err := New(cfg, &descriptors.Static{Items: []types.ItemDescriptor{
		{ID: "A", Toolbar: "adhoc", Alignment: types.AlignRight, Index: 3},
	}})
	require.NoError(t, err)

	res, err := app.Check()
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, []string{"A"}, res.Layout.IDs("adhoc"))
}

func TestApp_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.toml", mainManifest)

	app, err := New(testConfig(path))
	require.NoError(t, err)
	require.Equal(t, []string{"Play", "Search"}, app.Items.Get("main"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var latest []string
	done := make(chan error, 1)
	go func() {
		done <- app.Watch(ctx, func(l *toolbar.Layout, _ []toolbar.Warning) {
			mu.Lock()
			latest = l.IDs("main")
			mu.Unlock()
		})
	}()

	// give the watcher time to register before editing
	time.Sleep(200 * time.Millisecond)
	writeFile(t, dir, "main.toml", mainManifest+`
[[item]]
id = "Record"
toolbar = "main"
index = 20
`)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return assert.ObjectsAreEqual([]string{"Play", "Record", "Search"}, latest)
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, []string{"Play", "Record", "Search"}, app.Items.Get("main"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestApp_RebuildForgetsRemovedToolbar(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.toml", mainManifest)

	app, err := New(testConfig(path))
	require.NoError(t, err)

	res, err := app.Check()
	require.NoError(t, err)
	require.Equal(t, 0, res.MissingTargets)
	require.Equal(t, []string{"Play", "Search"}, res.Layout.IDs("main"))

	// same items, declaration removed
	writeFile(t, dir, "main.toml", `
[[item]]
id = "Play"
toolbar = "main"
index = 10
`)
	res, err = app.Check()
	require.NoError(t, err)
	assert.Equal(t, 1, res.MissingTargets)
	assert.Empty(t, res.Layout.IDs("main"))
	assert.Empty(t, app.KnownToolbars())
}
