package core

import (
	"context"

	"github.com/arthur-debert/toolbars/pkg/descriptors"
	"github.com/arthur-debert/toolbars/pkg/logging"
	"github.com/arthur-debert/toolbars/pkg/toolbar"
)

// Watch rebuilds the layout whenever a configured manifest changes and
// hands each new layout to onRebuild. Bursts of file events collapse into
// one rebuild. It blocks until ctx is done.
func (a *App) Watch(ctx context.Context, onRebuild func(*toolbar.Layout, []toolbar.Warning)) error {
	logger := logging.GetLogger("core.watch")

	changed := make(chan string, 1)
	w, err := descriptors.Watch(a.Config.Manifests, func(path string) {
		select {
		case changed <- path:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("Watch stopped")
			return nil
		case path := <-changed:
			layout, err := a.Rebuild()
			if err != nil {
				logger.Error().Err(err).Str("path", path).Msg("Rebuild failed")
				continue
			}
			logger.Info().Str("path", path).Int("items", layout.Len()).Msg("Layout rebuilt")
			onRebuild(layout, a.Warnings())
		}
	}
}
