package core

import (
	"github.com/arthur-debert/toolbars/pkg/config"
	"github.com/arthur-debert/toolbars/pkg/descriptors"
	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/logging"
	"github.com/arthur-debert/toolbars/pkg/registry"
	"github.com/arthur-debert/toolbars/pkg/toolbar"
	"github.com/arthur-debert/toolbars/pkg/types"
)

// App is a configured toolbar registry
type App struct {
	Config *config.Config

	// Toolbars holds the configured toolbars; manifest declarations are
	// added per build and are not stored here
	Toolbars  registry.Registry[types.Toolbar]
	Manifests *descriptors.ManifestSource
	Items     *toolbar.ItemRegistry

	warnings *toolbar.Collector
}

// New creates an App from cfg. Extra sources are read after the configured
// manifests.
func New(cfg *config.Config, extra ...toolbar.Source) (*App, error) {
	logger := logging.GetLogger("core")
	if cfg == nil {
		cfg = config.Default()
	}

	toolbars := registry.New[types.Toolbar]()
	for _, tb := range cfg.KnownToolbars() {
		if err := toolbars.Register(string(tb.Key), tb); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "failed to register toolbar %s", tb.Key)
		}
	}

	manifests := descriptors.NewManifestSource(cfg.Manifests...)
	var source toolbar.Source = manifests
	if len(extra) > 0 {
		source = append(descriptors.Multi{manifests}, extra...)
	}

	warnings := &toolbar.Collector{}
	items := toolbar.NewItemRegistry(source, toolbar.Options{
		Toolbars:     toolbars,
		Sink:         toolbar.MultiSink{toolbar.LogSink{Logger: logging.GetLogger("toolbar")}, warnings},
		AutoRegister: cfg.Registry.AutoRegister,
	})

	logger.Debug().
		Int("toolbars", toolbars.Count()).
		Strs("manifests", cfg.Manifests).
		Bool("auto_register", cfg.Registry.AutoRegister).
		Msg("App created")

	return &App{
		Config:    cfg,
		Toolbars:  toolbars,
		Manifests: manifests,
		Items:     items,
		warnings:  warnings,
	}, nil
}

// Rebuild discards the cached layout and builds a fresh one. The warnings
// of the previous build are cleared.
func (a *App) Rebuild() (*toolbar.Layout, error) {
	a.warnings.Reset()
	return a.Items.Refresh()
}

// Warnings returns the warnings raised since the last Rebuild
func (a *App) Warnings() []toolbar.Warning {
	return a.warnings.Warnings()
}

// KnownToolbars returns the toolbars of the latest build, sorted by key.
// Before the first build only configured toolbars are known.
func (a *App) KnownToolbars() []types.Toolbar {
	return a.Items.Known()
}
