package toolbar

import (
	"sync"

	"github.com/arthur-debert/toolbars/pkg/logging"
	"github.com/arthur-debert/toolbars/pkg/registry"
	"github.com/arthur-debert/toolbars/pkg/types"
	"github.com/rs/zerolog"
)

// Source supplies the full descriptor set
type Source interface {
	Descriptors() ([]types.ItemDescriptor, error)
}

// ToolbarSource is implemented by sources that also declare toolbars.
// Declared toolbars are registered before every build.
type ToolbarSource interface {
	Toolbars() ([]types.Toolbar, error)
}

// Options configures an ItemRegistry
type Options struct {
	// Toolbars is the base set of known toolbars. It is only read; each
	// build starts from a copy of it and adds the toolbars declared by the
	// source and, with AutoRegister, every referenced key.
	Toolbars registry.Registry[types.Toolbar]

	// Sink receives build warnings. Defaults to a LogSink.
	Sink WarningSink

	// AutoRegister registers every toolbar key referenced by a descriptor
	// instead of reporting it as a missing target
	AutoRegister bool
}

// ItemRegistry serves ordered item lists per toolbar. The layout is built
// lazily from the source on first use and cached until Invalidate.
//
// Builds and invalidations are serialised by one lock; readers share a
// completed, immutable Layout.
type ItemRegistry struct {
	source       Source
	base         registry.Registry[types.Toolbar]
	sink         WarningSink
	autoRegister bool
	logger       zerolog.Logger

	buildMu sync.Mutex
	mu      sync.RWMutex
	layout  *Layout
	known   registry.Registry[types.Toolbar]
	builds  int
}

// NewItemRegistry creates an ItemRegistry over source
func NewItemRegistry(source Source, opts Options) *ItemRegistry {
	logger := logging.GetLogger("toolbar.ItemRegistry")
	r := &ItemRegistry{
		source:       source,
		base:         opts.Toolbars,
		sink:         opts.Sink,
		autoRegister: opts.AutoRegister,
		logger:       logger,
	}
	if r.base == nil {
		r.base = registry.New[types.Toolbar]()
	}
	if r.sink == nil {
		r.sink = LogSink{Logger: logger}
	}
	return r
}

// Get returns the ordered item identifiers of key. It never fails: unknown
// keys and source errors yield an empty slice.
func (r *ItemRegistry) Get(key types.ToolbarKey) []string {
	layout, err := r.current()
	if err != nil {
		r.logger.Error().Err(err).Str("toolbar", string(key)).Msg("Failed to build toolbar layout")
		return []string{}
	}
	return layout.IDs(key)
}

// Layout returns the current layout, building it if needed
func (r *ItemRegistry) Layout() (*Layout, error) {
	return r.current()
}

// Toolbars returns the keys of all known toolbars, sorted
func (r *ItemRegistry) Toolbars() []types.ToolbarKey {
	values := r.Known()
	keys := make([]types.ToolbarKey, len(values))
	for i, tb := range values {
		keys[i] = tb.Key
	}
	return keys
}

// Known returns the toolbars of the latest build, sorted by key. Before
// the first build it returns the base set.
func (r *ItemRegistry) Known() []types.Toolbar {
	r.mu.RLock()
	known := r.known
	r.mu.RUnlock()
	if known == nil {
		return r.base.Values()
	}
	return known.Values()
}

// Invalidate drops the cached layout. The next Get rebuilds from the source.
func (r *ItemRegistry) Invalidate() {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()

	r.mu.Lock()
	r.layout = nil
	r.mu.Unlock()

	r.logger.Debug().Msg("Toolbar layout invalidated")
}

// Refresh invalidates and rebuilds immediately, returning any source error
func (r *ItemRegistry) Refresh() (*Layout, error) {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()

	r.mu.Lock()
	r.layout = nil
	r.mu.Unlock()

	return r.buildLocked()
}

// Builds returns how many times the layout has been built
func (r *ItemRegistry) Builds() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.builds
}

func (r *ItemRegistry) current() (*Layout, error) {
	r.mu.RLock()
	layout := r.layout
	r.mu.RUnlock()
	if layout != nil {
		return layout, nil
	}

	r.buildMu.Lock()
	defer r.buildMu.Unlock()

	// another caller may have built while we waited
	r.mu.RLock()
	layout = r.layout
	r.mu.RUnlock()
	if layout != nil {
		return layout, nil
	}

	return r.buildLocked()
}

// buildLocked must be called with buildMu held
func (r *ItemRegistry) buildLocked() (*Layout, error) {
	done := logging.LogOperationStart(r.logger, "build")
	defer done()

	// every build starts from the base set; declarations do not persist
	known := registry.New[types.Toolbar]()
	for _, tb := range r.base.Values() {
		if err := known.Put(string(tb.Key), tb); err != nil {
			return nil, err
		}
	}

	if ts, ok := r.source.(ToolbarSource); ok {
		declared, err := ts.Toolbars()
		if err != nil {
			return nil, err
		}
		for _, tb := range declared {
			if err := known.Put(string(tb.Key), tb); err != nil {
				return nil, err
			}
		}
	}

	descriptors, err := r.source.Descriptors()
	if err != nil {
		return nil, err
	}

	if r.autoRegister {
		for _, d := range descriptors {
			if d.Toolbar != "" && !known.Has(string(d.Toolbar)) {
				_ = known.Put(string(d.Toolbar), types.Toolbar{Key: d.Toolbar})
				r.logger.Debug().Str("toolbar", string(d.Toolbar)).Msg("Auto-registered toolbar")
			}
		}
	}

	layout := Build(descriptors, known, r.sink)

	r.mu.Lock()
	r.layout = layout
	r.known = known
	r.builds++
	r.mu.Unlock()

	r.logger.Info().
		Int("descriptors", len(descriptors)).
		Int("toolbars", len(layout.Keys())).
		Int("items", layout.Len()).
		Msg("Toolbar layout built")

	return layout, nil
}
