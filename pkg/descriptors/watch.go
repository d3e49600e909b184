package descriptors

import (
	"sync"

	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/logging"
	"github.com/knadh/koanf/providers/file"
)

// Watcher reports changes to manifest files. It wraps koanf's file
// provider, which watches each file's directory with fsnotify.
type Watcher struct {
	mu        sync.Mutex
	providers []*file.File
	closed    bool
}

// Watch starts watching every manifest file reachable from paths and calls
// onChange with the file path after each change. Directories are expanded
// once, at start; files added to them later are not watched.
func Watch(paths []string, onChange func(path string)) (*Watcher, error) {
	files, err := NewManifestSource(paths...).Files()
	if err != nil {
		return nil, err
	}

	log := logging.GetLogger("descriptors")
	w := &Watcher{}
	for _, f := range files {
		f := f
		p := file.Provider(f)
		err := p.Watch(func(event interface{}, err error) {
			if err != nil {
				log.Warn().Err(err).Str("path", f).Msg("Manifest watch error")
				return
			}
			log.Debug().Str("path", f).Msg("Manifest changed")
			onChange(f)
		})
		if err != nil {
			_ = w.Close()
			return nil, errors.Wrapf(err, errors.ErrManifestWatch, "failed to watch %s", f).
				WithDetail("path", f)
		}
		w.providers = append(w.providers, p)
	}

	log.Info().Int("files", len(files)).Msg("Watching manifests")
	return w, nil
}

// Close stops all watches. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var first error
	for _, p := range w.providers {
		if err := p.Unwatch(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Files returns how many files are being watched
func (w *Watcher) Files() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.providers)
}
