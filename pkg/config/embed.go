package config

import (
	_ "embed"

	"github.com/arthur-debert/toolbars/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider feeds embedded bytes to a koanf parser
type rawBytesProvider struct{ bytes []byte }

// ReadBytes implements koanf.Provider
func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }

// Read implements koanf.Provider. Only ReadBytes is supported; koanf calls
// it whenever a parser is given.
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "raw bytes provider needs a parser")
}
