package output

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes v to w in a structured format
func Encode(w io.Writer, format Format, v interface{}) error {
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	case FormatTOML:
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		err = enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(v)
		if err == nil {
			err = enc.Close()
		}
	default:
		return errors.Newf(errors.ErrOutputFormat, "%s is not a structured format", format)
	}

	if err != nil {
		return errors.Wrapf(err, errors.ErrOutputWrite, "failed to write %s output", format)
	}
	return nil
}
