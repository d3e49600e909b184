package output

import (
	"os"
	"strings"

	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto picks FormatTerminal or FormatText from the environment
	FormatAuto Format = iota
	// FormatTerminal renders styled terminal output
	FormatTerminal
	// FormatText renders plain text output without any styling
	FormatText
	// FormatJSON renders JSON
	FormatJSON
	// FormatTOML renders TOML
	FormatTOML
	// FormatYAML renders YAML
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "term"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Structured reports whether f is a machine-readable format
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatTOML || f == FormatYAML
}

// ParseFormat parses a string into a Format value
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, errors.Newf(errors.ErrOutputFormat, "unknown format: %s", s)
	}
}

// DetectFormat determines the appropriate format for output
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}

	if output == nil || (!isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd())) {
		return FormatText
	}

	if termenv.ColorProfile() == termenv.Ascii {
		return FormatText
	}

	return FormatTerminal
}

// Resolve turns FormatAuto into a concrete format for output. noColor
// downgrades FormatTerminal to FormatText.
func Resolve(f Format, output *os.File, noColor bool) Format {
	if f == FormatAuto {
		f = DetectFormat(output)
	}
	if noColor && f == FormatTerminal {
		f = FormatText
	}
	return f
}
