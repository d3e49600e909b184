package output

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Width      int    `yaml:"width,omitempty"`
	Align      string `yaml:"align,omitempty"`
}

// StylesConfig represents the complete styles configuration
type StylesConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles bound to one renderer
type Styles map[string]lipgloss.Style

// Get returns the named style, or a plain style when unknown
func (s Styles) Get(name string) lipgloss.Style {
	if st, ok := s[name]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// ParseStyles builds styles from YAML for renderer
func ParseStyles(data []byte, renderer *lipgloss.Renderer) (Styles, error) {
	var cfg StylesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(Styles, len(cfg.Styles))
	for name, def := range cfg.Styles {
		styles[name] = buildStyle(renderer, def, colors)
	}
	return styles, nil
}

// DefaultStyles returns the embedded styles bound to renderer
func DefaultStyles(renderer *lipgloss.Renderer) Styles {
	styles, err := ParseStyles(defaultStyles, renderer)
	if err != nil {
		// the embedded file is part of the build
		panic(err)
	}
	return styles
}

func buildStyle(renderer *lipgloss.Renderer, def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := renderer.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Foreground != "" {
		if c, ok := colors[def.Foreground]; ok {
			style = style.Foreground(c)
		} else {
			style = style.Foreground(lipgloss.Color(def.Foreground))
		}
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	switch def.Align {
	case "right":
		style = style.Align(lipgloss.Right)
	case "center":
		style = style.Align(lipgloss.Center)
	}
	return style
}
