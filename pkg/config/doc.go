// Package config handles configuration management for toolbars.
// Configuration is layered with koanf: embedded defaults, then the user
// config file, then a project file in the working directory, then an
// explicit --config file, then TOOLBARS_* environment variables, and
// finally command-line overrides.
package config
