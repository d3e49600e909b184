package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/toolbars/pkg/errors"
	"github.com/arthur-debert/toolbars/pkg/logging"
	"github.com/arthur-debert/toolbars/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load
const EnvPrefix = "TOOLBARS_"

// AppDirName is the directory name used under XDG config home
const AppDirName = "toolbars"

// ValidFormats lists the accepted output.format values
var ValidFormats = []string{"auto", "term", "text", "json", "toml", "yaml"}

// Config is the fully merged configuration
type Config struct {
	Toolbars  []ToolbarConfig `koanf:"toolbars"`
	Manifests []string        `koanf:"manifests"`
	Registry  RegistryConfig  `koanf:"registry"`
	Output    OutputConfig    `koanf:"output"`
	Logging   LoggingConfig   `koanf:"logging"`

	// Sources lists the files that contributed, in load order
	Sources []string `koanf:"-"`
}

// ToolbarConfig declares a known toolbar
type ToolbarConfig struct {
	Key   string `koanf:"key"`
	Title string `koanf:"title"`
}

// RegistryConfig controls registry behaviour
type RegistryConfig struct {
	AutoRegister bool `koanf:"auto_register"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Format  string `koanf:"format"`
	NoColor bool   `koanf:"no_color"`
}

// LoggingConfig controls the logger
type LoggingConfig struct {
	Verbosity int `koanf:"verbosity"`
}

// LoadOptions tunes where Load looks for configuration
type LoadOptions struct {
	// ConfigFile is an explicit config file. It must exist.
	ConfigFile string

	// WorkDir is searched for .toolbars.toml or toolbars.toml.
	// Defaults to the current directory.
	WorkDir string

	// UserConfigDir overrides the XDG config directory
	UserConfigDir string

	// Overrides are applied last, keyed by dotted path (e.g. "output.format")
	Overrides map[string]interface{}
}

// Load builds the merged configuration
func Load(opts LoadOptions) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config under XDG config home
	userFile := filepath.Join(userConfigDir(opts.UserConfigDir), "config.toml")
	if fileExists(userFile) {
		if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load user config from %s", userFile)
		}
		sources = append(sources, userFile)
	}

	// 3. Project config in the working directory
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	for _, filename := range []string{".toolbars.toml", "toolbars.toml"} {
		path := filepath.Join(workDir, filename)
		if fileExists(path) {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load project config from %s", path)
			}
			sources = append(sources, path)
			break
		}
	}

	// 4. Explicit config file
	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, errors.Newf(errors.ErrConfigLoad, "config file %s does not exist", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if err := k.Load(file.Provider(opts.ConfigFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", opts.ConfigFile)
		}
		sources = append(sources, opts.ConfigFile)
	}

	// 5. Environment, TOOLBARS_OUTPUT_NO_COLOR -> output.no_color
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 6. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Strs("sources", sources).
		Int("toolbars", len(cfg.Toolbars)).
		Strs("manifests", cfg.Manifests).
		Msg("Configuration loaded")

	return cfg, nil
}

// unmarshal decodes the merged koanf tree into a Config
func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	postProcess(&cfg)
	return &cfg, nil
}

// Default returns the configuration built from embedded defaults only.
// It panics if the embedded defaults are broken.
func Default() *Config {
	cfg, err := defaultsFrom(defaultConfig)
	if err != nil {
		panic(err)
	}
	return cfg
}

func defaultsFrom(data []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k)
}

// Validate checks invariants the loaders cannot express
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Toolbars))
	for i, tb := range c.Toolbars {
		if tb.Key == "" {
			return errors.Newf(errors.ErrConfigValid, "toolbars[%d] has an empty key", i)
		}
		if seen[tb.Key] {
			return errors.Newf(errors.ErrConfigValid, "toolbar %q is declared more than once", tb.Key).
				WithDetail("toolbar", tb.Key)
		}
		seen[tb.Key] = true
	}

	valid := false
	for _, f := range ValidFormats {
		if c.Output.Format == f {
			valid = true
			break
		}
	}
	if !valid {
		return errors.Newf(errors.ErrConfigValid, "unknown output format %q (want one of %s)",
			c.Output.Format, strings.Join(ValidFormats, ", "))
	}

	if c.Logging.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "logging.verbosity must not be negative, got %d", c.Logging.Verbosity)
	}
	return nil
}

// KnownToolbars converts the configured toolbars to their declarations
func (c *Config) KnownToolbars() []types.Toolbar {
	out := make([]types.Toolbar, len(c.Toolbars))
	for i, tb := range c.Toolbars {
		out[i] = types.Toolbar{Key: types.ToolbarKey(tb.Key), Title: tb.Title}
	}
	return out
}

func postProcess(cfg *Config) {
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if cfg.Output.Format == "" {
		cfg.Output.Format = "auto"
	}

	manifests := cfg.Manifests[:0]
	for _, m := range cfg.Manifests {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		manifests = append(manifests, expandHome(m))
	}
	cfg.Manifests = manifests

	for i := range cfg.Toolbars {
		cfg.Toolbars[i].Key = strings.TrimSpace(cfg.Toolbars[i].Key)
	}
}

// envKey maps TOOLBARS_SECTION_SOME_KEY to section.some_key. Only the
// first underscore separates the section.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// UserConfigFile returns the path of the user config file
func UserConfigFile() string {
	return filepath.Join(userConfigDir(""), "config.toml")
}

func userConfigDir(override string) string {
	if override != "" {
		return override
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
