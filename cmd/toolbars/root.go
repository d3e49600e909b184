package toolbars

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/toolbars/internal/version"
	"github.com/arthur-debert/toolbars/pkg/cobrax/topics"
	"github.com/arthur-debert/toolbars/pkg/config"
	"github.com/arthur-debert/toolbars/pkg/core"
	"github.com/arthur-debert/toolbars/pkg/logging"
	"github.com/arthur-debert/toolbars/pkg/output"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	configFile string
	format     string
	noColor    bool
	manifests  []string

	// errOut receives log output; set once the command runs
	errOut io.Writer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "toolbars",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.errOut = cmd.ErrOrStderr()
			logging.SetupLoggerWithOutput(opts.verbosity, logging.ConsoleWriter(opts.errOut))
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.format, "format", "f", "", MsgFlagFormat)
	flags.BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)
	flags.StringSliceVarP(&opts.manifests, "manifest", "m", nil, MsgFlagManifest)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLayoutCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newToolbarsCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	tm, err := topics.Initialize(rootCmd, Topics(), topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	if err == nil {
		rootCmd.AddCommand(newTopicsCmd(tm))
	}

	return rootCmd
}

// loadConfig merges configuration files, environment and flags
func (o *globalOptions) loadConfig() (*config.Config, error) {
	overrides := map[string]interface{}{}
	if o.format != "" {
		overrides["output.format"] = o.format
	}
	if o.noColor {
		overrides["output.no_color"] = true
	}
	if o.verbosity > 0 {
		overrides["logging.verbosity"] = o.verbosity
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: o.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	// flag manifests come after configured ones so their items are
	// processed last
	cfg.Manifests = append(cfg.Manifests, o.manifests...)

	if cfg.Logging.Verbosity > o.verbosity {
		errOut := o.errOut
		if errOut == nil {
			errOut = os.Stderr
		}
		logging.SetupLoggerWithOutput(cfg.Logging.Verbosity, logging.ConsoleWriter(errOut))
	}
	return cfg, nil
}

// loadApp builds the App for a command
func (o *globalOptions) loadApp() (*core.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return core.New(cfg)
}

// renderer resolves the output format for cmd
func (o *globalOptions) renderer(cmd *cobra.Command, cfg *config.Config) (*output.Renderer, error) {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrFormat, err)
	}

	var file *os.File
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		file = f
	}
	format = output.Resolve(format, file, cfg.Output.NoColor)
	return output.NewRenderer(cmd.OutOrStdout(), format), nil
}
