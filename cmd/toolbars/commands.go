package toolbars

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/arthur-debert/toolbars/internal/version"
	"github.com/arthur-debert/toolbars/pkg/cobrax/topics"
	"github.com/arthur-debert/toolbars/pkg/config"
	"github.com/arthur-debert/toolbars/pkg/logging"
	"github.com/arthur-debert/toolbars/pkg/output"
	"github.com/arthur-debert/toolbars/pkg/toolbar"
	"github.com/arthur-debert/toolbars/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func toolbarKeys(args []string) []types.ToolbarKey {
	keys := make([]types.ToolbarKey, len(args))
	for i, a := range args {
		keys[i] = types.ToolbarKey(a)
	}
	return keys
}

// toolbarCompletion completes known toolbar keys
func toolbarCompletion(opts *globalOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		app, err := opts.loadApp()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		if _, err := app.Items.Layout(); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		used := make(map[string]bool, len(args))
		for _, a := range args {
			used[a] = true
		}
		var keys []string
		for _, k := range app.Items.Toolbars() {
			if !used[string(k)] {
				keys = append(keys, string(k))
			}
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	}
}

func newLayoutCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "layout [toolbar...]",
		Short:             MsgLayoutShort,
		Long:              MsgLayoutLong,
		Example:           MsgLayoutExample,
		GroupID:           "core",
		ValidArgsFunction: toolbarCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.loadApp()
			if err != nil {
				return err
			}
			layout, err := app.Items.Layout()
			if err != nil {
				return fmt.Errorf(MsgErrBuild, err)
			}

			r, err := opts.renderer(cmd, app.Config)
			if err != nil {
				return err
			}
			return r.RenderLayout(layout, toolbarKeys(args))
		},
	}
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.loadApp()
			if err != nil {
				return err
			}
			res, err := app.Check()
			if err != nil {
				return fmt.Errorf(MsgErrBuild, err)
			}

			r, err := opts.renderer(cmd, app.Config)
			if err != nil {
				return err
			}
			if err := r.RenderWarnings(res.Warnings); err != nil {
				return err
			}
			if !r.Format().Structured() && len(res.Warnings) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), MsgCheckSummary, res.MissingTargets, res.Conflicts, res.Invalid)
			}
			return res.Err(strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)
	return cmd
}

func newToolbarsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "toolbars",
		Short:   MsgToolbarsShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.loadApp()
			if err != nil {
				return err
			}
			// manifest declarations are registered by a build
			if _, err := app.Items.Layout(); err != nil {
				return fmt.Errorf(MsgErrBuild, err)
			}

			r, err := opts.renderer(cmd, app.Config)
			if err != nil {
				return err
			}
			known := app.KnownToolbars()
			if len(known) == 0 && !r.Format().Structured() {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoToolbarsKnown)
				return nil
			}
			return r.RenderToolbars(known)
		},
	}
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:     "export [toolbar...]",
		Short:   MsgExportShort,
		Long:    MsgExportLong,
		Example: MsgExportExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.loadApp()
			if err != nil {
				return err
			}
			layout, err := app.Items.Layout()
			if err != nil {
				return fmt.Errorf(MsgErrBuild, err)
			}

			format, err := exportFormat(opts.format, app.Config.Output.Format)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			doc := output.NewLayoutDocument(layout, toolbarKeys(args))
			if err := output.Encode(w, format, doc); err != nil {
				return err
			}
			if outFile != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), MsgExportWritten, len(doc.Items), outFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", MsgFlagOutput)
	return cmd
}

// exportFormat picks the export encoding. An explicit flag must name a
// structured format; otherwise a structured config format is used and
// TOML is the default.
func exportFormat(flag, configured string) (output.Format, error) {
	if flag != "" {
		f, err := output.ParseFormat(flag)
		if err != nil {
			return 0, fmt.Errorf(MsgErrFormat, err)
		}
		if !f.Structured() {
			return 0, fmt.Errorf(MsgErrExportFmt, f)
		}
		return f, nil
	}
	if f, err := output.ParseFormat(configured); err == nil && f.Structured() {
		return f, nil
	}
	return output.FormatTOML, nil
}

func newWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "watch [toolbar...]",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := opts.loadApp()
			if err != nil {
				return err
			}
			if len(app.Config.Manifests) == 0 {
				return fmt.Errorf(MsgNoManifests)
			}

			r, err := opts.renderer(cmd, app.Config)
			if err != nil {
				return err
			}
			keys := toolbarKeys(args)

			layout, err := app.Rebuild()
			if err != nil {
				return fmt.Errorf(MsgErrBuild, err)
			}
			if err := renderBuild(cmd.OutOrStdout(), r, layout, keys, app.Warnings()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), MsgWatchingFormat, len(app.Config.Manifests))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return app.Watch(ctx, func(layout *toolbar.Layout, warnings []toolbar.Warning) {
				fmt.Fprintln(cmd.OutOrStdout())
				if err := renderBuild(cmd.OutOrStdout(), r, layout, keys, warnings); err != nil {
					log.Error().Err(err).Msg("Failed to render layout")
				}
			})
		},
	}
}

// renderBuild writes a layout followed by its build warnings, if any
func renderBuild(w io.Writer, r *output.Renderer, layout *toolbar.Layout, keys []types.ToolbarKey, warnings []toolbar.Warning) error {
	if err := r.RenderLayout(layout, keys); err != nil {
		return err
	}
	if len(warnings) == 0 {
		return nil
	}
	if !r.Format().Structured() {
		fmt.Fprintln(w)
	}
	return r.RenderWarnings(warnings)
}

func newGenConfigCmd() *cobra.Command {
	var write, force bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			path := config.UserConfigFile()
			logger := logging.GetLogger("cmd.gen-config")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf(MsgConfigFileExists, path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
			logger.Info().Str("path", path).Msg("Config written")
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newTopicsCmd(tm *topics.TopicManager) *cobra.Command {
	return &cobra.Command{
		Use:     "topics [topic]",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return tm.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				tm.WriteList(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}
			topic, ok := tm.GetTopic(args[0])
			if !ok {
				return fmt.Errorf("unknown topic %q", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
