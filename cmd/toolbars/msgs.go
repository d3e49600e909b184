package toolbars

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Order toolbar items from manifests"
	MsgLayoutShort     = "Print the ordered items of toolbars"
	MsgCheckShort      = "Build the layout and report warnings"
	MsgToolbarsShort   = "List known toolbars"
	MsgExportShort     = "Export the layout as a manifest"
	MsgWatchShort      = "Reprint the layout whenever manifests change"
	MsgGenConfigShort  = "Generate a configuration file"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat    = "toolbars version %s\n"
	MsgCommitFormat     = "  commit: %s\n"
	MsgBuiltFormat      = "  built:  %s\n"
	MsgConfigWritten    = "Wrote configuration to %s\n"
	MsgExportWritten    = "Exported %d item(s) to %s\n"
	MsgWatchingFormat   = "Watching %d manifest path(s), press Ctrl-C to stop\n"
	MsgNoManifests      = "no manifests configured, pass them with --manifest or set manifests in the config file"
	MsgCheckSummary     = "%d missing target(s), %d conflict(s), %d malformed item(s)\n"
	MsgNoToolbarsKnown  = "No toolbars declared."
	MsgConfigFileExists = "config file %s already exists"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrBuild      = "failed to build layout: %w"
	MsgErrFormat     = "invalid format: %w"
	MsgErrExportFmt  = "export needs a structured format (json, toml or yaml), got %s"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default is $XDG_CONFIG_HOME/toolbars/config.toml)"
	MsgFlagFormat   = "Output format: auto, term, text, json, toml or yaml"
	MsgFlagNoColor  = "Disable colored output"
	MsgFlagManifest = "Manifest file or directory, may be repeated"
	MsgFlagStrict   = "Also fail when items conflict"
	MsgFlagOutput   = "Write to file instead of stdout"
	MsgFlagWrite    = "Write to the user config file instead of stdout"
	MsgFlagForce    = "Overwrite an existing file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/layout-long.txt
	msgLayoutLongRaw string
	MsgLayoutLong    = strings.TrimSpace(msgLayoutLongRaw)

	//go:embed msgs/layout-example.txt
	msgLayoutExampleRaw string
	MsgLayoutExample    = strings.TrimSpace(msgLayoutExampleRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/export-long.txt
	msgExportLongRaw string
	MsgExportLong    = strings.TrimSpace(msgExportLongRaw)

	//go:embed msgs/export-example.txt
	msgExportExampleRaw string
	MsgExportExample    = strings.TrimSpace(msgExportExampleRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
