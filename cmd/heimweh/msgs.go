package heimweh

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link dotfiles from git castles into your home directory"
	MsgBootstrapShort  = "Clone a castle and the castles it declares"
	MsgLinksShort      = "Show the links a castle provides"
	MsgListShort       = "List all castles"
	MsgListLong        = "List prints the name of every castle found in the castles root."
	MsgLinkShort       = "Link castles into the home directory"
	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "heimweh version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrInitPaths = "failed to initialize paths: %w"
	MsgErrFailures  = "%d of %d castles failed"
	MsgErrIssues    = "%d links could not be materialized"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagHome    = "Home directory to link into (default: your home directory)"
	MsgFlagRoot    = "Directory holding the castles (default: <home>/.homesick)"
	MsgFlagConfig  = "Config file (default: $XDG_CONFIG_HOME/heimweh/config.toml)"
	MsgFlagNoColor = "Disable colored output"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagFormat  = "Output format: text, json or yaml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/bootstrap-long.txt
	msgBootstrapLongRaw string
	MsgBootstrapLong    = strings.TrimSpace(msgBootstrapLongRaw)

	//go:embed msgs/bootstrap-example.txt
	msgBootstrapExampleRaw string
	MsgBootstrapExample    = strings.TrimRight(msgBootstrapExampleRaw, "\n")

	//go:embed msgs/links-long.txt
	msgLinksLongRaw string
	MsgLinksLong    = strings.TrimSpace(msgLinksLongRaw)

	//go:embed msgs/links-example.txt
	msgLinksExampleRaw string
	MsgLinksExample    = strings.TrimRight(msgLinksExampleRaw, "\n")

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
