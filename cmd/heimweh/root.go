// Package heimweh holds the cobra commands of the heimweh CLI.
package heimweh

import (
	"embed"
	"fmt"

	"github.com/arthur-debert/heimweh/internal/version"
	"github.com/arthur-debert/heimweh/pkg/cobrax/topics"
	"github.com/arthur-debert/heimweh/pkg/config"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/output"
	"github.com/arthur-debert/heimweh/pkg/paths"
	"github.com/arthur-debert/heimweh/pkg/world"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// app carries the global flags and what is built from them
type app struct {
	verbosity  int
	home       string
	root       string
	configFile string
	noColor    bool

	env   paths.Environment
	cfg   *config.Config
	world *world.World
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(paths.OSEnvironment{})
}

func newRootCmd(env paths.Environment) *cobra.Command {
	initTemplateFormatting()

	a := &app{env: env}

	rootCmd := &cobra.Command{
		Use:     "heimweh",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(a.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.home, "home", "", MsgFlagHome)
	rootCmd.PersistentFlags().StringVar(&a.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newBootstrapCmd(a))
	rootCmd.AddCommand(newLinksCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newLinkCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	opts := topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.InitializeWithOptions(rootCmd, topicsFS, "topics", opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// setup loads the configuration and builds the world. Commands call it
// themselves so that help and completion work with a broken config.
func (a *app) setup() error {
	overrides := map[string]interface{}{}
	if a.home != "" {
		overrides["home"] = a.home
	}
	if a.root != "" {
		overrides["root"] = a.root
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.configFile,
		Overrides:  overrides,
		Env:        a.env,
	})
	if err != nil {
		return err
	}

	p, err := paths.New(a.env, paths.Options{
		HomeDir:        cfg.Home,
		CastlesRoot:    cfg.Root,
		CastlesDirName: cfg.Castles.Dir,
	})
	if err != nil {
		return fmt.Errorf(MsgErrInitPaths, err)
	}

	log.Debug().
		Str("home", p.HomeDir()).
		Str("castles_root", p.CastlesRoot()).
		Msg("Paths initialized")

	a.cfg = cfg
	a.world = world.New(p)
	return nil
}

// renderer returns a renderer for cmd's stdout. An empty format falls
// back to the configured one.
func (a *app) renderer(cmd *cobra.Command, format string) (*output.Renderer, error) {
	if format == "" {
		format = a.cfg.Output.Format
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(cmd.OutOrStdout(), f, a.noColor)
}

// castleNamesCompletion provides shell completion for castle names
func (a *app) castleNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if err := a.setup(); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names, err := a.world.CastleNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		seen[arg] = true
	}

	var available []string
	for _, name := range names {
		if !seen[name] {
			available = append(available, name)
		}
	}
	return available, cobra.ShellCompDirectiveNoFileComp
}
