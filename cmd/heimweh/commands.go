package heimweh

import (
	"fmt"
	"io"

	"github.com/arthur-debert/heimweh/internal/version"
	"github.com/arthur-debert/heimweh/pkg/bootstrap"
	"github.com/arthur-debert/heimweh/pkg/errors"
	"github.com/arthur-debert/heimweh/pkg/filesystem"
	"github.com/arthur-debert/heimweh/pkg/logging"
	"github.com/arthur-debert/heimweh/pkg/materialize"
	"github.com/arthur-debert/heimweh/pkg/output"
	"github.com/arthur-debert/heimweh/pkg/repository"
	"github.com/arthur-debert/heimweh/pkg/types"
	"github.com/spf13/cobra"
)

func newBootstrapCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "bootstrap <repository-url>",
		Short:   MsgBootstrapShort,
		Long:    MsgBootstrapLong,
		Example: MsgBootstrapExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			r, err := a.renderer(cmd, format)
			if err != nil {
				return err
			}

			var progress io.Writer
			if a.verbosity > 0 {
				progress = cmd.ErrOrStderr()
			}

			result, err := bootstrap.Bootstrap(cmd.Context(), bootstrap.Options{
				CastlesRoot:  a.world.Paths().CastlesRoot(),
				ManifestName: a.cfg.Castles.Manifest,
				Cloner:       repository.GitCloner{Progress: progress},
				DirMode:      a.cfg.Link.DirMode,
			}, args[0])
			if err != nil {
				return err
			}

			if err := r.RenderBootstrap(*result); err != nil {
				return err
			}
			total := len(result.Cloned) + len(result.Skipped) + len(result.Failures)
			return reportFailures(cmd.ErrOrStderr(), result.Failures, total)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	return cmd
}

func newLinksCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:               "links <castle>",
		Short:             MsgLinksShort,
		Long:              MsgLinksLong,
		Example:           MsgLinksExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.castleNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			r, err := a.renderer(cmd, format)
			if err != nil {
				return err
			}

			c, err := a.world.CastleForName(args[0])
			if err != nil {
				return err
			}
			links, err := a.world.Links(c)
			if err != nil {
				return err
			}

			return r.RenderLinks(types.LinksResult{Castle: c.Name(), Links: links})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			r, err := a.renderer(cmd, format)
			if err != nil {
				return err
			}

			castles, failures, err := a.world.Castles()
			if err != nil {
				return err
			}

			result := types.ListCastlesResult{
				Castles:  make([]types.CastleInfo, 0, len(castles)),
				Failures: failures,
			}
			for _, c := range castles {
				result.Castles = append(result.Castles, c.Info())
			}

			if err := r.RenderCastles(result); err != nil {
				return err
			}
			return reportFailures(cmd.ErrOrStderr(), failures, len(castles)+len(failures))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	return cmd
}

func newLinkCmd(a *app) *cobra.Command {
	var (
		format string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:               "link [castles...]",
		Short:             MsgLinkShort,
		Long:              MsgLinkLong,
		Example:           MsgLinkExample,
		GroupID:           "core",
		ValidArgsFunction: a.castleNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.link")

			if err := a.setup(); err != nil {
				return err
			}
			r, err := a.renderer(cmd, format)
			if err != nil {
				return err
			}

			castles, failures, err := a.world.Select(args)
			if err != nil {
				return err
			}

			planner := materialize.NewPlanner(materialize.Options{
				FS:      filesystem.NewOS(),
				HomeDir: a.world.Paths().HomeDir(),
				DirMode: a.cfg.Link.DirMode,
			})
			plan := planner.Plan(castles)

			logger.Info().
				Bool("dry_run", dryRun).
				Int("castles", len(castles)).
				Int("operations", len(plan.Operations)).
				Int("issues", len(plan.Issues)).
				Msg("Link plan computed")

			view := output.PlanView{DryRun: dryRun, Unchanged: plan.Unchanged}
			issues := plan.Issues
			if dryRun {
				view.Operations = plan.Ordered()
			} else {
				executor := materialize.NewExecutor(filesystem.NewSynthOS())
				done, failed := executor.Execute(cmd.Context(), plan)
				view.Operations = done
				issues = append(issues, failed...)
			}

			if err := r.RenderPlan(view); err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			for _, f := range failures {
				output.PrintError(stderr, f)
			}
			errorCount := 0
			for _, issue := range issues {
				if issue.Severity == materialize.SeverityError {
					output.PrintError(stderr, issue)
					errorCount++
				}
			}

			if len(failures) > 0 {
				return errors.Newf(errors.ErrPartialFailure, MsgErrFailures, len(failures), len(castles)+len(failures))
			}
			if errorCount > 0 {
				return errors.Newf(errors.ErrPartialFailure, MsgErrIssues, errorCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", MsgFlagFormat)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Run != nil {
				helpCmd.Run(helpCmd, []string{"topics"})
				return nil
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// reportFailures prints each failure and summarizes them as the error
// making the process exit non-zero
func reportFailures(w io.Writer, failures []types.CastleFailure, total int) error {
	if len(failures) == 0 {
		return nil
	}
	for _, f := range failures {
		output.PrintError(w, f)
	}
	return errors.Newf(errors.ErrPartialFailure, MsgErrFailures, len(failures), total)
}
