// Package cli implements the changelint command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/changelint/internal/config"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/ariel-frischer/changelint/internal/git"
	"github.com/ariel-frischer/changelint/internal/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command groups shown in help output.
const (
	GroupChangelog = "changelog"
	GroupInternal  = "internal"
)

// skipConfigAnnotation marks commands that run without loading config.
const skipConfigAnnotation = "changelint/skip-config"

// globalOptions holds persistent flag values and the loaded configuration.
type globalOptions struct {
	configPath string
	dir        string
	debug      bool
	verbose    bool
	noColor    bool

	cfg *config.Configuration
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "changelint",
		Short: "Lint, query and edit per-component markdown changelogs",
		Long: `changelint works with markdown changelogs made of release headings
(## Unreleased, ## Release YYYY-MM-DD), change-kind subheadings (### Added)
and component-tagged entries such as:

  - (` + "`fee-seller`" + `): Sell fees on a schedule.

It validates structure and conventions, formats files canonically, answers
queries, and edits the Unreleased section without hand-editing markdown.`,
		Example: `  # Lint every changelog in the configured directory
  changelint lint

  # Show unreleased changes for one component
  changelint show unreleased --file changelog/infrastructure.md --component zk

  # Record an entry and cut a release
  changelint add fixed "Fix `+"`zk db reset`"+`" --component zk --file changelog/infrastructure.md
  changelint release 2021-01-12 --file changelog/infrastructure.md`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	cmd.AddGroup(
		&cobra.Group{ID: GroupChangelog, Title: "Changelog Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Other Commands:"},
	)
	cmd.SetHelpCommandGroupID(GroupInternal)
	cmd.SetCompletionCommandGroupID(GroupInternal)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine())
	})

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Project config file (default .changelint.yml)")
	pf.StringVar(&g.dir, "dir", "", "Changelog directory (overrides config 'dir')")
	pf.BoolVarP(&g.debug, "debug", "d", false, "Enable debug logging")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable informational logging")
	pf.BoolVar(&g.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		newShowCmd(g),
		newLintCmd(g),
		newFmtCmd(g),
		newAddCmd(g),
		newReleaseCmd(g),
		newExportCmd(g),
		newComponentsCmd(g),
		newInitCmd(g),
		newWatchCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)

	return cmd
}

// setup configures logging and color, then loads configuration.
func (g *globalOptions) setup(cmd *cobra.Command) error {
	if g.noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	log.Configure(log.Config{
		Level:   log.LevelFor(g.debug, g.verbose),
		Output:  cmd.ErrOrStderr(),
		Console: true,
		NoColor: color.NoColor,
	})
	if g.debug {
		git.SetDebugLogger(log.Printf("git"))
	}

	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return nil
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: g.configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "loading configuration",
			"Check .changelint.yml and CHANGELINT_* environment variables",
			"Print the defaults with: changelint config show --template",
		)
	}
	if g.dir != "" {
		cfg.Dir = g.dir
	}
	if cfg.Plain {
		color.NoColor = true
	}
	g.cfg = cfg

	l := log.WithComponent("cli")
	l.Debug().Str("dir", cfg.Dir).Strs("kinds", cfg.Kinds).Msg("configuration loaded")
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, rootCmd)
}

func execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if errors.Is(err, context.Canceled) {
		return ExitSuccess
	}
	return exitCode(cmd.ErrOrStderr(), err, color.NoColor)
}

// argsWith wraps a positional-argument validator so violations are reported
// as argument errors with the command's usage line.
func argsWith(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
				fmt.Sprintf("Run 'changelint %s --help' for details", cmd.Name()))
		}
		return nil
	}
}
