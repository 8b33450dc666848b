package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/changelint/internal/config"
	clierrors "github.com/ariel-frischer/changelint/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage changelint configuration",
		Long: `Manage changelint configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CHANGELINT_*)
  2. Project config (.changelint.yml, or --config)
  3. User config (~/.config/changelint/config.yml)
  4. Built-in defaults`,
		Example: `  # Show the effective configuration
  changelint config show

  # Write a commented project config
  changelint config init`,
		GroupID: GroupInternal,
	}

	cmd.AddCommand(newConfigShowCmd(g), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd(g *globalOptions) *cobra.Command {
	var (
		asJSON   bool
		template bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  argsWith(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if template {
				fmt.Fprint(out, config.GetDefaultConfigTemplate())
				return nil
			}
			return writeConfig(out, g.cfg, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&template, "template", false, "Print the commented default config instead")
	return cmd
}

func writeConfig(out io.Writer, cfg *config.Configuration, asJSON bool) error {
	values := cfg.ToMap()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(values); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented .changelint.yml in the current directory",
		Args:        argsWith(cobra.NoArgs),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigPath()
			if _, err := os.Stat(path); err == nil && !force {
				return clierrors.NewArgumentError(
					fmt.Sprintf("%s already exists", path),
					"Pass --force to overwrite it",
				)
			}
			if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
				return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing config")
			}
			green := color.New(color.FgGreen, color.Bold).SprintFunc()
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", green("✓"), path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
