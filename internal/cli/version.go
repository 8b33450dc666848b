package cli

import (
	"fmt"

	"github.com/ariel-frischer/changelint/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/changelint"

func newVersionCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:         "version",
		Aliases:     []string{"v"},
		Short:       "Display version information (v)",
		Long:        "Display version, commit, build date, and Go version information for changelint",
		Example:     "  changelint version\n  changelint version --plain",
		GroupID:     GroupInternal,
		Args:        argsWith(cobra.NoArgs),
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			out := cmd.OutOrStdout()

			if plain || color.NoColor {
				fmt.Fprintf(out, "changelint %s\n", info.Version)
				fmt.Fprintf(out, "commit: %s\n", info.Commit)
				fmt.Fprintf(out, "built: %s\n", info.BuildDate)
				fmt.Fprintf(out, "go: %s\n", info.GoVersion)
				fmt.Fprintf(out, "platform: %s\n", info.Platform)
				return
			}

			cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			dim := color.New(color.Faint).SprintFunc()

			fmt.Fprintf(out, "%s %s\n\n", cyan("changelint"), info.Version)
			rows := []struct{ label, value string }{
				{"Commit", version.ShortCommit(info.Commit)},
				{"Built", info.BuildDate},
				{"Go", info.GoVersion},
				{"Platform", info.Platform},
			}
			for _, r := range rows {
				fmt.Fprintf(out, "  %s  %s\n", yellow(fmt.Sprintf("%-8s", r.label)), r.value)
			}
			fmt.Fprintf(out, "\n%s\n", dim(SourceURL))
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Plain output without formatting")
	return cmd
}
