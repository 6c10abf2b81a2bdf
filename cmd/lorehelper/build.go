package main

import (
	"fmt"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/cli"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <project.yaml>",
	Short: "Compile a project into a lorebook file",
	Long: `Compiles the project tree, validates the result, and writes
<output-dir>/<name>.lorebook. With --watch the project is rebuilt on every change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			return app.Watch(ctx, args[0])
		}

		out, err := app.Build(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolP("watch", "w", false, "Rebuild when the project file changes")
	rootCmd.AddCommand(buildCmd)
}
