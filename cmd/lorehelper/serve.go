package main

import (
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve <project.yaml>",
	Short: "Start the live preview server",
	Long: `Serves the project over HTTP, compiling it on every request:
/lorebook, /graph, /validate, /events (SSE reloads), /metrics and /healthz.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		return app.Serve(ctx, args[0])
	},
}

func init() {
	serveCmd.Flags().String("addr", cli.DefaultAddr, "Listen address")
	rootCmd.AddCommand(serveCmd)
}
