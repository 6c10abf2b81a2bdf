package main

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <project.yaml>",
	Short: "Show a summary table of the compiled lorebook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Preview(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
