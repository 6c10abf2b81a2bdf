package main

import (
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <project.yaml>",
	Short: "Export the entry tree visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the entry tree. Entries that fail validation are highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Graph(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
