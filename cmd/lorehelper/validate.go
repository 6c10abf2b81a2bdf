package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project.yaml>",
	Short: "Lint the compiled lorebook",
	Long:  `Compiles the project and checks every record: keys must compile as regular expressions and context settings must be in range.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := app.Validate(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
