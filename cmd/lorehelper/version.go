package main

import (
	"strings"

	lorehelper "github.com/TaleirOfDeynai/NAI-Lore-Helper"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lorehelper",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(cmd.OutOrStdout(), "lorehelper version "+strings.TrimSpace(lorehelper.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
