package main

import (
	"fmt"
	"os"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lorehelper",
	Short: "Lore Helper compiles lore trees into NovelAI lorebooks",
	Long: `Lore Helper reads a YAML tree of lore entries, resolves inherited keys and
context settings, and writes a NovelAI lorebook file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: ./"+cli.ConfigFile+")")
	flags.String("output-dir", cli.DefaultOutputDir, "Directory lorebook files are written to")
	flags.String("texts-dir", "", "Loam repository holding textFrom documents")
	flags.String("log-level", cli.DefaultLogLevel, "Log level: debug, info, warn or error")
	flags.String("log-format", cli.DefaultLogFormat, "Log format: text or json")
	flags.String("metrics-file", "", "Write build metrics to this node-exporter textfile")
}

// newApp loads the layered configuration and wires the application.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := cli.LoadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
