package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/jfrag/config"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var verbose int
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:          "jfrag",
		Short:        "Lexical and syntax analyzer for a tiny Java fragment",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Resolve(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			*cfg = *loaded
			if cmd.Flags().Changed("verbose") {
				cfg.Log.Verbosity = verbose
			}
			commonlog.Configure(cfg.Log.Verbosity, cfg.LogPath())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $"+config.EnvPath+", ./jfrag.toml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newTokensCmd(cfg))
	rootCmd.AddCommand(newCheckCmd(cfg))
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newUICmd(cfg))
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}
