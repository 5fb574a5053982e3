// Package cli wires the cobra command tree: the interactive chat TUI by
// default, plus one-shot commands for scripted use.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clinassist/config"
)

var (
	cfgFile string
	apiURL  string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "clinassist",
	Short: "Terminal client for the clinical RAG assistant",
	Long: `clinassist is a terminal client for the clinical RAG backend: ask
evidence-based medical questions scoped to a clinical domain, rate the
answers, and generate visualizations of the retrieved evidence.

Running without a subcommand starts the interactive chat.

Example usage:
  clinassist                                        # interactive chat
  clinassist ask -q "symptoms of COVID-19" -d covid # one-shot query
  clinassist graph -q "diabetes management" -t wordcloud
  clinassist health                                 # backend index status`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if apiURL != "" {
			cfg.API.URL = apiURL
		}
		return nil
	},
	RunE: runChat,
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (overrides config)")
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return cfg
}
