package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"clinassist/client"
	"clinassist/logging"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show backend index status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		log := logging.New(cfg.Logging)
		defer log.Sync()

		gateway := client.New(cfg.API.URL, cfg.API.Timeout(), log)
		report, err := gateway.Health(context.Background())
		if err != nil {
			return fmt.Errorf("backend unreachable at %s: %w", gateway.BaseURL(), err)
		}

		fmt.Printf("Status: %s (%d domains)\n", report.Status, report.TotalDomains)
		for domain, idx := range report.Indexes {
			state := "not loaded"
			if idx.Loaded {
				state = fmt.Sprintf("%d vectors", idx.NumVectors)
			}
			fmt.Printf("  %-15s %s\n", domain, state)
		}
		return nil
	},
}

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the clinical domains the backend serves",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		log := logging.New(cfg.Logging)
		defer log.Sync()

		gateway := client.New(cfg.API.URL, cfg.API.Timeout(), log)
		domains, err := gateway.Domains(context.Background())
		if err != nil {
			return fmt.Errorf("backend unreachable at %s: %w", gateway.BaseURL(), err)
		}

		for _, d := range domains {
			fmt.Printf("  %-15s %s\n", d.ID, d.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(domainsCmd)
}
