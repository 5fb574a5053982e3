package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"clinassist/client"
	"clinassist/logging"
	"clinassist/monitor"
	"clinassist/tui/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat (the default)",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	defaultDomain := client.Domain(cfg.API.DefaultDomain)
	if !defaultDomain.Valid() {
		return fmt.Errorf("unknown default domain %q", cfg.API.DefaultDomain)
	}

	log := logging.New(cfg.Logging)
	defer log.Sync()

	gateway := client.New(cfg.API.URL, cfg.API.Timeout(), log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon := monitor.New(gateway, cfg.API.HealthInterval(), log)
	go mon.Run(ctx)

	model := chat.InitialModel(gateway, mon, defaultDomain, cfg.Graph.Dir, log)
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat terminated: %w", err)
	}
	return nil
}
