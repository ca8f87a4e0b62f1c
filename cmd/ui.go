package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/clientdb/internal/cli"
	"github.com/spf13/cobra"
)

func runUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	m, err := cli.NewRegistry(ctx, s, current.logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running registry UI: %w", err)
	}

	return nil
}
