package commands

import (
	"fmt"

	"ctp/internal/cli"
	"ctp/internal/config"
	"ctp/internal/storage"
	"ctp/internal/ui"

	"github.com/spf13/cobra"
)

// ViewCommand shows the last run's failures in an interactive viewer
type ViewCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  *ui.LogViewer
}

// NewViewCommand creates a new ViewCommand
func NewViewCommand(cfg *config.Config, st storage.Storage, viewer *ui.LogViewer) *ViewCommand {
	return &ViewCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (vc *ViewCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := vc.config.ValidateBuildDir(); err != nil {
		return cli.Exitf(cli.ExitUsage, err)
	}

	summary, err := vc.storage.Load()
	if err != nil {
		return cli.Exitf(cli.ExitFailure, fmt.Errorf("no saved run summary (run `ctp run` first): %w", err))
	}
	return vc.viewer.View(summary)
}
