package main

import (
	"errors"
	"fmt"
	"os"

	"ctp/internal/cli"
	"ctp/internal/cli/commands"
	"ctp/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "ctp",
		Short:   "Two-pass CTest runner",
		Long:    `Run CTest in two passes: a quiet full run to cheaply identify failing tests, then a verbose per-test rerun of each failure, with an optional case-only rerun to isolate the failing sub-case.`,
		Version: version,
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
