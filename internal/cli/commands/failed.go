package commands

import (
	"ctp/internal/cli"
	"ctp/internal/config"
	"ctp/internal/parser"
	"ctp/internal/ui"

	"github.com/spf13/cobra"
)

// FailedCommand prints the failed tests recorded by the last CTest run
type FailedCommand struct {
	config    *config.Config
	parser    *parser.CTestParser
	formatter *ui.Formatter
}

// NewFailedCommand creates a new FailedCommand
func NewFailedCommand(cfg *config.Config, ctestParser *parser.CTestParser, formatter *ui.Formatter) *FailedCommand {
	return &FailedCommand{
		config:    cfg,
		parser:    ctestParser,
		formatter: formatter,
	}
}

// Execute runs the command
func (fc *FailedCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := fc.config.ValidateBuildDir(); err != nil {
		return cli.Exitf(cli.ExitUsage, err)
	}

	names := fc.parser.FailedFromLogFile(fc.config.LastFailedLogPath())
	fc.formatter.PrintFailedList(names)
	if len(names) > 0 {
		return cli.ExitCode(cli.ExitFailure)
	}
	return nil
}
