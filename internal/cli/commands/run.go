package commands

import (
	"ctp/internal/cli"
	"ctp/internal/config"
	"ctp/internal/execution"
	"ctp/internal/parser"
	"ctp/internal/storage"
	"ctp/internal/ui"

	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	parser    *parser.CTestParser
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, ctestParser *parser.CTestParser, st storage.Storage, formatter *ui.Formatter) *RunCommand {
	return &RunCommand{
		config:    cfg,
		parser:    ctestParser,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// Usage/environment errors exit with code 2 before anything is spawned.
	if err := rc.config.ValidateBuildDir(); err != nil {
		return cli.Exitf(cli.ExitUsage, err)
	}
	env, err := config.BuildEnv(rc.config.Flags.EnvFile, rc.config.Flags.EnvVars)
	if err != nil {
		return cli.Exitf(cli.ExitUsage, err)
	}
	rc.config.Env = env

	runner := execution.NewRunner(env)
	recon := execution.NewReconstructor(rc.config, runner, rc.parser)
	engine := execution.NewEngine(rc.config, runner, rc.parser, recon, rc.storage)
	engine.ShowProgress = true

	code, summary, err := engine.Run()
	if err != nil {
		return cli.Exitf(cli.ExitFailure, err)
	}
	if code == 0 {
		return nil
	}

	if summary != nil && !rc.config.Flags.NoSecondPass {
		rc.formatter.PrintSummary(summary)
	}
	return cli.ExitCode(code)
}
