package commands

import (
	"ctp/internal/cli"
	"ctp/internal/config"
	"ctp/internal/parser"
	"ctp/internal/storage"
	"ctp/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	Failed *FailedCommand
	View   *ViewCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	ctestParser := parser.NewCTestParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	viewer := ui.NewLogViewer()

	return &Commands{
		Run:    NewRunCommand(cfg, ctestParser, jsonStorage, formatter),
		Failed: NewFailedCommand(cfg, ctestParser, formatter),
		View:   NewViewCommand(cfg, jsonStorage, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run [-- ctest-args...]",
		Short: "Run CTest in two passes",
		Long: "Run CTest quietly to identify failures, then rerun each failed test " +
			"individually with full verbosity. Arguments after \"--\" are passed to ctest in both passes.",
		RunE: c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags(args)
			applyFlags(cfg)
			return nil
		},
	}
	runCmd.Flags().StringVarP(&flags.BuildDir, "build-dir", "b", config.DefaultBuildDir, "CMake build directory")
	runCmd.Flags().BoolVar(&flags.Pause, "pause", false, "Wait for Enter between failed-test reruns")
	runCmd.Flags().StringArrayVarP(&flags.EnvVars, "env", "e", nil, "Set an environment variable for every spawned process, KEY=VALUE (repeatable)")
	runCmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "Load environment variables from a dotenv file before --env overrides")
	runCmd.Flags().BoolVar(&flags.NoSecondPass, "no-second-pass", false, "Only run the first pass and print the failed test list")
	runCmd.Flags().BoolVar(&flags.NoCasePass, "no-case-pass", false, "Do not attempt a case-only rerun after a pass-2 failure")
	runCmd.Flags().StringVar(&flags.CTestPath, "ctest", config.DefaultCTestPath, "ctest executable to invoke")
	rootCmd.AddCommand(runCmd)

	// Failed command
	failedCmd := &cobra.Command{
		Use:   "failed",
		Short: "Print the failed tests from the last CTest run",
		Long:  "Read Testing/Temporary/LastTestsFailed.log from the build directory and print the failed test list without running anything",
		RunE:  c.Failed.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags(nil)
			applyFlags(cfg)
			return nil
		},
	}
	failedCmd.Flags().StringVarP(&flags.BuildDir, "build-dir", "b", config.DefaultBuildDir, "CMake build directory")
	rootCmd.AddCommand(failedCmd)

	// View command
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the last run's failures interactively",
		Long:  "Display the failed tests and rerun logs of the last two-pass run in an interactive viewer",
		RunE:  c.View.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags(nil)
			applyFlags(cfg)
			return nil
		},
	}
	viewCmd.Flags().StringVarP(&flags.BuildDir, "build-dir", "b", config.DefaultBuildDir, "CMake build directory")
	rootCmd.AddCommand(viewCmd)
}

// applyFlags copies parsed flag values onto the shared config.
func applyFlags(cfg *config.Config) {
	updated := config.Load(cfg.Flags)
	cfg.BuildDir = updated.BuildDir
	cfg.CTestPath = updated.CTestPath
}
