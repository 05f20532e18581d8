package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/driveinfo/internal/core"
	"github.com/lumipallolabs/driveinfo/internal/logging"
	"github.com/lumipallolabs/driveinfo/internal/model"
	"github.com/lumipallolabs/driveinfo/internal/settings"
	"github.com/lumipallolabs/driveinfo/internal/ui"
)

var (
	// Flags
	flagConfig   string
	flagFailFast bool
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "driveinfo",
	Short: "Terminal drive lister",
	Long: `driveinfo lists the local drives with their type, format, label, size
and free space. Display preferences are remembered between runs.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	// Assigned here rather than in the literal: runTUI reads rootCmd.Version
	rootCmd.RunE = runTUI
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file path (default: ~/.driveinfo/settings.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug log to debug.log (env: "+logging.EnvVar+")")
	rootCmd.Flags().BoolVar(&flagFailFast, "fail-fast", false, "Exit when drives cannot be enumerated")
}

// exitError carries a process exit code out of a command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

var exitHooks []func()

// OnExit registers fn to run before Execute exits the process
func OnExit(fn func()) {
	exitHooks = append(exitHooks, fn)
}

// Execute runs the root command and exits with its status.
func Execute(version string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("driveinfo %s\n", version))
	code := run()
	for _, fn := range exitHooks {
		fn()
	}
	os.Exit(code)
}

func run() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if flagDebug && !logging.Enabled {
		logging.Enable("debug.log")
	}
	return nil
}

// openStore loads the settings store, falling back to defaults when the file is unusable
func openStore() *settings.Store {
	store := settings.NewStore(flagConfig)
	if err := store.Load(); err != nil {
		logging.Settings.Printf("Using default settings: %v", err)
	}
	return store
}

func runTUI(cmd *cobra.Command, args []string) error {
	store := openStore()
	if err := store.Watch(); err != nil {
		logging.Settings.Printf("Settings watch unavailable: %v", err)
	}

	ctrl := core.NewController(model.SystemSource(), store)
	app := ui.NewApp(ctrl, ui.Options{
		Version:  rootCmd.Version,
		FailFast: flagFailFast,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		ctrl.Stop()
		return err
	}

	if a, ok := final.(ui.App); ok && a.ExitCode() != 0 {
		return &exitError{code: a.ExitCode()}
	}
	return nil
}
