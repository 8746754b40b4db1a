package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"

	awsx "github.com/jayesh820/AWS-TASK/internal/aws"
	"github.com/jayesh820/AWS-TASK/internal/config"
	"github.com/jayesh820/AWS-TASK/internal/logs"
	appui "github.com/jayesh820/AWS-TASK/internal/ui/app"
)

type cliFlags struct {
	profile string
	region  string
	logFile string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:          "cwview",
		Short:        "Browse CloudWatch Logs groups, streams and events from the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.profile, "profile", "", "AWS shared config profile (skips the credential form)")
	cmd.PersistentFlags().StringVar(&flags.region, "region", "", "AWS region")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write diagnostics to this file")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "enable verbose logging")

	return cmd
}

func run(flags cliFlags) error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	fileCfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	runtime := config.Resolve(config.Flags{
		Profile: flags.profile,
		Region:  flags.region,
		LogFile: flags.logFile,
		Verbose: flags.verbose,
	}, config.FromEnv(), fileCfg)

	logger, closeLog, err := newLogger(runtime)
	if err != nil {
		return err
	}
	defer closeLog()

	deps := appui.Deps{
		Factory:  logs.NewFactory(logger),
		Browser:  logs.NewBrowser(logs.WithLogger(logger)),
		Loader:   awsx.NewLoader(),
		Identity: awsx.NewIdentityChecker(),
		Logger:   logger,
	}

	appModel, err := appui.NewModel(deps, runtime)
	if err != nil {
		return err
	}

	p := tea.NewProgram(appModel, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return err
	}

	if finalModel, ok := result.(appui.Model); ok {
		runtime = finalModel.Runtime()
	}

	fileCfg.Remember(runtime)
	if err := config.Save(cfgPath, fileCfg); err != nil {
		return err
	}
	logger.Debug().Str("path", cfgPath).Msg("saved config")
	return nil
}

// newLogger writes to the log file when one is configured. The terminal belongs
// to the UI, so without a file diagnostics are dropped.
func newLogger(runtime config.RuntimeConfig) (zerolog.Logger, func(), error) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if runtime.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var out io.Writer = io.Discard
	closeFn := func() {}
	if runtime.LogFile != "" {
		f, err := os.OpenFile(runtime.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).With().Timestamp().Logger()
	return logger, closeFn, nil
}
