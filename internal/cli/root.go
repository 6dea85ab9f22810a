// Package cli defines the command-line interface for commitsum.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/commitsum/internal/logging"
)

const (
	// defaultConfigPath is the default path to the optional configuration file.
	defaultConfigPath = "commitsum.yaml"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	EnvFiles   []string
	LogLevel   logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
// Without a subcommand it runs "run" so the binary can be used directly as an action entrypoint.
func Execute(ctx context.Context, args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: defaultConfigPath,
		LogLevel:   logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(defaultToRun(rootCmd, args))

	return rootCmd.ExecuteContext(ctx)
}

// defaultToRun prepends "run" when args resolve to the root command itself.
// Help requests are left for the root command.
func defaultToRun(root *cobra.Command, args []string) []string {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return args
		}
	}
	if cmd, _, err := root.Find(args); err != nil || cmd != root {
		return args
	}
	return append([]string{"run"}, args...)
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "commitsum",
		Short:         "commitsum posts one review comment per pull request commit",
		Long:          "commitsum inspects the commits of a pull request and posts a review comment for each commit naming the files it changed, skipping commits that already have a summary.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			base := baseEnv{}
			if err := parseEnv(&base, nil); err != nil {
				return err
			}
			if !cmd.Flags().Changed("config") && base.ConfigPath != "" {
				opts.ConfigPath = base.ConfigPath
			}
			levelValue := cmd.Flag("log-level").Value.String()
			if !cmd.Flags().Changed("log-level") && base.LogLevel != "" {
				levelValue = base.LogLevel
			}

			level := logging.ParseLevel(levelValue)
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level, logging.Options{NoColor: base.NoColor != ""})
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to commitsum.yaml configuration file")
	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "Additional .env files to load (repeatable)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRunCommand(opts),
		newMarkerCommand(),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
