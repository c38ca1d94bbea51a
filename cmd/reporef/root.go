package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/reporef/reporef/internal/config"
)

const outputJSON = "json"

// noColor mirrors the teacher's own --no-color flag, checked by each
// command before constructing its rerrors.Formatter.
var noColor bool

// logLevelFlag implements pflag.Value for slog.Level, following the
// teacher's own --log-level flag pattern.
type logLevelFlag struct {
	level slog.Level
}

func (f *logLevelFlag) String() string { return strings.ToLower(f.level.String()) }
func (f *logLevelFlag) Type() string   { return "string" }
func (f *logLevelFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "debug":
		f.level = slog.LevelDebug
	case "info":
		f.level = slog.LevelInfo
	case "warn":
		f.level = slog.LevelWarn
	case "error":
		f.level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", s)
	}
	return nil
}

func (f *logLevelFlag) Level() slog.Level { return f.level }

var globalLogLevel = &logLevelFlag{level: slog.LevelWarn}

// exitError carries an explicit process exit code through cobra's
// error-returning RunE without printing a redundant message — resolve
// and fetch print their own user-facing explanation before returning one.
type exitError struct{ code int }

func (e *exitError) Error() string { return "" }

var rootCmd = &cobra.Command{
	Use:   "reporef",
	Short: "Resolve and fetch references to scholarly and source-code artifacts",
	Long: `reporef resolves an opaque reference — a URL, a DOI, a bare git
remote — through a chain of provider-specific resolvers into a
normalized, often-immutable descriptor, then optionally fetches the
content that descriptor identifies.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if noColor {
			color.NoColor = true
		}
		level := globalLogLevel.Level()
		if !cmd.Flags().Changed("log-level") {
			if lvlFromConfig := configuredLogLevel(); lvlFromConfig != nil {
				level = *lvlFromConfig
			}
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

// configuredLogLevel loads config.yaml's logLevel, when present, for use
// as the default when --log-level was not passed explicitly.
func configuredLogLevel() *slog.Level {
	cfg, err := config.Load()
	if err != nil || cfg.LogLevel == "" {
		return nil
	}
	f := &logLevelFlag{}
	if f.Set(cfg.LogLevel) != nil {
		return nil
	}
	lvl := f.Level()
	return &lvl
}

func init() {
	rootCmd.PersistentFlags().Var(globalLogLevel, "log-level", "Log level (debug, info, warn, error)")
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		versionCmd,
		completionCmd,
		resolveCmd,
		fetchCmd,
	)
}
