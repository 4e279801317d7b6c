package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	logLevel   string
	logFile    string
	moduleRoot string
	requestID  string
)

var rootCmd = &cobra.Command{
	Use:           "mon",
	Short:         "Analyze and format Mycel Object Notation documents",
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: error|warn|info|debug")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (empty to log to stderr)")
	rootCmd.PersistentFlags().StringVar(&moduleRoot, "module-root", "", "override module root for import resolution")
	rootCmd.PersistentFlags().StringVar(&requestID, "request-id", "", "identifier correlating this invocation's diagnostics in logs (default: random UUID)")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newFmtCmd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setupLogger builds the structured logger shared by every subcommand,
// tagged with requestID so one invocation's lines can be grepped out of a
// shared log stream.
func setupLogger(level, logFile, requestID string) (*slog.Logger, func(), error) {
	var slogLevel slog.Level
	switch level {
	case "error":
		slogLevel = slog.LevelError
	case "warn":
		slogLevel = slog.LevelWarn
	case "info":
		slogLevel = slog.LevelInfo
	case "debug":
		slogLevel = slog.LevelDebug
	default:
		return nil, nil, fmt.Errorf("invalid log level: %q", level)
	}

	var w io.Writer = os.Stderr
	cleanup := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		cleanup = func() { _ = f.Close() }
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel})
	logger := slog.New(handler).With("request_id", requestID)
	return logger, cleanup, nil
}

// canonicalModuleRoot mirrors the teacher's best-effort symlink
// canonicalization of an operator-supplied root, so path comparisons behave
// consistently on filesystems where e.g. /var symlinks to /private/var.
func canonicalModuleRoot(root string) string {
	if root == "" {
		return ""
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return root
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return filepath.Clean(abs)
}

func effectiveRequestID() string {
	if requestID != "" {
		return requestID
	}
	return uuid.NewString()
}
