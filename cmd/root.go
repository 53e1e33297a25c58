package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version  string
	baseDir  string
	logLevel string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "bookmodal",
	Short: "Terminal booking request form",
	Long: `bookmodal - A guided booking form for the terminal.

Collects a service booking request in three steps (details, review,
confirmation), records confirmed requests in a local outbox and optionally
forwards them to a signed webhook.

Run without a command to open the booking page.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initBaseDir(); err != nil {
			return err
		}
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
	RunE: runBook,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.Version = version
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Bookings:"},
		&cobra.Group{ID: "system", Title: "Configuration:"},
	)
	rootCmd.PersistentFlags().AddFlagSet(globalFlags())
	rootCmd.Flags().Bool("open", false, "Open the booking form immediately")
}

// globalFlags are shared by every command.
func globalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.StringVarP(&baseDir, "dir", "C", "", "Project directory holding .bookmodal/ (default: current directory)")
	fs.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	return fs
}

func initBaseDir() error {
	if baseDir != "" {
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return fmt.Errorf("resolve --dir: %w", err)
		}
		baseDir = abs
		return nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}
	baseDir = wd
	return nil
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

// parseLevel maps a --log-level value onto a slog level.
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: use debug, info, warn or error", s)
	}
	return level, nil
}
