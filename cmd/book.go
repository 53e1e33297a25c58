package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/bookmodal/internal/config"
	"github.com/marcus/bookmodal/internal/db"
	"github.com/marcus/bookmodal/internal/submit"
	"github.com/marcus/bookmodal/internal/webhook"
	"github.com/marcus/bookmodal/pkg/monitor"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// logFile is written while the TUI owns the terminal.
const logFile = "bookmodal.log"

var bookCmd = &cobra.Command{
	Use:     "book",
	Short:   "Open the booking page",
	Long:    `Opens the booking page. Press b (or click "Book now") to start a booking request; Esc closes the form.`,
	GroupID: "core",
	RunE:    runBook,
}

func runBook(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the booking form needs an interactive terminal")
	}

	dir := getBaseDir()
	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level, err := parseLevel(logLevel)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupFileLogging(dir, level)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := db.Open(dir)
	if err != nil {
		return fmt.Errorf("open outbox: %w", err)
	}
	defer store.Close()

	open, _ := cmd.Flags().GetBool("open")
	model := monitor.New(monitor.Options{
		Config:      cfg,
		Submitter:   newSubmitter(store, webhook.FromConfig(dir)),
		Logger:      logger,
		OpenOnStart: open,
	})

	logger.Info("booking page started", "dir", dir, "webhook", webhook.IsEnabled(dir))
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run booking page: %w", err)
	}
	return nil
}

// newSubmitter records every booking in the outbox and, when configured,
// forwards it to the webhook.
func newSubmitter(store *db.DB, hook *webhook.Client) submit.Submitter {
	subs := submit.Multi{submit.Func(store.RecordSubmission)}
	if hook != nil {
		subs = append(subs, hook)
	}
	return subs
}

// setupFileLogging routes slog to a JSON log under the project dir; stderr
// belongs to the TUI.
func setupFileLogging(dir string, level slog.Level) (*slog.Logger, func() error, error) {
	path := filepath.Join(dir, config.Dir, logFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, f.Close, nil
}

func init() {
	bookCmd.Flags().Bool("open", false, "Open the booking form immediately")
	rootCmd.AddCommand(bookCmd)
}
