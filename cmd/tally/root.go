package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tally/internal/config"
	"tally/internal/storage"
	"tally/internal/tasks"
	"tally/internal/ui"
)

// app holds what every command needs once the root pre-run has opened it.
type app struct {
	configPath string
	memory     bool
	debug      bool

	cfg     config.Config
	db      *storage.Store
	ctl     *tasks.Controller
	log     *slog.Logger
	logFile *os.File
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tally",
		Short: "A small task list for the terminal",
		Long: `Tally keeps a newest-first task list in a local SQLite file.

Run without a subcommand to open the interactive list. The subcommands
work on the same list without taking over the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.ErrOrStderr(), cmd.Parent() == nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(a.ctl, a.cfg, a.log)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/tally/config.toml)")
	root.PersistentFlags().BoolVar(&a.memory, "memory", false, "keep tasks in memory only")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newToggleCmd(a),
		newRmCmd(a),
		newClearCmd(a),
		newStatsCmd(a),
	)
	return root
}

// execute runs root and releases what the pre-run opened. cobra skips post
// run hooks when a command fails, so the release happens here.
func (a *app) execute(root *cobra.Command) (err error) {
	defer func() { err = errors.Join(err, a.close()) }()
	return root.Execute()
}

func (a *app) open(stderr io.Writer, interactive bool) error {
	path := a.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if a.debug {
		level = slog.LevelDebug
	}
	out := stderr
	// The TUI owns the terminal, so it logs to a file instead.
	if interactive {
		f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		out = f
	}
	a.log = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))

	var slot tasks.Slot
	if a.memory {
		slot = tasks.NewMemorySlot()
	} else {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
		slot = db
	}

	store := tasks.NewStore(tasks.NewAdapter(slot, cfg.SlotKey, a.log), tasks.OnChange(func() {
		a.log.Debug("task list saved", "key", cfg.SlotKey)
	}))
	a.ctl = tasks.NewController(store, cfg.Filter())
	a.log.Debug("task list loaded", "db", cfg.DBPath, "key", cfg.SlotKey, "tasks", store.Len())
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
		a.logFile = nil
	}
	return errors.Join(errs...)
}
