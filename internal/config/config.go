package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"tally/internal/tasks"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tally.db"
	DefaultLogName        = "tally.log"
	DefaultDateFormat     = "Monday, 2 January 2006"
	DefaultDeleteDelay    = 250 * time.Millisecond
	DefaultClearDelay     = 300 * time.Millisecond

	appDir = "tally"
)

type Keymap struct {
	Quit            string `toml:"quit"`
	Add             string `toml:"add"`
	Up              string `toml:"up"`
	Down            string `toml:"down"`
	Toggle          string `toml:"toggle"`
	Delete          string `toml:"delete"`
	Confirm         string `toml:"confirm"`
	Cancel          string `toml:"cancel"`
	ClearCompleted  string `toml:"clear_completed"`
	FilterAll       string `toml:"filter_all"`
	FilterActive    string `toml:"filter_active"`
	FilterCompleted string `toml:"filter_completed"`
	NextFilter      string `toml:"next_filter"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	LogPath       string `toml:"log_path"`
	SlotKey       string `toml:"slot_key"`
	DefaultFilter string `toml:"default_filter"`
	DateFormat    string `toml:"date_format"`
	DeleteDelay   string `toml:"delete_delay"`
	ClearDelay    string `toml:"clear_delay"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/tally/config.toml (or the
// platform equivalent), falling back to the working directory.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDir, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults first when
// the file does not exist. Relative db and log paths are resolved against
// the directory holding the config file.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg.resolve(path)
}

// Filter returns the configured starting filter.
func (c Config) Filter() tasks.Filter {
	f, _ := tasks.ParseFilter(c.DefaultFilter)
	return f
}

// Delays returns the delete and clear-completed exit animation delays.
func (c Config) Delays() (del, clear time.Duration) {
	return parseDelay(c.DeleteDelay, DefaultDeleteDelay), parseDelay(c.ClearDelay, DefaultClearDelay)
}

func (c Config) resolve(path string) (Config, error) {
	def := defaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	if c.SlotKey == "" {
		c.SlotKey = def.SlotKey
	}
	if c.DateFormat == "" {
		c.DateFormat = def.DateFormat
	}
	if _, err := tasks.ParseFilter(c.DefaultFilter); err != nil {
		return c, fmt.Errorf("default_filter: %w", err)
	}
	c.Keys = c.Keys.withDefaults(def.Keys)

	base := filepath.Dir(path)
	if !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(base, c.LogPath)
	}
	return c, nil
}

func (k Keymap) withDefaults(def Keymap) Keymap {
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&k.Quit, def.Quit)
	fill(&k.Add, def.Add)
	fill(&k.Up, def.Up)
	fill(&k.Down, def.Down)
	fill(&k.Toggle, def.Toggle)
	fill(&k.Delete, def.Delete)
	fill(&k.Confirm, def.Confirm)
	fill(&k.Cancel, def.Cancel)
	fill(&k.ClearCompleted, def.ClearCompleted)
	fill(&k.FilterAll, def.FilterAll)
	fill(&k.FilterActive, def.FilterActive)
	fill(&k.FilterCompleted, def.FilterCompleted)
	fill(&k.NextFilter, def.NextFilter)
	return k
}

func parseDelay(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration with paths relative to dir.
func Default(dir string) Config {
	cfg, _ := defaultConfig().resolve(filepath.Join(dir, DefaultConfigFileName))
	return cfg
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		LogPath:       DefaultLogName,
		SlotKey:       tasks.DefaultSlotKey,
		DefaultFilter: tasks.FilterAll.String(),
		DateFormat:    DefaultDateFormat,
		DeleteDelay:   DefaultDeleteDelay.String(),
		ClearDelay:    DefaultClearDelay.String(),
		Keys: Keymap{
			Quit:            "q",
			Add:             "a",
			Up:              "k",
			Down:            "j",
			Toggle:          " ",
			Delete:          "d",
			Confirm:         "enter",
			Cancel:          "esc",
			ClearCompleted:  "c",
			FilterAll:       "1",
			FilterActive:    "2",
			FilterCompleted: "3",
			NextFilter:      "tab",
		},
	}
}
