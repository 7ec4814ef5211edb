package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwarden/calmate/internal/calendar"
	"github.com/cwarden/calmate/internal/log"
)

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	bindRe  = regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
)

type Config struct {
	// Seed settings
	SeedFile     string
	WatchSeed    bool
	StaticPolicy calendar.StaticPolicy
	ProtectEdits bool

	// Display settings
	Locale        string
	DateFormat    string
	TimeFormat    string
	DefaultColor  string
	MaxCellEvents int

	// UI settings
	Colors      map[string]string
	KeyBindings map[string]string // key -> action

	// Behavior settings
	ConfirmDelete bool

	// Logging
	LogFile  string
	LogLevel log.Level
}

func DefaultConfig() *Config {
	return &Config{
		WatchSeed:    true,
		StaticPolicy: calendar.PolicyFlag,
		ProtectEdits: true,

		Locale:        "en_US",
		DateFormat:    "Monday, Jan 2, 2006",
		TimeFormat:    "3:04 PM",
		DefaultColor:  calendar.DefaultColor,
		MaxCellEvents: 2,

		Colors: map[string]string{
			"normal":   "252",
			"today":    "220",
			"selected": "235",
			"past":     "241",
			"weekend":  "39",
			"header":   "220",
			"notice":   "196",
		},

		KeyBindings: map[string]string{
			"q":     "quit",
			"?":     "help",
			"t":     "today",
			"n":     "new_event",
			"e":     "edit_event",
			"d":     "delete_event",
			"l":     "next_day",
			"right": "next_day",
			"h":     "prev_day",
			"left":  "prev_day",
			"j":     "next_week",
			"down":  "next_week",
			"k":     "prev_week",
			"up":    "prev_week",
			">":     "next_month",
			"<":     "prev_month",
			"g":     "goto_date",
			"enter": "view_day",
			"v":     "view_day",
		},

		ConfirmDelete: true,
		LogLevel:      log.LevelInfo,
	}
}

func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	// Try multiple config file locations
	configPaths := []string{
		os.Getenv("CALMATE_CONFIG"),
		xdgPath(),
		filepath.Join(os.Getenv("HOME"), ".config", "calmate", "calmaterc"),
		filepath.Join(os.Getenv("HOME"), ".calmaterc"),
	}

	for _, path := range configPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	return config, nil
}

func xdgPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "calmate", "calmaterc")
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		if err := c.parseLine(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

func (c *Config) parseLine(line string) error {
	line = strings.TrimSpace(line)

	// Skip comments and empty lines
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	// set variable value
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// bind key action
	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		c.KeyBindings[matches[1]] = matches[2]
		return nil
	}

	// color element color_spec
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		c.Colors[matches[1]] = strings.Trim(matches[2], `"'`)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "seed_file":
		c.SeedFile = expandHome(value)

	case "watch_seed":
		c.WatchSeed = parseBool(value)

	case "static_policy":
		policy, err := calendar.ParseStaticPolicy(value)
		if err != nil {
			return err
		}
		c.StaticPolicy = policy

	case "protect_edits":
		c.ProtectEdits = parseBool(value)

	case "locale":
		c.Locale = value

	case "date_format":
		c.DateFormat = value

	case "time_format":
		c.TimeFormat = value

	case "default_color":
		if !calendar.ValidColor(value) {
			return fmt.Errorf("invalid default_color: %s", value)
		}
		c.DefaultColor = value

	case "max_cell_events":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid max_cell_events: %s", value)
		}
		c.MaxCellEvents = n

	case "confirm_delete":
		c.ConfirmDelete = parseBool(value)

	case "log_file":
		c.LogFile = expandHome(value)

	case "log_level":
		c.LogLevel = log.ParseLevel(value)

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func parseBool(value string) bool {
	return strings.ToLower(value) == "true" || value == "1"
}

// expandHome expands a leading ~/ to the home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
