package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/cwarden/calmate/internal/calendar"
	"github.com/cwarden/calmate/internal/config"
	"github.com/cwarden/calmate/internal/log"
	"github.com/cwarden/calmate/internal/seed"
	"github.com/cwarden/calmate/internal/ui"
)

var (
	seedFile string
	policy   string
	noWatch  bool
	cfg      *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "calmate",
	Short: "A terminal calendar for timed events",
	Long: `calmate is a terminal calendar: browse months, open a day, and add,
edit or delete timed events. Events from a seed file are loaded as static
data that cannot be deleted.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&seedFile, "seed", "s", "", "Seed file with static events (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&policy, "policy", "", "Static policy: flag or seed-membership")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the seed file when it changes")
}

func initConfig() {
	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags lets command-line flags override the rc file.
func applyFlags() error {
	if seedFile != "" {
		cfg.SeedFile = seedFile
	}
	if policy != "" {
		p, err := calendar.ParseStaticPolicy(policy)
		if err != nil {
			return err
		}
		cfg.StaticPolicy = p
	}
	if noWatch {
		cfg.WatchSeed = false
	}
	return nil
}

func setupLogging() error {
	log.SetLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		return nil
	}
	return log.OpenFile(cfg.LogFile)
}

// buildStore creates the session store and loads the seed file when one is
// configured.
func buildStore(notify func(string)) (*calendar.Store, error) {
	store := calendar.NewStore(
		calendar.WithStaticPolicy(cfg.StaticPolicy),
		calendar.WithEditProtection(cfg.ProtectEdits),
		calendar.WithNotifier(notify),
	)

	if cfg.SeedFile == "" {
		return store, nil
	}

	events, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	n := store.LoadSeed(events)
	log.Info("seed loaded", "path", cfg.SeedFile, "events", n)
	return store, nil
}

// scheduleMidnight tells the UI when the day changes so "today" moves on.
func scheduleMidnight(c *cron.Cron, send func(tea.Msg)) error {
	_, err := c.AddFunc("@midnight", func() {
		log.Debug("day changed")
		send(ui.DayChangedMsg{})
	})
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := applyFlags(); err != nil {
		return err
	}
	if err := setupLogging(); err != nil {
		return err
	}
	defer log.Close()

	notices := &ui.Notices{}
	store, err := buildStore(notices.Push)
	if err != nil {
		return err
	}

	model := ui.NewModel(cfg, store, notices)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if cfg.SeedFile != "" && cfg.WatchSeed {
		watcher, err := seed.NewWatcher(cfg.SeedFile, func(path string) {
			p.Send(ui.SeedChangedMsg{Path: path})
		})
		if err != nil {
			log.Error("watch seed file", err, "path", cfg.SeedFile)
		} else {
			defer watcher.Close()
		}
	}

	c := cron.New()
	if err := scheduleMidnight(c, p.Send); err != nil {
		return fmt.Errorf("schedule day change: %w", err)
	}
	c.Start()
	defer c.Stop()

	log.Info("starting", "events", store.Len(), "policy", string(store.Policy()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
