package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwarden/calmate/internal/calendar"
	"github.com/cwarden/calmate/internal/ics"
	"github.com/cwarden/calmate/internal/parser"
)

var (
	exportFrom   string
	exportTo     string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the seed events as iCalendar",
	Long: `Write the seed events as an iCalendar (.ics) stream. --from and --to
limit the export to an inclusive date range and accept the same forms as
"calmate list".`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "First day to export")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Last day to export")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		initConfig()
	}
	if err := applyFlags(); err != nil {
		return err
	}
	if cfg.SeedFile == "" {
		return fmt.Errorf("no seed file: set seed_file or pass --seed")
	}

	store, err := buildStore(nil)
	if err != nil {
		return err
	}

	events, err := exportRange(store, exportFrom, exportTo)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return ics.ErrNoEvents
	}

	if exportOutput == "" {
		return ics.Encode(cmd.OutOrStdout(), events, time.Now())
	}
	if err := writeICS(exportOutput, events); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d events to %s\n", len(events), exportOutput)
	return nil
}

// writeICS encodes events into the file at path. A failed encode removes the
// partial file.
func writeICS(path string, events []calendar.Event) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return ics.Encode(f, events, time.Now())
}

// exportRange selects the events between from and to. Either bound may be
// empty for an open range.
func exportRange(store *calendar.Store, from, to string) ([]calendar.Event, error) {
	if from == "" && to == "" {
		return store.Events(), nil
	}

	p := parser.NewDateParser()
	lo := calendar.DateKey("0000-01-01")
	hi := calendar.DateKey("9999-12-31")
	if from != "" {
		d, err := p.Parse(from)
		if err != nil {
			return nil, fmt.Errorf("--from: %w", err)
		}
		lo = d
	}
	if to != "" {
		d, err := p.Parse(to)
		if err != nil {
			return nil, fmt.Errorf("--to: %w", err)
		}
		hi = d
	}
	if hi.Before(lo) {
		return nil, fmt.Errorf("--to %s is before --from %s", hi, lo)
	}
	return store.QueryRange(lo, hi), nil
}
