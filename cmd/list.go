package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/cwarden/calmate/internal/calendar"
	"github.com/cwarden/calmate/internal/parser"
)

var listCmd = &cobra.Command{
	Use:   "list [date]",
	Short: "List the events of a day and exit",
	Long: `List the seed events of a day in a simple text format and exit.
The date defaults to today and accepts forms like "tomorrow", "next friday",
"2024-03-10" or "3/10".`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	// Ensure config is loaded
	if cfg == nil {
		initConfig()
	}
	if err := applyFlags(); err != nil {
		return err
	}

	date, err := parser.NewDateParser().Parse(strings.Join(args, " "))
	if err != nil {
		return err
	}

	store, err := buildStore(nil)
	if err != nil {
		return err
	}

	return printDay(cmd.OutOrStdout(), store, date)
}

func printDay(w io.Writer, store *calendar.Store, date calendar.DateKey) error {
	day, err := date.Time()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Events for %s:\n", day.Format(cfg.DateFormat))
	events := store.QueryByDate(date)
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, e := range events {
		fmt.Fprintf(w, "  %s - %s  %s\n", e.Start.Format(cfg.TimeFormat), e.End.Format(cfg.TimeFormat), e.Title)
		if e.Description != "" {
			fmt.Fprintln(w, indent.String(wordwrap.String(e.Description, 72), 4))
		}
	}
	return nil
}
