package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/doeshing/shellbuddy/internal/domain"
	"github.com/doeshing/shellbuddy/internal/infrastructure/history"
	"github.com/doeshing/shellbuddy/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container ContainerFunc) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect commands executed in past sessions",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container ContainerFunc) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), container)
			if err != nil {
				return err
			}
			records, err := store.Records(limit, "")
			if err != nil {
				return fmt.Errorf("failed to retrieve history records: %w", err)
			}
			writeHistoryTable(cmd.OutOrStdout(), records, time.Now())
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

func newHistorySearchCommand(container ContainerFunc) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search prompts and commands for a keyword",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" && len(args) == 1 {
				query = args[0]
			}
			if query == "" {
				return errors.New(ErrQueryRequired)
			}
			store, err := openStore(cmd.Context(), container)
			if err != nil {
				return err
			}
			records, err := store.Records(searchLimit, query)
			if err != nil {
				return fmt.Errorf("failed to search history: %w", err)
			}
			writeHistoryTable(cmd.OutOrStdout(), records, time.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", domain.DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

func newHistoryClearCommand(container ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), container)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}
}

func newHistoryExportCommand(container ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), container)
			if err != nil {
				return err
			}
			if err := store.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported history to %s\n", args[0])
			return nil
		},
	}
}

func newHistoryStatsCommand(container ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show success rate and top commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), container)
			if err != nil {
				return err
			}
			records, err := store.Records(domain.MaxHistoryAnalysisRecords, "")
			if err != nil {
				return fmt.Errorf("failed to retrieve history for analysis: %w", err)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoHistoryRecorded)
				return nil
			}
			displayHistoryStatistics(cmd.OutOrStdout(), history.Summarize(records, 5))
			return nil
		},
	}
}

func openStore(ctx context.Context, container ContainerFunc) (ports.HistoryRepository, error) {
	c := container()
	if c == nil {
		return nil, fmt.Errorf("history store unavailable")
	}
	return c.History(ctx)
}

func writeHistoryTable(out io.Writer, records []domain.HistoryRecord, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 60},
		{Number: 6, WidthMax: 40},
	})
	tw.AppendHeader(table.Row{"When", "Model", "Exit", "Took", "Command", "Prompt"})
	for _, rec := range records {
		exit := fmt.Sprintf("%d", rec.ExitCode)
		if rec.Truncated {
			exit += "*"
		}
		tw.AppendRow(table.Row{
			humanize.RelTime(rec.Timestamp, now, "ago", "from now"),
			rec.Model,
			exit,
			(time.Duration(rec.ExecutionTimeMS) * time.Millisecond).String(),
			rec.Command,
			strings.ReplaceAll(rec.Prompt, "\n", " "),
		})
	}
	tw.Render()
}

func displayHistoryStatistics(out io.Writer, stats history.Stats) {
	fmt.Fprintf(out, "Entries analyzed: %s\nSessions: %d\nSuccess rate: %.1f%%\nTruncated output: %d\nTotal run time: %s\n",
		humanize.Comma(int64(stats.Total)),
		stats.Sessions,
		stats.SuccessRate()*100,
		stats.Truncated,
		stats.TotalDuration.Round(time.Millisecond))

	fmt.Fprintln(out, "Top commands:")
	for _, top := range stats.Top {
		fmt.Fprintf(out, "  %s (%d)\n", top.Command, top.Count)
	}
}
