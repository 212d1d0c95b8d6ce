package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/powerball-results/internal/config"
	"github.com/pfrederiksen/powerball-results/internal/draw"
	"github.com/pfrederiksen/powerball-results/internal/storage"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit int
		order string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded drawings",
		Long:  "Print the drawings stored in the history file, newest first by default.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}
			sortOrder, err := parseSortOrder(order)
			if err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("invalid limit: %d", limit)
			}

			cfg, err := config.Load(flagConfig, cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			store, err := storage.New(cfg.StorageFiles())
			if err != nil {
				return fmt.Errorf("initializing storage: %w", err)
			}
			records, err := store.LoadHistory()
			if err != nil {
				return err
			}

			sortRecords(records, sortOrder)
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			return writeHistory(cmd.OutOrStdout(), records, format)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many drawings (0 for all)")
	cmd.Flags().StringVar(&order, "order", string(SortNewest), "Sort order: newest or oldest")

	return cmd
}

func writeHistory(w io.Writer, records []draw.Record, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	case FormatText:
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if len(records) == 0 {
		_, err := io.WriteString(w, "No hay sorteos en el histórico.\n")
		return err
	}

	var b strings.Builder
	for _, r := range records {
		d := r.Draw
		fmt.Fprintf(&b, "%s  %s", d.Date, draw.FormatNumbers(d.Numbers))
		if d.Special != nil {
			fmt.Fprintf(&b, "  PB %d", *d.Special)
		}
		if d.Multiplier != nil {
			fmt.Fprintf(&b, "  %dx", *d.Multiplier)
		}
		if d.JackpotWon {
			b.WriteString("  ★")
			if d.WinnerRegion != "" {
				fmt.Fprintf(&b, " %s", d.WinnerRegion)
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\n%d sorteos\n", len(records))

	_, err := io.WriteString(w, b.String())
	return err
}
