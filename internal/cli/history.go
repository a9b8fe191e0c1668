package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/ui/tui"
)

func historyCmd(o *rootOptions) *cobra.Command {
	var limit int
	var format string

	c := &cobra.Command{
		Use:   "history",
		Short: "List past predictions (oldest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if limit < 0 {
				return domain.ValidationError("cli.history", "--limit must be >= 0, got %d", limit)
			}
			h, err := o.loadHome()
			if err != nil {
				return err
			}

			recs, err := h.history.List(limit)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), recs, format)
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 10, "Show the newest N predictions (0 for all)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")

	c.AddCommand(historyShowCmd(o))
	return c
}

func historyShowCmd(o *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one prediction by ID, ID prefix or file name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			h, err := o.loadHome()
			if err != nil {
				return err
			}

			rec, err := h.history.Get(args[0])
			if err != nil {
				return err
			}
			return printPrediction(cmd.OutOrStdout(), rec, format, true)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printHistory(w io.Writer, recs []domain.PredictionRecord, format string) error {
	if format == "json" {
		if recs == nil {
			recs = []domain.PredictionRecord{}
		}
		return writeJSON(w, recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "(no predictions yet)")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(theme.Help).
		Headers("ID", "WHEN", "KIND", "TEMPLATE", "ABOUT", "ANSWER")
	for _, r := range recs {
		about := r.Description
		if r.Divination != nil {
			about += " · " + r.Divination.Primary
		}
		t.Row(
			shortID(r.ID),
			humanize.Time(r.CreatedAt),
			string(r.Kind),
			r.Template,
			tui.Clamp(about, 32),
			tui.Clamp(r.FirstAnswer(), 40),
		)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, theme.Help.Render(fmt.Sprintf("%d prediction(s); `predictor history show <id>` for details", len(recs))))
	return nil
}
