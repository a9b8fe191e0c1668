package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/divination"
)

func yiCmd(o *rootOptions) *cobra.Command {
	var div divinationFlags
	var format string

	c := &cobra.Command{
		Use:   "yi <question>",
		Short: "Cast a Plum Blossom divination locally (no network)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			question := strings.TrimSpace(strings.Join(args, " "))

			reading, err := div.cast(question, o.now())
			if err != nil {
				return err
			}
			return printReading(cmd.OutOrStdout(), reading, format)
		},
	}

	div.register(c, "m")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

type hexagramJSON struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Upper  string `json:"upper"`
	Lower  string `json:"lower"`
}

type readingJSON struct {
	Question     string       `json:"question"`
	Method       string       `json:"method"`
	At           time.Time    `json:"at"`
	Basis        string       `json:"basis"`
	Seed         [3]int       `json:"seed"`
	Primary      hexagramJSON `json:"primary"`
	Transformed  hexagramJSON `json:"transformed"`
	ChangingLine int          `json:"changing_line"`
	Body         string       `json:"body_trigram"`
	Use          string       `json:"use_trigram"`
	Relation     string       `json:"relation"`
	Fortune      string       `json:"fortune"`
	Yongshen     string       `json:"yongshen"`
	Verdict      string       `json:"verdict"`
	Explanation  string       `json:"explanation"`
	Advice       string       `json:"advice"`
	Caveat       string       `json:"caveat"`
}

func toHexagramJSON(h divination.Hexagram) hexagramJSON {
	return hexagramJSON{
		Number: h.Number,
		Name:   h.FullName(),
		Symbol: h.Symbol(),
		Upper:  h.Upper.Name,
		Lower:  h.Lower.Name,
	}
}

func printReading(w io.Writer, rd divination.Reading, format string) error {
	r := rd.Result
	a := rd.Analysis

	switch format {
	case "json":
		use, body := r.MovingTrigram()
		return writeJSON(w, readingJSON{
			Question:     rd.Question,
			Method:       string(rd.Method),
			At:           rd.At,
			Basis:        divination.Basis(rd.Method, r.Seed, rd.At),
			Seed:         [3]int(r.Seed),
			Primary:      toHexagramJSON(r.Primary),
			Transformed:  toHexagramJSON(r.Transformed),
			ChangingLine: r.ChangingLine,
			Body:         body.Name,
			Use:          use.Name,
			Relation:     a.Relation.Kind,
			Fortune:      a.Relation.Fortune,
			Yongshen:     a.Yongshen,
			Verdict:      a.Verdict,
			Explanation:  a.Explanation,
			Advice:       a.Advice,
			Caveat:       a.Caveat,
		})
	case "pretty", "":
		primary := lipgloss.JoinVertical(lipgloss.Left,
			theme.Accent.Render("主卦 "+r.Primary.String()),
			r.Primary.Diagram(r.ChangingLine),
		)
		transformed := lipgloss.JoinVertical(lipgloss.Left,
			theme.Accent.Render("变卦 "+r.Transformed.String()),
			r.Transformed.Diagram(0),
		)
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, primary, "    ", transformed))
		fmt.Fprintln(w, rd.Describe())
		return nil
	default:
		return checkFormat(format)
	}
}
