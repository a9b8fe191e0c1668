package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/usecase"
)

func askCmd(o *rootOptions) *cobra.Command {
	var meihua bool
	var div divinationFlags
	var agents int
	var strict bool
	var format string

	c := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a free-form question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return domain.ValidationError("cli.ask", "question is empty")
			}
			if agents < 1 {
				return domain.ValidationError("cli.ask", "--agents must be >= 1, got %d", agents)
			}

			h, err := o.loadHome()
			if err != nil {
				return err
			}
			uc, err := h.predictor()
			if err != nil {
				return err
			}

			req := usecase.PredictRequest{
				Kind:        domain.KindAsk,
				Template:    usecase.AskTemplate,
				Description: question,
				Variables:   domain.Vars{"question": question},
				Agents:      agents,
				Strict:      strict,
			}
			if meihua {
				reading, err := div.cast(question, o.now())
				if err != nil {
					return err
				}
				req.Divination = &reading
			}

			out, err := uc.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			if out.HistoryErr != nil {
				warn(cmd.ErrOrStderr(), "prediction not saved: %v", out.HistoryErr)
			}
			return printPrediction(cmd.OutOrStdout(), out.Record, format, false)
		},
	}

	c.Flags().BoolVarP(&meihua, "meihua", "m", false, "Add a Plum Blossom divination to the prompt")
	div.register(c, "")
	c.Flags().IntVarP(&agents, "agents", "a", 1, "Number of agents to ask in parallel")
	c.Flags().BoolVar(&strict, "strict", false, "Fail on unresolved placeholders instead of sending them verbatim")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
