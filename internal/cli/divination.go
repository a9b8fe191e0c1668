package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MistByteX/predictor/internal/divination"
	"github.com/MistByteX/predictor/internal/domain"
)

// divinationFlags are the seeding flags shared by ask, predict and yi.
type divinationFlags struct {
	method    string
	numbers   string
	direction string
	at        string
}

func (f *divinationFlags) register(c *cobra.Command, methodShort string) {
	c.Flags().StringVarP(&f.method, "method", methodShort, "time", "Divination method: time|text|manual|direction")
	c.Flags().StringVarP(&f.numbers, "numbers", "d", "", "Comma-separated numbers for the manual method (1 to 3)")
	c.Flags().StringVar(&f.direction, "direction", "", "Direction for the direction method (北, 东南, 乾, ...)")
	c.Flags().StringVar(&f.at, "at", "", "Cast at this RFC3339 time instead of now")
}

func (f *divinationFlags) cast(question string, now time.Time) (divination.Reading, error) {
	method, err := divination.ParseMethod(f.method)
	if err != nil {
		return divination.Reading{}, err
	}

	at := now
	if s := strings.TrimSpace(f.at); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return divination.Reading{}, domain.ValidationError("cli.at", "invalid --at %q (expected RFC3339, e.g. 2024-03-15T14:00:00+08:00)", s)
		}
		at = t
	}

	var numbers []int
	if method == divination.MethodManual {
		if strings.TrimSpace(f.numbers) == "" {
			return divination.Reading{}, domain.ValidationError("cli.numbers", "the manual method needs -d with 1 to 3 numbers")
		}
		numbers, err = divination.ParseNumbers(f.numbers)
		if err != nil {
			return divination.Reading{}, err
		}
	}

	return divination.Cast(question, method, at, numbers, f.direction)
}
