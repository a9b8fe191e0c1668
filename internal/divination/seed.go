package divination

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/MistByteX/predictor/internal/domain"
)

// Method names how a seed was derived.
type Method string

const (
	MethodTime      Method = "time"
	MethodText      Method = "text"
	MethodManual    Method = "manual"
	MethodDirection Method = "direction"
)

// ParseMethod validates a user-supplied seeding method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodTime, MethodText, MethodManual, MethodDirection:
		return m, nil
	case "":
		return MethodTime, nil
	default:
		return "", domain.ValidationError("divination.method", "unknown method %q (expected time|text|manual|direction)", s)
	}
}

// TimeSeed follows the time method: upper = year+month+day, lower = year+month+day+hour,
// changing line = year+month+day+hour. The third component cancels the upper part of
// the sum so the line is (year+month+day+hour) mod 6.
func TimeSeed(t time.Time) Seed {
	ymd := t.Year() + int(t.Month()) + t.Day()
	h := t.Hour()
	return Seed{ymd + h, ymd, -ymd}
}

// TextSeed derives a seed from question text. Whitespace is ignored; the runes are
// split in half, the second half's code point sum selects the lower trigram, the first
// half's the upper, and the rune count joins the changing-line sum.
func TextSeed(text string) Seed {
	var runes []rune
	for _, r := range text {
		if !unicode.IsSpace(r) {
			runes = append(runes, r)
		}
	}

	half := len(runes) / 2
	var first, second int
	for i, r := range runes {
		if i < half {
			first += int(r)
		} else {
			second += int(r)
		}
	}
	return Seed{second, first, len(runes)}
}

// ManualSeed takes one to three user numbers; missing components are zero.
func ManualSeed(nums ...int) (Seed, error) {
	if len(nums) == 0 || len(nums) > 3 {
		return Seed{}, domain.ValidationError("divination.manual", "expected 1 to 3 numbers, got %d", len(nums))
	}
	var s Seed
	copy(s[:], nums)
	return s, nil
}

// ParseNumbers parses a comma-separated list of integers.
func ParseNumbers(csv string) ([]int, error) {
	parts := strings.Split(csv, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, domain.ValidationError("divination.numbers", "invalid number %q in %q", p, csv)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, domain.ValidationError("divination.numbers", "no numbers in %q", csv)
	}
	return out, nil
}

// directionNumbers maps compass directions and trigram names to their numbers.
var directionNumbers = map[string]int{
	"北": 1, "南": 3, "东": 4, "西": 2,
	"西北": 1, "东北": 7, "东南": 5, "西南": 8,
	"坎": 1, "离": 3, "震": 4, "兑": 2,
	"巽": 5, "艮": 7, "坤": 8, "乾": 1,
}

// DirectionSeed casts from a direction (upper trigram) and the hour (lower trigram).
func DirectionSeed(direction string, t time.Time) (Seed, error) {
	n, ok := directionNumbers[strings.TrimSpace(direction)]
	if !ok {
		return Seed{}, domain.ValidationError("divination.direction", "unknown direction %q", direction)
	}
	return Seed{t.Hour(), n, 0}, nil
}

// Basis explains how a seed was derived, for display.
func Basis(method Method, seed Seed, at time.Time) string {
	switch method {
	case MethodTime:
		ymd := at.Year() + int(at.Month()) + at.Day()
		return fmt.Sprintf("时间起卦 %s：上卦 (年+月+日)=%d，下卦 (年+月+日+时)=%d，动爻 (年+月+日+时)=%d",
			at.Format("2006-01-02 15时"), ymd, ymd+at.Hour(), ymd+at.Hour())
	case MethodText:
		return fmt.Sprintf("文字起卦：前半字码和=%d，后半字码和=%d，字数=%d", seed[1], seed[0], seed[2])
	case MethodDirection:
		return fmt.Sprintf("方位起卦：方位数=%d，时辰=%d", seed[1], seed[0])
	default:
		return fmt.Sprintf("数字起卦：%d, %d, %d", seed[0], seed[1], seed[2])
	}
}
