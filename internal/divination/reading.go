package divination

import (
	"fmt"
	"strings"
	"time"

	"github.com/MistByteX/predictor/internal/domain"
)

// Reading bundles a cast with its provenance and interpretation.
type Reading struct {
	Question string
	Method   Method
	At       time.Time
	Result   Result
	Analysis Analysis
}

// Read computes and interprets a divination for an already derived seed.
func Read(question string, method Method, seed Seed, at time.Time) Reading {
	r := Compute(seed)
	return Reading{
		Question: question,
		Method:   method,
		At:       at,
		Result:   r,
		Analysis: Analyze(r, question),
	}
}

// Cast derives the seed for method and reads it. numbers is used by the manual
// method, direction by the direction method.
func Cast(question string, method Method, at time.Time, numbers []int, direction string) (Reading, error) {
	var (
		seed Seed
		err  error
	)
	switch method {
	case MethodTime, "":
		method = MethodTime
		seed = TimeSeed(at)
	case MethodText:
		seed = TextSeed(question)
	case MethodManual:
		seed, err = ManualSeed(numbers...)
	case MethodDirection:
		seed, err = DirectionSeed(direction, at)
	default:
		_, err = ParseMethod(string(method))
	}
	if err != nil {
		return Reading{}, err
	}
	return Read(question, method, seed, at), nil
}

// Describe renders the reading as Markdown, suitable for appending to a prompt.
func (rd Reading) Describe() string {
	r := rd.Result
	a := rd.Analysis
	use, body := r.MovingTrigram()

	var b strings.Builder
	b.WriteString("## 梅花易数\n\n")
	if rd.Question != "" {
		fmt.Fprintf(&b, "- 问题：%s\n", rd.Question)
	}
	fmt.Fprintf(&b, "- 起卦：%s\n", Basis(rd.Method, r.Seed, rd.At))
	fmt.Fprintf(&b, "- 主卦：%s，上%s%s（%s） 下%s%s（%s）\n",
		r.Primary, r.Primary.Upper.Name, r.Primary.Upper.Symbol, r.Primary.Upper.Element,
		r.Primary.Lower.Name, r.Primary.Lower.Symbol, r.Primary.Lower.Element)
	fmt.Fprintf(&b, "- 动爻：第%d爻（体卦%s，用卦%s）\n", r.ChangingLine, body.Name, use.Name)
	fmt.Fprintf(&b, "- 变卦：%s\n", r.Transformed)
	fmt.Fprintf(&b, "- 五行：%s + %s，%s（%s），%s\n",
		r.Primary.Upper.Element, r.Primary.Lower.Element, a.Relation.Kind, a.Relation.Fortune, a.Relation.Note)
	fmt.Fprintf(&b, "- 用神：%s（%s），%s\n", a.Yongshen, a.YongshenElement, a.YongshenAdvice)
	fmt.Fprintf(&b, "- 断语：%s。%s\n", a.Verdict, a.Explanation)
	fmt.Fprintf(&b, "- 建议：%s\n", a.Advice)
	fmt.Fprintf(&b, "- 注意：%s\n", a.Caveat)
	return b.String()
}

// Snapshot converts the reading into the form stored with prediction records.
func (rd Reading) Snapshot() *domain.DivinationSnapshot {
	r := rd.Result
	return &domain.DivinationSnapshot{
		Method:       string(rd.Method),
		Seed:         [3]int(r.Seed),
		Primary:      r.Primary.FullName(),
		Transformed:  r.Transformed.FullName(),
		ChangingLine: r.ChangingLine,
		Description:  rd.Describe(),
	}
}
