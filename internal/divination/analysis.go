package divination

import (
	"fmt"
	"strings"
)

// Five-element generating (生) and overcoming (克) cycles.
var (
	generates = map[string]string{"木": "火", "火": "土", "土": "金", "金": "水", "水": "木"}
	overcomes = map[string]string{"木": "土", "火": "金", "土": "水", "金": "木", "水": "火"}
)

// Relation is the five-element relation between the upper and lower trigrams.
type Relation struct {
	Kind    string // 比和 / 相生 / 相克 / 无关
	Fortune string // 吉 / 凶 / 平
	Note    string
}

// Analysis is the interpretation attached to a divination.
type Analysis struct {
	Relation        Relation
	Yongshen        string
	YongshenElement string
	YongshenAdvice  string
	Verdict         string
	Explanation     string
	Advice          string
	Caveat          string
}

func relate(upper, lower string) Relation {
	switch {
	case upper == lower:
		return Relation{Kind: "比和", Fortune: "平", Note: "五行相同，互相助益"}
	case generates[upper] == lower:
		return Relation{Kind: "相生", Fortune: "吉", Note: fmt.Sprintf("%s生%s，主卦生助用神", upper, lower)}
	case overcomes[upper] == lower:
		return Relation{Kind: "相克", Fortune: "凶", Note: fmt.Sprintf("%s克%s，主卦克制用神", upper, lower)}
	case generates[lower] == upper:
		return Relation{Kind: "相生", Fortune: "吉", Note: fmt.Sprintf("%s生%s，用神生助主卦", lower, upper)}
	case overcomes[lower] == upper:
		return Relation{Kind: "相克", Fortune: "凶", Note: fmt.Sprintf("%s克%s，用神克制主卦", lower, upper)}
	default:
		return Relation{Kind: "无关", Fortune: "平", Note: "五行无关"}
	}
}

var yongshenAdvice = map[string]string{
	"木": "用神为木，利东方、春季",
	"火": "用神为火，利南方、夏季",
	"土": "用神为土，利中央、季月",
	"金": "用神为金，利西方、秋季",
	"水": "用神为水，利北方、冬季",
}

// yongshenRules pick the governing spirit from question keywords, first match wins.
var yongshenRules = []struct {
	keywords []string
	name     string
	element  string
}{
	{[]string{"财", "钱", "收入", "盈利"}, "财", "土"},
	{[]string{"官", "升职", "事业"}, "官", "金"},
	{[]string{"学", "考", "试"}, "印", "火"},
}

// Analyze interprets a result for the given question.
func Analyze(r Result, question string) Analysis {
	rel := relate(r.Primary.Upper.Element, r.Primary.Lower.Element)

	name, element := "用神", r.Primary.Upper.Element
	for _, rule := range yongshenRules {
		if containsAny(question, rule.keywords) {
			name, element = rule.name, rule.element
			break
		}
	}

	a := Analysis{
		Relation:        rel,
		Yongshen:        name,
		YongshenElement: element,
		YongshenAdvice:  yongshenAdvice[element],
		Caveat:          "易经预测仅供参考，人生仍需努力",
	}

	switch rel.Fortune {
	case "吉":
		a.Verdict = "大吉"
		a.Explanation = "五行相生，主卦吉利，事态向好发展"
		a.Advice = "宜把握时机，积极行动"
	case "凶":
		a.Verdict = "凶"
		a.Explanation = "五行相克，主卦不利，事态可能遇阻"
		a.Advice = "宜静待时机，谨慎行事"
	default:
		a.Verdict = "平"
		a.Explanation = "五行平和，事态平稳发展"
		a.Advice = "宜稳扎稳打，循序渐进"
	}
	a.Explanation += fmt.Sprintf("。变卦%s，需关注变化。", r.Transformed.FullName())

	return a
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
