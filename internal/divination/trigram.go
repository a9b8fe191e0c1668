package divination

// Trigram is one of the eight Earlier-Heaven (先天) trigrams.
// Lines holds the three lines bottom-to-top as bits: bit0 is the bottom line, 1 = yang.
type Trigram struct {
	Index     int
	Name      string
	Symbol    string
	Image     string
	Element   string
	Direction string
	Lines     uint8
}

// trigrams is indexed by Index-1 in 先天 order: 乾1 兑2 离3 震4 巽5 坎6 艮7 坤8.
var trigrams = [8]Trigram{
	{Index: 1, Name: "乾", Symbol: "☰", Image: "天", Element: "金", Direction: "西北", Lines: 0b111},
	{Index: 2, Name: "兑", Symbol: "☱", Image: "泽", Element: "金", Direction: "西", Lines: 0b011},
	{Index: 3, Name: "离", Symbol: "☲", Image: "火", Element: "火", Direction: "南", Lines: 0b101},
	{Index: 4, Name: "震", Symbol: "☳", Image: "雷", Element: "木", Direction: "东", Lines: 0b001},
	{Index: 5, Name: "巽", Symbol: "☴", Image: "风", Element: "木", Direction: "东南", Lines: 0b110},
	{Index: 6, Name: "坎", Symbol: "☵", Image: "水", Element: "水", Direction: "北", Lines: 0b010},
	{Index: 7, Name: "艮", Symbol: "☶", Image: "山", Element: "土", Direction: "东北", Lines: 0b100},
	{Index: 8, Name: "坤", Symbol: "☷", Image: "地", Element: "土", Direction: "西南", Lines: 0b000},
}

// trigramByLines maps a 3-bit line pattern to its 先天 index.
var trigramByLines = func() [8]int {
	var out [8]int
	for _, t := range trigrams {
		out[t.Lines] = t.Index
	}
	return out
}()

// TrigramAt returns the trigram for a 1–8 index; other values are normalized first.
func TrigramAt(index int) Trigram {
	return trigrams[normalize(index, 8)-1]
}

// Trigrams returns the eight trigrams in 先天 order.
func Trigrams() []Trigram {
	out := make([]Trigram, len(trigrams))
	copy(out, trigrams[:])
	return out
}

func trigramFromLines(lines uint8) Trigram {
	return trigrams[trigramByLines[lines&0b111]-1]
}
