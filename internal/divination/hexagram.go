package divination

import (
	"fmt"
	"strings"
)

// Hexagram is an ordered (upper, lower) trigram pair with its King Wen number.
type Hexagram struct {
	Number int
	Name   string
	Upper  Trigram
	Lower  Trigram
}

// kingWen is the traditional lookup: kingWen[upper-1][lower-1] → hexagram number.
// Rows and columns follow 先天 order 乾 兑 离 震 巽 坎 艮 坤.
var kingWen = [8][8]int{
	/* 乾 */ {1, 10, 13, 25, 44, 6, 33, 12},
	/* 兑 */ {43, 58, 49, 17, 28, 47, 31, 45},
	/* 离 */ {14, 38, 30, 21, 50, 64, 56, 35},
	/* 震 */ {34, 54, 55, 51, 32, 40, 62, 16},
	/* 巽 */ {9, 61, 37, 42, 57, 59, 53, 20},
	/* 坎 */ {5, 60, 63, 3, 48, 29, 39, 8},
	/* 艮 */ {26, 41, 22, 27, 18, 4, 52, 23},
	/* 坤 */ {11, 19, 36, 24, 46, 7, 15, 2},
}

// hexagramNames is indexed by King Wen number; index 0 is unused.
var hexagramNames = [65]string{
	"",
	"乾", "坤", "屯", "蒙", "需", "讼", "师", "比",
	"小畜", "履", "泰", "否", "同人", "大有", "谦", "豫",
	"随", "蛊", "临", "观", "噬嗑", "贲", "剥", "复",
	"无妄", "大畜", "颐", "大过", "坎", "离", "咸", "恒",
	"遁", "大壮", "晋", "明夷", "家人", "睽", "蹇", "解",
	"损", "益", "夬", "姤", "萃", "升", "困", "井",
	"革", "鼎", "震", "艮", "渐", "归妹", "丰", "旅",
	"巽", "兑", "涣", "节", "中孚", "小过", "既济", "未济",
}

// Lookup returns the hexagram for an upper and lower trigram index (1–8).
func Lookup(upper, lower int) Hexagram {
	u := TrigramAt(upper)
	l := TrigramAt(lower)
	n := kingWen[u.Index-1][l.Index-1]
	return Hexagram{
		Number: n,
		Name:   hexagramNames[n],
		Upper:  u,
		Lower:  l,
	}
}

// Lines returns the six-line pattern: bit0 is the bottom line, 1 = yang.
func (h Hexagram) Lines() uint8 {
	return h.Lower.Lines | h.Upper.Lines<<3
}

// Flip returns the hexagram obtained by inverting line (1–6, bottom-to-top).
func (h Hexagram) Flip(line int) Hexagram {
	lines := h.Lines() ^ (1 << uint(normalize(line, 6)-1))
	return fromLines(lines)
}

// FullName is the conventional long name: 乾为天 for doubled trigrams, 天泽履 otherwise.
func (h Hexagram) FullName() string {
	if h.Upper.Index == h.Lower.Index {
		return h.Name + "为" + h.Upper.Image
	}
	return h.Upper.Image + h.Lower.Image + h.Name
}

// Symbol is the Unicode hexagram character; the block is laid out in King Wen order.
func (h Hexagram) Symbol() string {
	if h.Number < 1 || h.Number > 64 {
		return "?"
	}
	return string(rune(0x4DC0 + h.Number - 1))
}

// Diagram draws the hexagram top line first, marking the given line as moving.
func (h Hexagram) Diagram(moving int) string {
	lines := h.Lines()
	var b strings.Builder
	for i := 6; i >= 1; i-- {
		yang := lines&(1<<uint(i-1)) != 0
		if yang {
			b.WriteString("━━━━━━━")
		} else {
			b.WriteString("━━━ ━━━")
		}
		if i == moving {
			b.WriteString(" ○")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (h Hexagram) String() string {
	return fmt.Sprintf("%s %s（第%d卦）", h.Symbol(), h.FullName(), h.Number)
}

func fromLines(lines uint8) Hexagram {
	lower := trigramFromLines(lines & 0b111)
	upper := trigramFromLines((lines >> 3) & 0b111)
	return Lookup(upper.Index, lower.Index)
}
