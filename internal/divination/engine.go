// Package divination implements Plum Blossom (梅花易数) numerology: a pure mapping
// from three seed numbers to a primary hexagram, a changing line and the
// transformed hexagram, plus seeding helpers and a five-element reading.
package divination

// Seed is the three numbers a divination is cast from.
// Seed[0] selects the lower trigram, Seed[1] the upper trigram, and the sum of
// all three the changing line.
type Seed [3]int

// Result is a fully computed divination. It is a value and never mutated.
type Result struct {
	Seed         Seed
	Primary      Hexagram
	Transformed  Hexagram
	ChangingLine int
}

// Compute casts a divination. It is total over all integer seeds: components are
// reduced with a non-negative modulo, 0 mapping to 8 for trigrams and 6 for the line.
func Compute(seed Seed) Result {
	lower := normalize(seed[0], 8)
	upper := normalize(seed[1], 8)

	// Reduce before summing so large seeds cannot overflow.
	sum := mod(seed[0], 6) + mod(seed[1], 6) + mod(seed[2], 6)
	line := normalize(sum, 6)

	primary := Lookup(upper, lower)
	return Result{
		Seed:         seed,
		Primary:      primary,
		Transformed:  primary.Flip(line),
		ChangingLine: line,
	}
}

// MovingTrigram returns the primary trigram containing the changing line (用卦)
// and the other one (体卦).
func (r Result) MovingTrigram() (use Trigram, body Trigram) {
	if r.ChangingLine > 3 {
		return r.Primary.Upper, r.Primary.Lower
	}
	return r.Primary.Lower, r.Primary.Upper
}

func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// normalize maps n into 1..m, with multiples of m landing on m.
func normalize(n, m int) int {
	r := mod(n, m)
	if r == 0 {
		return m
	}
	return r
}
