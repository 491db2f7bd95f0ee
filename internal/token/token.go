package token

// Token defines how many units are required per draw

type Token struct {
	Name       string // e.g. "diamonds"
	PerDraw    int    // tokens per single draw, e.g. 120
	PerTenDraw int    // optional; if 0 -> equal to 10 * PerDraw
}

// TokensForDraws returns how many tokens are required for n draws.
// Every full group of ten is charged PerTenDraw when it is set.
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.PerTenDraw > 0 && n >= 10 {
		tens := n / 10
		rem := n % 10
		return tens*t.PerTenDraw + rem*t.PerDraw
	}
	return n * t.PerDraw
}
