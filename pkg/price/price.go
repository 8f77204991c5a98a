package price

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sw33tLie/pricebot/internal/utils"
)

// Magnitude multipliers, checked in this order regardless of where the
// letter appears in the token.
var magnitudes = []struct {
	letter     string
	multiplier float64
}{
	{"b", 1e9},
	{"m", 1e6},
	{"k", 1e3},
}

var (
	stripReplacer = strings.NewReplacer("b", "", "m", "", "k", "")
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)(e[+-]?\d+)?`)
)

// ParseToken converts a human-written price such as "1.5b" or "250k" into a
// number. Empty or malformed tokens yield 0; callers rely on that instead of
// an error.
func ParseToken(token string) float64 {
	if token == "" {
		return 0
	}

	t := strings.TrimSpace(utils.Fold(token))
	t = strings.ReplaceAll(t, ",", "")

	multiplier := 1.0
	for _, m := range magnitudes {
		if strings.Contains(t, m.letter) {
			multiplier = m.multiplier
			break
		}
	}

	n, ok := leadingFloat(stripReplacer.Replace(t))
	if !ok || n < 0 {
		return 0
	}
	return n * multiplier
}

// leadingFloat parses the longest numeric prefix of s, ignoring leading
// whitespace, so "1.5 each" reads as 1.5.
func leadingFloat(s string) (float64, bool) {
	num := leadingNumber.FindString(strings.TrimLeft(s, " \t"))
	if num == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// Format renders v back into the compact suffix form used by ParseToken.
func Format(v float64) string {
	switch {
	case v >= 1e9:
		return trim(v/1e9) + "b"
	case v >= 1e6:
		return trim(v/1e6) + "m"
	case v >= 1e3:
		return trim(v/1e3) + "k"
	}
	return trim(v)
}

func trim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
