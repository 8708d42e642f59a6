package ingredient

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var unicodeFractions = map[rune]string{
	'½': "1/2", '⅓': "1/3", '⅔': "2/3", '¼': "1/4", '¾': "3/4",
	'⅕': "1/5", '⅖': "2/5", '⅗': "3/5", '⅘': "4/5",
	'⅙': "1/6", '⅚': "5/6", '⅛': "1/8", '⅜': "3/8", '⅝': "5/8", '⅞': "7/8",
}

// NormalizeFractions rewrites unicode vulgar fractions as ASCII. "1½" becomes "1 1/2".
func NormalizeFractions(s string) string {
	var b strings.Builder
	var prev rune
	for _, r := range s {
		if frac, ok := unicodeFractions[r]; ok {
			if prev >= '0' && prev <= '9' {
				b.WriteByte(' ')
			}
			b.WriteString(frac)
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return strings.ReplaceAll(b.String(), "⁄", "/")
}

// QuantityPattern matches a mixed number, a fraction, a decimal or a range.
const QuantityPattern = `\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?(?:\s*(?:-|–|to)\s*\d+(?:\.\d+)?)?`

var (
	mixedRe  = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)$`)
	fracRe   = regexp.MustCompile(`^(\d+)/(\d+)$`)
	rangeRe  = regexp.MustCompile(`^(.+?)\s*(?:-|–|to)\s*(.+)$`)
	decimals = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// Quantity is a parsed amount. Low equals High unless IsRange.
type Quantity struct {
	Low     float64
	High    float64
	IsRange bool
}

// Value returns the amount used for arithmetic: the midpoint of a range.
func (q Quantity) Value() float64 {
	if q.IsRange {
		return (q.Low + q.High) / 2
	}
	return q.Low
}

// Scale multiplies both ends by m.
func (q Quantity) Scale(m float64) Quantity {
	return Quantity{Low: q.Low * m, High: q.High * m, IsRange: q.IsRange}
}

// String renders the quantity with common fractions.
func (q Quantity) String() string {
	if q.IsRange {
		return FormatAmount(q.Low) + "-" + FormatAmount(q.High)
	}
	return FormatAmount(q.Low)
}

// ParseQuantity parses "2", "1.5", "1/2", "1 1/2", "½" and ranges like "2-3".
func ParseQuantity(s string) (Quantity, bool) {
	s = strings.TrimSpace(NormalizeFractions(s))
	if s == "" {
		return Quantity{}, false
	}
	if v, ok := parseSingle(s); ok {
		return Quantity{Low: v, High: v}, true
	}
	if m := rangeRe.FindStringSubmatch(s); m != nil {
		low, okLow := parseSingle(m[1])
		high, okHigh := parseSingle(m[2])
		if okLow && okHigh {
			return Quantity{Low: low, High: high, IsRange: true}, true
		}
	}
	return Quantity{}, false
}

func parseSingle(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if m := mixedRe.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		frac, ok := fraction(m[2], m[3])
		return whole + frac, ok
	}
	if m := fracRe.FindStringSubmatch(s); m != nil {
		return fraction(m[1], m[2])
	}
	if decimals.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	}
	return 0, false
}

func fraction(num, den string) (float64, bool) {
	n, _ := strconv.ParseFloat(num, 64)
	d, _ := strconv.ParseFloat(den, 64)
	if d == 0 {
		return 0, false
	}
	return n / d, true
}

var displayFractions = []struct {
	value float64
	text  string
}{
	{1.0 / 8, "1/8"}, {1.0 / 4, "1/4"}, {1.0 / 3, "1/3"}, {3.0 / 8, "3/8"},
	{1.0 / 2, "1/2"}, {5.0 / 8, "5/8"}, {2.0 / 3, "2/3"}, {3.0 / 4, "3/4"}, {7.0 / 8, "7/8"},
}

const fractionTolerance = 0.01

// FormatAmount renders v as a whole number, a common fraction ("1 1/2"), or a
// decimal with at most two places.
func FormatAmount(v float64) string {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	whole := math.Floor(v)
	rest := v - whole
	if rest < fractionTolerance {
		return strconv.FormatFloat(whole, 'f', -1, 64)
	}
	if rest > 1-fractionTolerance {
		return strconv.FormatFloat(whole+1, 'f', -1, 64)
	}
	for _, f := range displayFractions {
		if math.Abs(rest-f.value) < fractionTolerance {
			if whole == 0 {
				return f.text
			}
			return strconv.FormatFloat(whole, 'f', -1, 64) + " " + f.text
		}
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
