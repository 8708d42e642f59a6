// Package ingredient decomposes ingredient lines into quantity, unit, name and
// preparation notes, either from an external decomposition or deterministically.
package ingredient

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// UnitEach is the catch-all unit for lines with no recognizable unit.
const UnitEach = "each"

type unitDef struct {
	canonical string
	plural    string
	variants  []string
	// metric conversion; zero factor means no conversion
	metricFactor float64
	metricUnit   string
}

var unitDefs = []unitDef{
	{"cup", "cups", []string{"cup", "cups", "c"}, 240, "ml"},
	{"tablespoon", "tablespoons", []string{"tablespoon", "tablespoons", "tbsp", "tbsps", "tbs", "tbl"}, 15, "ml"},
	{"teaspoon", "teaspoons", []string{"teaspoon", "teaspoons", "tsp", "tsps"}, 5, "ml"},
	{"fluid ounce", "fluid ounces", []string{"fluid ounce", "fluid ounces", "fl oz"}, 29.57, "ml"},
	{"ounce", "ounces", []string{"ounce", "ounces", "oz"}, 28.35, "g"},
	{"pound", "pounds", []string{"pound", "pounds", "lb", "lbs"}, 453.59, "g"},
	{"gram", "grams", []string{"gram", "grams", "g", "gr"}, 1, "g"},
	{"kilogram", "kilograms", []string{"kilogram", "kilograms", "kg", "kgs"}, 1000, "g"},
	{"milliliter", "milliliters", []string{"milliliter", "milliliters", "millilitre", "millilitres", "ml"}, 1, "ml"},
	{"liter", "liters", []string{"liter", "liters", "litre", "litres", "l"}, 1000, "ml"},
	{"quart", "quarts", []string{"quart", "quarts", "qt"}, 946, "ml"},
	{"pint", "pints", []string{"pint", "pints", "pt"}, 473, "ml"},
	{"gallon", "gallons", []string{"gallon", "gallons", "gal"}, 3785, "ml"},
	{"stick", "sticks", []string{"stick", "sticks"}, 113, "g"},
	{"pinch", "pinches", []string{"pinch", "pinches"}, 0, ""},
	{"dash", "dashes", []string{"dash", "dashes"}, 0, ""},
	{"clove", "cloves", []string{"clove", "cloves"}, 0, ""},
	{"can", "cans", []string{"can", "cans"}, 0, ""},
	{"package", "packages", []string{"package", "packages", "pkg", "pkgs"}, 0, ""},
	{"slice", "slices", []string{"slice", "slices"}, 0, ""},
	{"piece", "pieces", []string{"piece", "pieces"}, 0, ""},
	{"bunch", "bunches", []string{"bunch", "bunches"}, 0, ""},
	{"sprig", "sprigs", []string{"sprig", "sprigs"}, 0, ""},
	{"handful", "handfuls", []string{"handful", "handfuls"}, 0, ""},
	{UnitEach, UnitEach, []string{"each", "ea"}, 0, ""},
}

var (
	variantIndex   = map[string]*unitDef{}
	canonicalIndex = map[string]*unitDef{}
	// Built by its initializer so patterns compiled in package vars see it.
	unitAlternates = buildUnitIndex()
)

// buildUnitIndex fills the lookup maps and returns the unit alternation.
func buildUnitIndex() string {
	var variants []string
	for i := range unitDefs {
		def := &unitDefs[i]
		canonicalIndex[def.canonical] = def
		for _, v := range def.variants {
			variantIndex[v] = def
			variants = append(variants, v)
		}
	}
	// Longest first so "tbsp" wins over "t..." style prefixes in alternations.
	sort.Slice(variants, func(i, j int) bool { return len(variants[i]) > len(variants[j]) })
	for i, v := range variants {
		variants[i] = strings.ReplaceAll(v, " ", `\s+`)
	}
	return strings.Join(variants, "|")
}

// UnitPattern returns a regexp alternation of every known unit spelling,
// longest first, for embedding in larger patterns.
func UnitPattern() string {
	return unitAlternates
}

func lookupUnit(u string) *unitDef {
	key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(u), "."))
	key = strings.Join(strings.Fields(key), " ")
	if def, ok := variantIndex[key]; ok {
		return def
	}
	return nil
}

// NormalizeUnit maps any known spelling to its canonical singular form.
// Unknown units are returned lowercased and trimmed, with ok false.
func NormalizeUnit(u string) (string, bool) {
	if def := lookupUnit(u); def != nil {
		return def.canonical, true
	}
	return strings.ToLower(strings.TrimSpace(u)), false
}

// IsKnownUnit reports whether u is a recognized unit spelling.
func IsKnownUnit(u string) bool {
	return lookupUnit(u) != nil
}

// UnitForms returns the singular and plural forms of a unit, if known.
func UnitForms(u string) (singular, plural string, ok bool) {
	def := lookupUnit(u)
	if def == nil {
		return "", "", false
	}
	return def.canonical, def.plural, true
}

// UnitVariants returns every known spelling of u's unit, longest first.
func UnitVariants(u string) []string {
	def := lookupUnit(u)
	if def == nil {
		return nil
	}
	out := append([]string(nil), def.variants...)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// DisplayUnit returns the unit form that agrees with amount.
func DisplayUnit(unit string, amount float64) string {
	def := lookupUnit(unit)
	if def == nil {
		return unit
	}
	if amount == 1 {
		return def.canonical
	}
	return def.plural
}

// MetricEquivalent converts a quantity string in the given unit to metric.
// Both return values are empty when no conversion applies.
func MetricEquivalent(quantity, unit string) (string, string) {
	def := lookupUnit(unit)
	if def == nil || def.metricFactor == 0 {
		return "", ""
	}
	q, ok := ParseQuantity(quantity)
	if !ok {
		return "", ""
	}
	low := roundMetric(q.Low * def.metricFactor)
	if !q.IsRange {
		return low, def.metricUnit
	}
	return low + "-" + roundMetric(q.High*def.metricFactor), def.metricUnit
}

func roundMetric(v float64) string {
	if v >= 10 {
		return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
	}
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
