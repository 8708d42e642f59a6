package scaling

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
)

// DefaultMaxReferences caps how many ingredient mentions one instruction may
// rewrite.
const DefaultMaxReferences = 20

const emphasisMarker = `(?:\*{1,2}|_{1,2})?`

// Mass nouns keep their form whatever the amount.
var uncountable = map[string]bool{
	"flour": true, "sugar": true, "salt": true, "pepper": true, "butter": true,
	"milk": true, "water": true, "rice": true, "cheese": true, "bread": true,
}

var (
	optOutAfterRe  = regexp.MustCompile(`(?i)^[^.;!?]{0,40}?\b(?:to taste|as needed|for garnish|optional)\b`)
	optOutBeforeRe = regexp.MustCompile(`(?i)\b(?:garnish|season)\s+with\s*` + emphasisMarker + `\s*$`)
)

// InstructionOptions controls instruction scaling.
type InstructionOptions struct {
	// ScaleToTaste also rewrites amounts marked "to taste", "for garnish" and similar.
	ScaleToTaste bool
	// MaxReferences defaults to DefaultMaxReferences when zero.
	MaxReferences int
}

// Reference is one ingredient mention found in an instruction. Start and End
// are byte offsets into the original text.
type Reference struct {
	Ingredient       string `json:"ingredient"`
	Text             string `json:"text"`
	Start            int    `json:"start"`
	End              int    `json:"end"`
	OriginalQuantity string `json:"originalQuantity"`
	ScaledQuantity   string `json:"scaledQuantity"`
	Unit             string `json:"unit,omitempty"`
}

// ScaledInstruction is the result of scaling one instruction.
type ScaledInstruction struct {
	Original       string      `json:"original"`
	Scaled         string      `json:"scaled"`
	WasScaled      bool        `json:"wasScaled"`
	ReferenceCount int         `json:"referenceCount"`
	References     []Reference `json:"references"`
	Warnings       []string    `json:"warnings,omitempty"`
}

// ReferencePattern builds the pattern for mentions of one ingredient:
// optional emphasis, a quantity, an optional unit, an optional "of"/"with",
// the name with an optional plural suffix and optional closing emphasis.
// When unit is a known unit only its spellings match; otherwise any known
// unit does. Groups: 1 quantity, 2 unit, 3 name, 4 plural
// suffix. It returns nil for a blank name.
func ReferencePattern(name, unit string) *regexp.Regexp {
	words := strings.Fields(name)
	if len(words) == 0 {
		return nil
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	unitPat := ingredient.UnitPattern()
	if variants := ingredient.UnitVariants(unit); len(variants) > 0 {
		unitPat = unitAlternation(variants...)
	}
	return regexp.MustCompile(`(?i)` + emphasisMarker +
		`\b(` + ingredient.QuantityPattern + `)\s*` +
		`(?:(` + unitPat + `)\.?\s+)?` +
		`(?:(?:of|with)\s+)?` +
		`(` + strings.Join(words, `\s+`) + `)((?:e?s)?)\b` +
		emphasisMarker)
}

func unitAlternation(forms ...string) string {
	parts := make([]string, 0, len(forms))
	for _, f := range forms {
		fw := strings.Fields(f)
		for i, w := range fw {
			fw[i] = regexp.QuoteMeta(w)
		}
		parts = append(parts, strings.Join(fw, `\s+`))
	}
	return strings.Join(parts, "|")
}

type mention struct {
	loc []int
}

func (m mention) start() int { return m.loc[0] }
func (m mention) end() int   { return m.loc[1] }

// findMentions collects every ingredient mention, sorted by position with
// overlaps removed.
func findMentions(text string, ingredients []domain.ScaledIngredient) []mention {
	seen := map[string]bool{}
	var all []mention
	for _, si := range ingredients {
		name := strings.TrimSpace(si.Original.IngredientName)
		key := strings.ToLower(name) + "\x00" + domain.Deref(si.Original.Unit)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		re := ReferencePattern(name, domain.Deref(si.Original.Unit))
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if insideNumber(text, loc[2]) {
				continue
			}
			all = append(all, mention{loc: loc})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].start() != all[j].start() {
			return all[i].start() < all[j].start()
		}
		return all[i].end() > all[j].end()
	})

	var out []mention
	lastEnd := -1
	for _, m := range all {
		if m.start() < lastEnd {
			continue
		}
		out = append(out, m)
		lastEnd = m.end()
	}
	return out
}

// insideNumber reports whether the quantity starting at i continues a number
// the pattern did not consume, such as the "5" of "1,5".
func insideNumber(text string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return unicode.IsDigit(r) || strings.ContainsRune(".,/-–", r)
}

func isOptOut(text string, m mention) bool {
	return optOutAfterRe.MatchString(text[m.end():]) || optOutBeforeRe.MatchString(text[:m.start()])
}

// ScaleInstruction rewrites the quantities of ingredient mentions in text.
// A mention whose amount equals the ingredient's listed amount takes the
// scaled display quantity; other amounts scale by the same ratio.
func ScaleInstruction(text string, ingredients []domain.ScaledIngredient, opts InstructionOptions) ScaledInstruction {
	out := ScaledInstruction{Original: text, Scaled: text, References: []Reference{}}
	limit := opts.MaxReferences
	if limit <= 0 {
		limit = DefaultMaxReferences
	}

	var mentions []mention
	for _, m := range findMentions(text, ingredients) {
		if !opts.ScaleToTaste && isOptOut(text, m) {
			continue
		}
		mentions = append(mentions, m)
	}
	if len(mentions) > limit {
		out.Warnings = append(out.Warnings,
			fmt.Sprintf("more than %d ingredient references found; the rest of the instruction was left unscaled", limit))
		mentions = mentions[:limit]
	}

	type rewrite struct {
		m      mention
		qty    string
		amount float64
	}
	var rewrites []rewrite
	for _, m := range mentions {
		name := text[m.loc[6]:m.loc[7]]
		si, ok := FindIngredient(name, ingredients)
		qtyText := text[m.loc[2]:m.loc[3]]
		qty, amount, scalable := scaledMention(qtyText, si)
		if !ok || !scalable {
			out.Warnings = append(out.Warnings, fmt.Sprintf("could not scale %s", name))
			continue
		}
		ref := Reference{
			Ingredient:       si.Original.IngredientName,
			Text:             text[m.start():m.end()],
			Start:            m.start(),
			End:              m.end(),
			OriginalQuantity: qtyText,
			ScaledQuantity:   qty,
		}
		if m.loc[4] >= 0 {
			ref.Unit = text[m.loc[4]:m.loc[5]]
		}
		out.References = append(out.References, ref)
		rewrites = append(rewrites, rewrite{m: m, qty: qty, amount: amount})
	}

	// Right to left, so earlier offsets stay valid.
	scaled := text
	for i := len(rewrites) - 1; i >= 0; i-- {
		rw := rewrites[i]
		loc := rw.m.loc
		hasUnit := loc[4] >= 0
		if !hasUnit {
			scaled = replaceRange(scaled, loc[6], loc[9], pluralizeName(text[loc[6]:loc[7]], text[loc[8]:loc[9]], rw.amount))
		}
		if hasUnit {
			scaled = replaceRange(scaled, loc[4], loc[5], reconcileUnit(text[loc[4]:loc[5]], rw.amount))
		}
		scaled = replaceRange(scaled, loc[2], loc[3], rw.qty)
	}

	out.Scaled = scaled
	out.WasScaled = scaled != text
	out.ReferenceCount = len(out.References)
	return out
}

// ScaleInstructions scales each instruction independently.
func ScaleInstructions(lines []string, ingredients []domain.ScaledIngredient, opts InstructionOptions) []ScaledInstruction {
	out := make([]ScaledInstruction, len(lines))
	for i, line := range lines {
		out[i] = ScaleInstruction(line, ingredients, opts)
	}
	return out
}

// scaledMention returns the replacement quantity for a mention of si.
func scaledMention(qtyText string, si domain.ScaledIngredient) (string, float64, bool) {
	if si.ScaledQuantity == nil {
		return "", 0, false
	}
	listed, ok := ingredient.ParseQuantity(domain.Deref(si.Original.Quantity))
	if !ok || listed.Value() == 0 {
		return "", 0, false
	}
	mentioned, ok := ingredient.ParseQuantity(qtyText)
	if !ok {
		return "", 0, false
	}
	if mentioned.IsRange == listed.IsRange && math.Abs(mentioned.Value()-listed.Value()) < 1e-9 {
		return si.DisplayQuantity, *si.ScaledQuantity, true
	}
	ratio := *si.ScaledQuantity / listed.Value()
	if mentioned.IsRange {
		r := mentioned.Scale(ratio)
		r.Low, r.High = round2(r.Low), round2(r.High)
		return r.String(), r.Value(), true
	}
	amount := round2(mentioned.Value() * ratio)
	return ingredient.FormatAmount(amount), amount, true
}

func replaceRange(s string, start, end int, repl string) string {
	return s[:start] + repl + s[end:]
}

// reconcileUnit switches a spelled-out unit between singular and plural.
// Abbreviations such as "tbsp" or "g" are returned unchanged.
func reconcileUnit(unit string, amount float64) string {
	singular, plural, ok := ingredient.UnitForms(unit)
	lower := strings.ToLower(unit)
	if !ok || (lower != singular && lower != plural) {
		return unit
	}
	form := plural
	if amount == 1 {
		form = singular
	}
	return matchCase(unit, form)
}

// pluralizeName adds or drops a trailing "s" so name agrees with amount.
// Mass nouns are left alone.
func pluralizeName(name, suffix string, amount float64) string {
	lower := strings.ToLower(name)
	words := strings.Fields(lower)
	if len(words) > 0 && uncountable[words[len(words)-1]] {
		return name + suffix
	}
	if amount == 1 {
		switch {
		case suffix != "":
			return name
		case strings.HasSuffix(lower, "oes"):
			return name[:len(name)-2]
		case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
			return name[:len(name)-1]
		}
		return name
	}
	if suffix != "" || strings.HasSuffix(lower, "s") {
		return name + suffix
	}
	return name + "s"
}

func matchCase(original, form string) string {
	if original == "" || form == "" {
		return form
	}
	if unicode.IsUpper([]rune(original)[0]) {
		r := []rune(form)
		r[0] = unicode.ToUpper(r[0])
		return string(r)
	}
	return form
}

// FindIngredient returns the scaled ingredient whose name matches name,
// trying an exact case-folded match, then a plural-insensitive match, then a
// partial match in either direction.
func FindIngredient(name string, ingredients []domain.ScaledIngredient) (domain.ScaledIngredient, bool) {
	fold := cases.Fold()
	target := fold.String(strings.Join(strings.Fields(name), " "))
	if target == "" {
		return domain.ScaledIngredient{}, false
	}
	names := make([]string, len(ingredients))
	for i, si := range ingredients {
		names[i] = fold.String(strings.Join(strings.Fields(si.Original.IngredientName), " "))
	}

	for i, n := range names {
		if n == target {
			return ingredients[i], true
		}
	}
	for i, n := range names {
		if n != "" && samePlural(n, target) {
			return ingredients[i], true
		}
	}
	for i, n := range names {
		if n != "" && (strings.Contains(n, target) || strings.Contains(target, n)) {
			return ingredients[i], true
		}
	}
	return domain.ScaledIngredient{}, false
}

func samePlural(a, b string) bool {
	for _, x := range stems(a) {
		for _, y := range stems(b) {
			if x == y {
				return true
			}
		}
	}
	return false
}

func stems(s string) []string {
	out := []string{s}
	if strings.HasSuffix(s, "es") {
		out = append(out, strings.TrimSuffix(s, "es"))
	}
	if strings.HasSuffix(s, "s") {
		out = append(out, strings.TrimSuffix(s, "s"))
	}
	return out
}
