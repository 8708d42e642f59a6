package decomposer

import (
	"fmt"
	"strings"
)

// BuildPrompt returns the decomposition prompt for a batch of ingredient lines.
func BuildPrompt(lines []string) string {
	var b strings.Builder
	b.WriteString(`You are a recipe ingredient parser. Decompose each numbered ingredient line below into structured fields.

IMPORTANT INSTRUCTIONS:
- Return exactly one entry per input line, in the same order. Never merge, split or skip lines.
- "quantity" keeps the original text form, including fractions ("1 1/2") and ranges ("2-3"). Use null when absent.
- "unit" is the singular unit name ("cup", "tablespoon", "gram"). Use null when absent.
- "ingredientName" is the ingredient itself, without quantity, unit or preparation.
- "preparationNotes" holds preparation text such as "finely chopped" or "at room temperature". Use null when absent.
- "metricQuantity" and "metricUnit" give the metric equivalent (g or ml). Provide both or neither.
- "confidence" is a number between 0.0 and 1.0 for how sure you are of this decomposition.

Return ONLY valid JSON with no markdown formatting and no explanation, in this shape:
{"ingredients": [{"quantity": "", "unit": "", "ingredientName": "", "preparationNotes": "", "metricQuantity": "", "metricUnit": "", "confidence": 0.0}]}

Ingredient lines:
`)
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	return b.String()
}
