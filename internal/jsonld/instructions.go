package jsonld

import (
	"fmt"
	"strings"
)

const consoleSnippet = `copy(JSON.stringify([...document.querySelectorAll('script[type="application/ld+json"]')].map(s => JSON.parse(s.textContent)), null, 2))`

// ExtractionInstructions returns copy-pasteable steps for pulling the embedded
// JSON-LD out of a live page with the browser console.
func ExtractionInstructions(sourceURL string) string {
	page := "the recipe page"
	if u := strings.TrimSpace(sourceURL); u != "" {
		page = u
	}

	var b strings.Builder
	fmt.Fprintf(&b, "1. Open %s in your browser.\n", page)
	b.WriteString("2. Open the developer console (F12, or Cmd+Option+J on macOS).\n")
	b.WriteString("3. Paste this command and press Enter:\n\n")
	b.WriteString("   " + consoleSnippet + "\n\n")
	b.WriteString("4. The recipe data is now on your clipboard. Paste it into the import box.\n")
	b.WriteString("If the command copies an empty list, the page does not embed schema.org recipe data.\n")
	return b.String()
}
