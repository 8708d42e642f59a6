package jsonld

import (
	"regexp"
	"strings"
)

var (
	trailingCommaRe = regexp.MustCompile(`,\s*[}\]]`)
	singleQuoteKey  = regexp.MustCompile(`'[^'\n]+'\s*:`)
)

// DetectIssues explains why the original (not preprocessed) paste may have
// failed to parse. It returns one human-readable hint per trigger found.
func DetectIssues(original string) []string {
	var hints []string
	text := original

	if strings.HasPrefix(text, bom) {
		hints = append(hints, "input starts with a byte-order mark")
		text = strings.TrimPrefix(text, bom)
	}
	text = strings.TrimSpace(text)

	switch {
	case fenceRe.MatchString(text):
		hints = append(hints, "input is wrapped in a markdown code fence")
	case strings.HasPrefix(text, "```"):
		hints = append(hints, "input has an unterminated markdown code fence")
	case isBacktickWrapped(text):
		hints = append(hints, "input is wrapped in backticks")
	}
	if isQuoteWrapped(text) {
		hints = append(hints, "the whole payload is wrapped in quotes, so it looks like a stringified JSON value")
	}
	if hasEscapeMarkers(text) {
		hints = append(hints, `this looks like escaped console output (literal \n or \" sequences)`)
	}
	if trailingCommaRe.MatchString(text) {
		hints = append(hints, "contains a trailing comma before a closing bracket")
	}
	if singleQuoteKey.MatchString(text) {
		hints = append(hints, "uses single-quoted keys; JSON requires double quotes")
	}
	if strings.ContainsAny(text, "“”") {
		hints = append(hints, "contains curly quotes; JSON requires straight double quotes")
	}
	if strings.HasPrefix(text, "<") {
		hints = append(hints, `looks like HTML; paste only the contents of the <script type="application/ld+json"> tag`)
	}
	return hints
}
