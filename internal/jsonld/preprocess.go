// Package jsonld turns pasted schema.org JSON-LD text into a RecipeDraft.
package jsonld

import (
	"encoding/json"
	"regexp"
	"strings"
)

const bom = "\ufeff"

var (
	fenceRe       = regexp.MustCompile("(?s)^```[\\w-]*[ \\t]*\\r?\\n(.*?)\\r?\\n[ \\t]*```$")
	escapeMarkers = []string{`\n`, `\"`, `\t`, `\\`}
)

// Preprocess normalizes pasted text into a JSON parse candidate. It never fails:
// a step whose trigger does not match, or whose transformation fails, leaves the
// text unchanged. Preprocess(Preprocess(x)) == Preprocess(x).
func Preprocess(raw string) string {
	// Terminates: unescaping leaves valid UTF-8, so it can widen the text at
	// most once, and every other changing pass makes it strictly shorter.
	text := raw
	for {
		next := preprocessOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func preprocessOnce(text string) string {
	text = strings.TrimPrefix(text, bom)
	text = strings.TrimSpace(text)

	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	if isBacktickWrapped(text) {
		text = strings.TrimSpace(text[1 : len(text)-1])
	}
	if isQuoteWrapped(text) {
		text = text[1 : len(text)-1]
	}
	if hasEscapeMarkers(text) {
		text = unescape(text)
	}
	return text
}

func isBacktickWrapped(text string) bool {
	if len(text) < 2 || strings.HasPrefix(text, "```") {
		return false
	}
	if text[0] != '`' || text[len(text)-1] != '`' {
		return false
	}
	return !strings.Contains(text[1:len(text)-1], "`")
}

// isQuoteWrapped reports whether the whole payload looks like a stringified
// value rather than JSON that merely starts and ends with a quote.
func isQuoteWrapped(text string) bool {
	if len(text) < 2 {
		return false
	}
	first, last := text[0], text[len(text)-1]
	if first != last || (first != '"' && first != '\'') {
		return false
	}
	return hasEscapeMarkers(text[1 : len(text)-1])
}

func hasEscapeMarkers(text string) bool {
	for _, m := range escapeMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func unescape(text string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+text+`"`), &out); err != nil {
		return text
	}
	return out
}
