package jsonld

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// ParseResult is the outcome of strict JSON parsing. When Valid is false,
// Line and Column are 1-based and zero when no position is known.
type ParseResult struct {
	Valid  bool
	Data   any
	Error  string
	Line   int
	Column int
}

// ValidateJSON parses text as a single JSON value. It never returns an error
// to the caller; failures are reported in the result.
func ValidateJSON(text string) ParseResult {
	if strings.TrimSpace(text) == "" {
		return ParseResult{Error: "input is empty"}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return failure(text, err, errorOffset(text, err))
	}
	end := dec.InputOffset()
	rest := text[end:]
	if trimmed := strings.TrimLeft(rest, " \t\r\n"); trimmed != "" {
		offset := end + int64(len(rest)-len(trimmed)) + 1
		return failure(text, errors.New("unexpected data after top-level JSON value"), offset)
	}
	return ParseResult{Valid: true, Data: data}
}

func failure(text string, err error, offset int64) ParseResult {
	res := ParseResult{Error: err.Error()}
	if offset > 0 {
		res.Line, res.Column = lineColumn(text, offset)
	}
	return res
}

func errorOffset(text string, err error) int64 {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Offset
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Offset
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return int64(len(text))
	}
	return 0
}

// lineColumn converts a 1-based byte offset into a 1-based line and column.
func lineColumn(text string, offset int64) (int, int) {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	prefix := text[:offset]
	line := strings.Count(prefix, "\n") + 1
	lastNL := strings.LastIndexByte(prefix, '\n')
	col := utf8.RuneCountInString(prefix[lastNL+1:])
	if col == 0 {
		col = 1
	}
	return line, col
}
