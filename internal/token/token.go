// Package token implements the ZON line/CSV tokenizer (C6, spec §4.7):
// CRLF normalization, logical-line splitting, and RFC-4180-aware row
// splitting.
//
// No pack example implements this exact combination (line-oriented
// key:value syntax plus embedded CSV rows), so this module is written
// in the teacher's explicit, byte-indexed scanning style
// (canonicalizeString's indexed loop over a string) applied to line and
// row splitting instead of character escaping.
package token

import (
	"strings"

	"github.com/dxieogo/zon/internal/zonerr"
)

// NormalizeNewlines converts CRLF to LF, per spec §4.7.
func NormalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SplitLines splits normalized text into logical lines. A literal
// newline can never occur inside a quoted scalar (only the \n escape
// can represent one there, per §4.7), so every physical line is also a
// logical line; no continuation is required. An unterminated quote is
// instead caught when the line's content is scanned (ScanQuoted).
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// SplitKeyValue splits a `key:value` line on its first colon. Keys
// never contain a colon or a quote, so the first colon unambiguously
// separates key from the (possibly itself colon-containing, e.g. a
// table header's `@(N):cols`) remainder.
func SplitKeyValue(line string) (key, rest string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+1:], true
}

// ScanQuoted reads a double-quoted scalar starting at s[0] == '"' and
// returns the raw (still-escaped) content between the quotes plus the
// index immediately after the closing quote. It fails with
// DecodeUnterminatedString if the line ends before a closing quote is
// found, and with DecodeBadEscape if a backslash is the last byte.
func ScanQuoted(s string, line int) (content string, endIdx int, err error) {
	if len(s) == 0 || s[0] != '"' {
		return "", 0, zonerr.At(zonerr.DecodeUnterminatedString, "expected opening quote", line, 0)
	}
	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", 0, zonerr.At(zonerr.DecodeBadEscape, "dangling backslash at end of line", line, i)
			}
			i += 2
		case '"':
			return s[1:i], i + 1, nil
		default:
			i++
		}
	}
	return "", 0, zonerr.At(zonerr.DecodeUnterminatedString, "unterminated quoted scalar", line, 0)
}

// Cell is one RFC-4180-split table field together with whether it was
// quoted in the source: a decoder must treat a quoted cell's content as
// always-Str, since the quoter only quotes a cell to disambiguate it
// from a bare literal (spec §4.2 rule 7's round-trip concern).
type Cell struct {
	Text   string
	Quoted bool
}

// SplitRow splits one table data row into fields honoring RFC-4180
// quoting (spec §4.7): a field beginning with '"' is parsed until its
// matching '"' (internal "" = one '"'), after which the next character
// must be ',' or end-of-line.
func SplitRow(row string, line int) ([]string, error) {
	cells, err := SplitRowCells(row, line)
	if err != nil {
		return nil, err
	}
	fields := make([]string, len(cells))
	for i, c := range cells {
		fields[i] = c.Text
	}
	return fields, nil
}

// SplitRowCells is SplitRow's richer form, preserving per-cell quoting.
func SplitRowCells(row string, line int) ([]Cell, error) {
	var cells []Cell
	i := 0
	for {
		if i < len(row) && row[i] == '"' {
			field, next, err := scanQuotedCell(row, i, line)
			if err != nil {
				return nil, err
			}
			cells = append(cells, Cell{Text: field, Quoted: true})
			i = next
			if i == len(row) {
				return cells, nil
			}
			if row[i] != ',' {
				return nil, zonerr.At(zonerr.DecodeBadCell, "expected ',' after quoted cell", line, i)
			}
			i++
			continue
		}
		j := strings.IndexByte(row[i:], ',')
		if j < 0 {
			cells = append(cells, Cell{Text: row[i:]})
			return cells, nil
		}
		cells = append(cells, Cell{Text: row[i : i+j]})
		i += j + 1
	}
}

// scanQuotedCell parses an RFC-4180 quoted cell starting at row[start],
// unescaping doubled quotes ("" -> ") as it goes, and returns the
// unescaped field content plus the index right after the closing quote.
func scanQuotedCell(row string, start, line int) (field string, next int, err error) {
	var b strings.Builder
	i := start + 1
	for i < len(row) {
		if row[i] == '"' {
			if i+1 < len(row) && row[i+1] == '"' {
				b.WriteByte('"')
				i += 2
				continue
			}
			return b.String(), i + 1, nil
		}
		b.WriteByte(row[i])
		i++
	}
	return "", 0, zonerr.At(zonerr.DecodeBadCell, "unterminated quoted cell", line, start)
}
