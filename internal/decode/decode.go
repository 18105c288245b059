// Package decode implements the ZON decoder (C8, spec §4.9) and the
// strict/non-strict validation rules folded into it from C9 (spec
// §4.10): reconstructing the Value model from ZON text, including
// tables, inline compounds, dotted keys, and the security limits of
// spec §5.
//
// The line-driven loop (advance an index over a slice of logical
// lines, dispatching on what the current line looks like) follows the
// teacher's verifier's vector-by-vector loop, generalized from
// "iterate stored test vectors" to "iterate a document's logical
// lines".
package decode

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dxieogo/zon/internal/quote"
	"github.com/dxieogo/zon/internal/scalarparse"
	"github.com/dxieogo/zon/internal/token"
	"github.com/dxieogo/zon/internal/zonerr"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// anonymousTableHeader matches a root table header: `@(N):cols`.
var anonymousTableHeader = regexp.MustCompile(`^@\((\d+)\):(.*)$`)

// keyedTableHeader matches the canonical form `key:@(N):cols`.
var keyedTableHeader = regexp.MustCompile(`^([^:]+):@\((\d+)\):(.*)$`)

// keyedTableHeaderAlt matches the alternate spelling `@key(N):cols`
// (spec §9 Open Question 1): accepted on decode, never emitted.
var keyedTableHeaderAlt = regexp.MustCompile(`^@([^():]+)\((\d+)\):(.*)$`)

type decoder struct {
	opts     Options
	lines    []string
	keyCount int
}

// Decode parses ZON text into a Value, per spec §4.9/§4.10/§6.1.
func Decode(text string, opts Options) (zonvalue.Value, error) {
	opts = opts.withDefaults()
	if len(text) > opts.MaxDocumentBytes {
		return zonvalue.Value{}, zonerr.New(zonerr.E301DocumentBytes, "document exceeds max_document_bytes")
	}
	if strings.HasPrefix(text, "\xef\xbb\xbf") {
		return zonvalue.Value{}, zonerr.New(zonerr.DecodeBadHeader, "BOM is forbidden (spec §6.2)")
	}
	if !utf8.ValidString(text) {
		return zonvalue.Value{}, zonerr.New(zonerr.DecodeBadUTF8, "input is not valid UTF-8")
	}

	normalized := token.NormalizeNewlines(text)
	lines := token.SplitLines(normalized)
	for i, l := range lines {
		if len(l) > opts.MaxLineBytes {
			return zonvalue.Value{}, zonerr.At(zonerr.E302LineBytes, "line exceeds max_line_bytes", i+1, 0)
		}
	}

	d := &decoder{opts: opts, lines: lines}
	return d.decodeDocument()
}

// countKey increments the running decoded-key counter, enforcing §5's
// E304 object-key limit across the whole document (tables contribute
// one key per cell per row, compounds one per field).
func (d *decoder) countKey() error {
	d.keyCount++
	if d.keyCount > d.opts.MaxObjectKeys {
		return zonerr.New(zonerr.E304ObjectKeys, "object key count exceeds max_object_keys")
	}
	return nil
}

// firstNonBlank returns the index of the first non-blank logical line
// at or after start, or len(d.lines) if none remain.
func (d *decoder) firstNonBlank(start int) int {
	i := start
	for i < len(d.lines) && strings.TrimSpace(d.lines[i]) == "" {
		i++
	}
	return i
}

// decodeDocument implements the root-form rule of spec §4.9: an empty
// document decodes to Null; a leading `@(...):...` line makes the root
// a table array; otherwise the root is an object built line by line.
func (d *decoder) decodeDocument() (zonvalue.Value, error) {
	idx := d.firstNonBlank(0)
	if idx >= len(d.lines) {
		return zonvalue.Null(), nil
	}
	if m := anonymousTableHeader.FindStringSubmatch(d.lines[idx]); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return zonvalue.Value{}, zonerr.At(zonerr.DecodeBadHeader, "malformed row count", idx+1, 0)
		}
		rows, _, err := d.decodeTable(idx+1, idx+1, n, splitCols(m[2]))
		if err != nil {
			return zonvalue.Value{}, err
		}
		return zonvalue.Arr(rows), nil
	}
	return d.decodeRootObject(idx)
}

// decodeRootObject builds the root object from d.lines[start:], per
// spec §4.9: each logical line is a table header, a key:value field
// (possibly with a dotted key path), or blank (ignored as a section
// separator between metadata and tables).
func (d *decoder) decodeRootObject(start int) (zonvalue.Value, error) {
	root := newNode()
	i := start
	for i < len(d.lines) {
		if strings.TrimSpace(d.lines[i]) == "" {
			i++
			continue
		}
		line := d.lines[i]
		line1 := i + 1

		if key, n, cols, ok, err := parseKeyedTableHeader(line); ok || err != nil {
			if err != nil {
				return zonvalue.Value{}, err
			}
			rows, next, err := d.decodeTable(i+1, line1, n, cols)
			if err != nil {
				return zonvalue.Value{}, err
			}
			if err := d.countKey(); err != nil {
				return zonvalue.Value{}, err
			}
			if err := root.setPath(dottedPath(key), zonvalue.Arr(rows)); err != nil {
				return zonvalue.Value{}, err
			}
			i = next
			continue
		}

		key, rest, ok := token.SplitKeyValue(line)
		if !ok {
			return zonvalue.Value{}, zonerr.At(zonerr.DecodeBadHeader, "line is neither a table header nor key:value", line1, 0)
		}
		v, err := d.parseValueToken(rest, line1, 0)
		if err != nil {
			return zonvalue.Value{}, err
		}
		if err := d.countKey(); err != nil {
			return zonvalue.Value{}, err
		}
		if err := root.setPath(dottedPath(key), v); err != nil {
			return zonvalue.Value{}, err
		}
		i++
	}
	return root.build(), nil
}

// parseKeyedTableHeader recognizes a key-bearing table header in either
// the canonical (`key:@(N):cols`) or alternate (`@key(N):cols`, spec §9
// Open Question 1) spelling. ok is false (with a nil error) when line
// is not a table header at all; err is non-nil when it looks like one
// but is malformed.
func parseKeyedTableHeader(line string) (key string, n int, cols []string, ok bool, err error) {
	if m := keyedTableHeader.FindStringSubmatch(line); m != nil {
		n, convErr := strconv.Atoi(m[2])
		if convErr != nil {
			return "", 0, nil, true, zonerr.New(zonerr.DecodeBadHeader, "malformed row count: "+line)
		}
		return m[1], n, splitCols(m[3]), true, nil
	}
	if m := keyedTableHeaderAlt.FindStringSubmatch(line); m != nil {
		n, convErr := strconv.Atoi(m[2])
		if convErr != nil {
			return "", 0, nil, true, zonerr.New(zonerr.DecodeBadHeader, "malformed row count: "+line)
		}
		return m[1], n, splitCols(m[3]), true, nil
	}
	return "", 0, nil, false, nil
}

// dottedPath splits a field key on unescaped '.' into its path
// components (spec §4.9's dotted-key rule). A lone "." is not special:
// an empty component either side of it is kept verbatim, letting
// setPath's collision checks surface anything truly malformed.
func dottedPath(key string) []string {
	if !strings.Contains(key, ".") {
		return []string{key}
	}
	return strings.Split(key, ".")
}

// parseValueToken classifies the text after a line's first ':' (spec
// §4.9): empty means an empty Str, a leading '"' is a quoted scalar
// (itself possibly an inline-compound payload per §4.4), anything else
// is a bare token.
func (d *decoder) parseValueToken(rest string, line, col int) (zonvalue.Value, error) {
	if rest == "" {
		return zonvalue.Str(""), nil
	}
	if rest[0] == '"' {
		content, end, err := token.ScanQuoted(rest, line)
		if err != nil {
			return zonvalue.Value{}, err
		}
		if end != len(rest) {
			return zonvalue.Value{}, zonerr.At(zonerr.DecodeBadEscape, "trailing content after quoted value", line, end)
		}
		unescaped, ok := quote.Unescape(content)
		if !ok {
			return zonvalue.Value{}, zonerr.At(zonerr.DecodeBadEscape, "invalid escape sequence", line, col)
		}
		if looksLikeCompound(unescaped) {
			// A quoted payload that merely starts and ends with
			// matching brackets is ambiguous with a real inline
			// compound (§4.4/§4.5 use the same bracket-wrapped-quote
			// envelope for both). Attempt the compound parse; if it
			// fails on compound syntax (not a limit or poison-key
			// violation), the payload was never a compound to begin
			// with, so fall back to treating it as a plain string
			// (spec §8.1 law 1/law 6: this recovers round-trip for
			// cases like `"{not a compound}"`). The one case this
			// cannot recover — content that is itself valid compound
			// syntax, e.g. `Str("{}")` or `Str("{a:1}")` — is an
			// irreducible collision with no fix inside §4.2's 5-escape
			// set; see SPEC_FULL.md's note on it.
			savedKeyCount := d.keyCount
			v, err := d.parseCompound(unescaped, 0)
			if err == nil {
				return v, nil
			}
			if !isCompoundSyntaxError(err) {
				return zonvalue.Value{}, err
			}
			d.keyCount = savedKeyCount
		}
		return scalarparse.ClassifyQuoted(unescaped), nil
	}
	return scalarparse.ClassifyBare(rest, line, col)
}

// isCompoundSyntaxError reports whether err means the payload simply
// failed to parse as compound grammar — so parseValueToken should fall
// back to treating it as a plain string — as opposed to a genuine
// resource-limit (DecodeDepth/E303ArrayLength) or forbidden-key
// (DecodePoisonKey) violation inside what was structurally a real
// compound, which must still fail rather than be silently swallowed.
func isCompoundSyntaxError(err error) bool {
	return zonerr.Is(err, zonerr.DecodeBadHeader) ||
		zonerr.Is(err, zonerr.DecodeBadEscape) ||
		zonerr.Is(err, zonerr.DecodeUnterminatedString)
}
