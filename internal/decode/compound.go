package decode

import (
	"github.com/dxieogo/zon/internal/quote"
	"github.com/dxieogo/zon/internal/scalarparse"
	"github.com/dxieogo/zon/internal/zonerr"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// looksLikeCompound reports whether an unescaped quoted value's content
// is an inline object or array payload (§4.4: key:"{…}" or key:"[…]")
// rather than a plain quoted string that happens to need quoting.
func looksLikeCompound(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '{' && s[len(s)-1] == '}') || (s[0] == '[' && s[len(s)-1] == ']')
}

// parseCompound parses the single-line inline-compound grammar of
// spec §4.5: s is the unescaped payload, e.g. `{a:1,b:[2,3]}`.
func (d *decoder) parseCompound(s string, depth int) (zonvalue.Value, error) {
	if depth >= d.opts.MaxDepth {
		return zonvalue.Value{}, zonerr.New(zonerr.DecodeDepth, "nesting depth exceeds limit")
	}
	switch {
	case s == "{}":
		return zonvalue.Obj(nil), nil
	case s == "[]":
		return zonvalue.Arr(nil), nil
	case len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}':
		return d.parseCompoundObject(s[1:len(s)-1], depth)
	case len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']':
		return d.parseCompoundArray(s[1:len(s)-1], depth)
	default:
		return zonvalue.Value{}, zonerr.New(zonerr.DecodeBadHeader, "malformed inline compound: "+s)
	}
}

func (d *decoder) parseCompoundObject(inner string, depth int) (zonvalue.Value, error) {
	parts, err := splitTopLevel(inner, ',')
	if err != nil {
		return zonvalue.Value{}, err
	}
	fields := make([]zonvalue.Field, 0, len(parts))
	for _, part := range parts {
		key, val, ok := splitTopLevelColon(part)
		if !ok {
			return zonvalue.Value{}, zonerr.New(zonerr.DecodeBadHeader, "malformed inline object field: "+part)
		}
		if err := d.countKey(); err != nil {
			return zonvalue.Value{}, err
		}
		if isForbiddenKey(key) {
			return zonvalue.Value{}, zonerr.New(zonerr.DecodePoisonKey, "forbidden key: "+key)
		}
		fv, err := d.parseCompoundElement(val, depth+1)
		if err != nil {
			return zonvalue.Value{}, err
		}
		fields = append(fields, zonvalue.Field{Key: key, Value: fv})
	}
	return zonvalue.Obj(fields), nil
}

func (d *decoder) parseCompoundArray(inner string, depth int) (zonvalue.Value, error) {
	parts, err := splitTopLevel(inner, ',')
	if err != nil {
		return zonvalue.Value{}, err
	}
	if len(parts) > d.opts.MaxArrayLen {
		return zonvalue.Value{}, zonerr.New(zonerr.E303ArrayLength, "array length exceeds limit")
	}
	items := make([]zonvalue.Value, len(parts))
	for i, part := range parts {
		v, err := d.parseCompoundElement(part, depth+1)
		if err != nil {
			return zonvalue.Value{}, err
		}
		items[i] = v
	}
	return zonvalue.Arr(items), nil
}

func (d *decoder) parseCompoundElement(s string, depth int) (zonvalue.Value, error) {
	if s == "" {
		return zonvalue.Str(""), nil
	}
	switch s[0] {
	case '"':
		content, end, err := scanQuotedAll(s)
		if err != nil {
			return zonvalue.Value{}, err
		}
		if end != len(s) {
			return zonvalue.Value{}, zonerr.New(zonerr.DecodeBadEscape, "trailing content after quoted element: "+s)
		}
		unescaped, ok := quote.Unescape(content)
		if !ok {
			return zonvalue.Value{}, zonerr.New(zonerr.DecodeBadEscape, "invalid escape in: "+content)
		}
		return scalarparse.ClassifyQuoted(unescaped), nil
	case '{', '[':
		return d.parseCompound(s, depth)
	default:
		return scalarparse.ClassifyBare(s, 0, 0)
	}
}

// scanQuotedAll scans a quoted scalar starting at s[0] == '"' to its
// closing quote, returning the raw (still-escaped) interior.
func scanQuotedAll(s string) (content string, end int, err error) {
	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return "", 0, zonerr.New(zonerr.DecodeBadEscape, "dangling backslash")
			}
			i += 2
		case '"':
			return s[1:i], i + 1, nil
		default:
			i++
		}
	}
	return "", 0, zonerr.New(zonerr.DecodeUnterminatedString, "unterminated quoted scalar in compound")
}

// splitTopLevel splits s on sep at bracket/quote depth 0.
func splitTopLevel(s string, sep byte) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case inQuote:
			if c == '\\' {
				i++ // skip escaped char
			} else if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
			if depth < 0 {
				return nil, zonerr.New(zonerr.DecodeBadHeader, "unbalanced bracket in compound")
			}
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
		i++
	}
	if inQuote {
		return nil, zonerr.New(zonerr.DecodeUnterminatedString, "unterminated quoted scalar in compound")
	}
	if depth != 0 {
		return nil, zonerr.New(zonerr.DecodeBadHeader, "unbalanced bracket in compound")
	}
	parts = append(parts, s[start:])
	return parts, nil
}

// splitTopLevelColon finds the first ':' at depth 0 outside quotes,
// splitting an inline object field into key and value text.
func splitTopLevelColon(s string) (key, val string, ok bool) {
	depth := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			if c == '\\' {
				i++
			} else if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
		case c == ':' && depth == 0:
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

func isForbiddenKey(k string) bool {
	switch k {
	case "__proto__", "constructor", "prototype":
		return true
	default:
		return false
	}
}
