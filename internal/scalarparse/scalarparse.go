// Package scalarparse implements the ZON scalar parser (C7, spec §4.8):
// classification of a bare token into Bool/Null/Int/Float/Str, honoring
// the leading-zero and ISO-date carve-outs.
//
// The classification dispatch follows the teacher's validateIngest
// type-switch (json.Number digit/exponent inspection), adapted from
// "validate an already-typed JSON value" to "classify a raw token from
// scratch".
package scalarparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dxieogo/zon/internal/zonerr"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// number is the exact §4.3 decode grammar: no leading zeros permitted.
var number = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// leadingZero matches a leading-zero integer literal that the number
// grammar deliberately excludes (e.g. "007", "00501").
var leadingZero = regexp.MustCompile(`^-?0[0-9]+$`)

var isoDateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}:\d{2})?(Z|[+-]\d{2}:\d{2})?$|^\d{2}:\d{2}:\d{2}$`)

// ClassifyBare classifies an unquoted token per §4.8's ordered rules.
func ClassifyBare(tok string, line, col int) (zonvalue.Value, error) {
	switch tok {
	case "T":
		return zonvalue.Bool(true), nil
	case "F":
		return zonvalue.Bool(false), nil
	}
	switch strings.ToLower(tok) {
	case "null", "none", "nil":
		return zonvalue.Null(), nil
	}
	if number.MatchString(tok) {
		return numberToValue(tok, line, col)
	}
	if leadingZero.MatchString(tok) {
		return zonvalue.Str(tok), nil
	}
	if isoDateTime.MatchString(tok) {
		return zonvalue.Str(tok), nil
	}
	return zonvalue.Str(tok), nil
}

func numberToValue(tok string, line, col int) (zonvalue.Value, error) {
	if !strings.ContainsAny(tok, ".eE") {
		i, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return zonvalue.Value{}, zonerr.At(zonerr.DecodeBadNumber, "integer literal out of i64 range: "+tok, line, col)
		}
		return zonvalue.Int(i), nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return zonvalue.Value{}, zonerr.At(zonerr.DecodeBadNumber, "malformed number literal: "+tok, line, col)
	}
	return zonvalue.Float(f), nil
}

// ClassifyQuoted returns the Str value of an already-unescaped quoted
// token. Per §4.8, a quoted token is always Str, even if its contents
// look like "T", "null", or "123".
func ClassifyQuoted(unescaped string) zonvalue.Value {
	return zonvalue.Str(unescaped)
}

// IsBareNumber reports whether tok matches the strict §4.3 number
// grammar, without going through the full classification. The decoder
// does not call it; ClassifyBare applies the same grammar directly.
func IsBareNumber(tok string) bool {
	return number.MatchString(tok)
}
