package encode

import (
	"github.com/dxieogo/zon/internal/quote"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// bareToken renders a non-string scalar's canonical token. Strings are
// handled separately by blockScalarToken/cellToken/compoundScalarToken
// because their rendering depends on the quoting context (§4.2).
func bareToken(v zonvalue.Value) string {
	switch v.Kind() {
	case zonvalue.KindNull:
		return "null"
	case zonvalue.KindBool:
		if v.Bool() {
			return "T"
		}
		return "F"
	case zonvalue.KindInt:
		return FormatInt(v.Int())
	case zonvalue.KindFloat:
		return FormatFloat(v.Float())
	default:
		return ""
	}
}

// blockScalarToken renders v as it appears after a `key:` at block
// scope, or as a root-level bare scalar.
func blockScalarToken(v zonvalue.Value) string {
	if v.Kind() == zonvalue.KindStr {
		s := v.Str()
		if quote.NeedsQuoting(s, quote.BlockStructural) {
			return quote.Quoted(s)
		}
		return s
	}
	return bareToken(v)
}

// cellToken renders v as a table-row cell (§4.2's RFC-4180 cell rule).
func cellToken(v zonvalue.Value) string {
	if v.Kind() == zonvalue.KindStr {
		return quote.QuoteCell(v.Str())
	}
	return bareToken(v)
}

// compoundScalarToken renders v as a leaf inside an inline compound
// payload (§4.5), nested-quoting strings that need it.
func compoundScalarToken(v zonvalue.Value) string {
	if v.Kind() == zonvalue.KindStr {
		s := v.Str()
		if quote.NeedsQuoting(s, quote.CompoundStructural) {
			return quote.Quoted(s)
		}
		return s
	}
	return bareToken(v)
}
