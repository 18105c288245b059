package encode

import (
	"strings"

	"github.com/dxieogo/zon/internal/quote"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// compoundPayload renders v as a quoted inline payload (§4.5): it first
// builds the inner single-line grammar with no outer envelope, then
// wraps the whole result in the outer quotes with escapes. This two-pass
// structure is the spec's own description of the algorithm, not an
// optimization — wrapping each nested element in its own outer quote
// would double-escape incorrectly.
func compoundPayload(v zonvalue.Value) string {
	return quote.Quoted(compoundInner(v))
}

// compoundInner builds the unescaped single-line body of an inline
// object or array (everything between, but not including, the outer
// quotes).
func compoundInner(v zonvalue.Value) string {
	switch v.Kind() {
	case zonvalue.KindObj:
		keys := v.SortedKeys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			fv, _ := v.Get(k)
			parts[i] = k + ":" + compoundElement(fv)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case zonvalue.KindArr:
		items := v.Items()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = compoundElement(item)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return compoundScalarToken(v)
	}
}

// compoundElement renders one array item or object field value within
// a compound body: scalars render as tokens, nested objects/arrays
// recurse into the same single-line grammar without an extra layer of
// quoting (only scalar leaves are ever nested-quoted).
func compoundElement(v zonvalue.Value) string {
	switch v.Kind() {
	case zonvalue.KindObj, zonvalue.KindArr:
		return compoundInner(v)
	default:
		return compoundScalarToken(v)
	}
}
