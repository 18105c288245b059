// Package layout implements the ZON layout planner (spec §4.4): for a
// value at a given site, it decides between a block scalar, a block
// table, an inline compound, or (root-level only) dot-flattened keys.
//
// The table-vs-inline split is grounded on toon-format-toon-go's
// detectTabular (same-key-set-across-elements test), adapted from
// TOON's bracket-header grammar to ZON's `key:@(N):cols` grammar.
package layout

import (
	"github.com/dxieogo/zon/internal/zonvalue"
)

// Form is the chosen emission shape for a value at a block-level site.
type Form int

const (
	FormScalar Form = iota
	FormTable
	FormInline
	FormDotFlattened
)

// Plan is the layout decision for one block-level field.
type Plan struct {
	Form    Form
	Columns []string // populated only for FormTable
}

// PlanField decides how to emit v at a block-level site (an object
// field, or a root-level array element set). dotFlatten enables the
// dot-flattened-keys form for eligible object values (§4.4's
// "Encoders SHOULD use dot-flattening only for objects whose
// transitive leaves are all scalars and whose depth <= 2").
func PlanField(v zonvalue.Value, dotFlatten bool) Plan {
	switch v.Kind() {
	case zonvalue.KindArr:
		if cols, ok := v.IsTable(); ok {
			return Plan{Form: FormTable, Columns: cols}
		}
		return Plan{Form: FormInline}
	case zonvalue.KindObj:
		if dotFlatten && isShallowScalarObject(v, 0) {
			return Plan{Form: FormDotFlattened}
		}
		return Plan{Form: FormInline}
	default:
		return Plan{Form: FormScalar}
	}
}

// isShallowScalarObject reports whether v is an Obj whose transitive
// leaves are all scalars and whose depth from the current point is at
// most 2 (spec §4.4).
func isShallowScalarObject(v zonvalue.Value, depth int) bool {
	if depth > 2 {
		return false
	}
	if v.Kind() == zonvalue.KindArr {
		return false
	}
	if v.Kind() != zonvalue.KindObj {
		return v.IsScalar()
	}
	if len(v.Fields()) == 0 {
		return false // empty object has no leaves to flatten meaningfully
	}
	for _, f := range v.Fields() {
		if !isShallowScalarObject(f.Value, depth+1) {
			return false
		}
	}
	return true
}

// FlattenedLeaves walks a shallow-scalar Obj and returns its
// dot-joined-path -> scalar leaves, keys sorted at every level (spec
// §4.6: object keys emit in ascending code-point order at every
// level), for the dot-flattened encoding form.
func FlattenedLeaves(v zonvalue.Value, prefix string) []DottedLeaf {
	var out []DottedLeaf
	for _, key := range v.SortedKeys() {
		fv, _ := v.Get(key)
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if fv.Kind() == zonvalue.KindObj {
			out = append(out, FlattenedLeaves(fv, path)...)
			continue
		}
		out = append(out, DottedLeaf{Path: path, Value: fv})
	}
	return out
}

// DottedLeaf is one terminal scalar reached while flattening a
// shallow-scalar object into dotted keys.
type DottedLeaf struct {
	Path  string
	Value zonvalue.Value
}

// BlockOrder partitions a root object's fields into the two emission
// groups of spec §4.6: non-array/non-table fields first (already
// sorted by the caller), then block tables, preserving sort order
// within each group.
func BlockOrder(fields []zonvalue.Field) (nonTables, tables []zonvalue.Field) {
	for _, f := range fields {
		if _, ok := f.Value.IsTable(); ok {
			tables = append(tables, f)
		} else {
			nonTables = append(nonTables, f)
		}
	}
	return nonTables, tables
}
