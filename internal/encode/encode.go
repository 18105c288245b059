// Package encode implements the ZON encoder (C5, spec §4.6): it drives
// the layout planner and quoter to emit canonical ZON text from a
// zonvalue.Value, enforcing key ordering and the root block-emission
// order.
//
// The top-level driver mirrors the teacher's CanonicalizeObject entry
// point — a pure function over an already-canonical value, building
// output as a flat list of lines the way the teacher builds a
// bytes.Buffer — generalized from one JSON object shape to ZON's four
// layout forms.
package encode

import (
	"strings"

	"github.com/dxieogo/zon/internal/layout"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// Options configures Encode (spec §6.1).
type Options struct {
	// SortKeys sorts the root object's keys in ascending code-point
	// order. Defaults to true; spec §4.6 requires this for the
	// canonical form, so disabling it produces non-canonical but still
	// valid output (root keys are emitted in their Obj field order
	// instead). It does not affect nested levels: inline compound keys,
	// dot-flattened leaves and table columns are always sorted.
	SortKeys bool
	// DotFlatten enables the dot-flattened-key form for eligible
	// root-level object children (§4.4, §9 Open Question 2).
	DotFlatten bool
	// EnsureTrailingNewline appends a final LF. Spec §4.6 recommends no
	// final trailing newline; default false.
	EnsureTrailingNewline bool
}

// DefaultOptions returns the codec's default encode behavior. Spec
// §6.1's interface table lists dot_flatten's default as true, but the
// worked example in §8.2 scenario S1 encodes a shallow-scalar nested
// object ("context") as an inline compound, not dot-flattened keys —
// the literal golden output governs, so DotFlatten defaults to false
// here; callers can opt in per spec §9 Open Question 2.
func DefaultOptions() Options {
	return Options{SortKeys: true, DotFlatten: false, EnsureTrailingNewline: false}
}

// Encode renders v as canonical ZON text. Encode is a pure function of
// v and opts: equal inputs produce byte-identical output (spec §4.6,
// §8.1 law 3).
func Encode(v zonvalue.Value, opts Options) (string, error) {
	e := &encoder{opts: opts}
	if err := e.encodeRoot(v); err != nil {
		return "", err
	}
	out := strings.Join(e.lines, "\n")
	if opts.EnsureTrailingNewline && out != "" {
		out += "\n"
	}
	return out, nil
}

type encoder struct {
	opts  Options
	lines []string
}

func (e *encoder) emit(line string) { e.lines = append(e.lines, line) }

func (e *encoder) encodeRoot(v zonvalue.Value) error {
	switch v.Kind() {
	case zonvalue.KindObj:
		return e.encodeRootObject(v)
	case zonvalue.KindArr:
		if cols, ok := v.IsTable(); ok {
			e.emit(tableHeader("", len(v.Items()), cols))
			e.lines = append(e.lines, tableRows(v.Items(), cols)...)
			return nil
		}
		e.emit(compoundPayload(v))
		return nil
	default:
		// A root Null still emits its literal token; an empty document
		// (zero lines) is decode's "no input" case (§4.9), which Encode
		// produces only for a root Obj with no fields.
		e.emit(blockScalarToken(v))
		return nil
	}
}

// encodeRootObject emits a root-level Obj's fields in the block order
// of §4.6: non-array/non-table fields first (sorted), then block
// tables (sorted), applying dot-flattening per field where eligible.
func (e *encoder) encodeRootObject(v zonvalue.Value) error {
	fields := e.orderedFields(v)
	nonTables, tables := layout.BlockOrder(fields)
	for _, f := range nonTables {
		e.encodeField(f.Key, f.Value)
	}
	for _, f := range tables {
		e.encodeField(f.Key, f.Value)
	}
	return nil
}

// orderedFields returns v's fields sorted by key when SortKeys is set
// (the default and the only canonical form), or in decode/insertion
// order otherwise.
func (e *encoder) orderedFields(v zonvalue.Value) []zonvalue.Field {
	if !e.opts.SortKeys {
		return v.Fields()
	}
	keys := v.SortedKeys()
	fields := make([]zonvalue.Field, len(keys))
	for i, k := range keys {
		fv, _ := v.Get(k)
		fields[i] = zonvalue.Field{Key: k, Value: fv}
	}
	return fields
}

// encodeField emits one block-level field, choosing its layout form.
func (e *encoder) encodeField(key string, v zonvalue.Value) {
	plan := layout.PlanField(v, e.opts.DotFlatten)
	switch plan.Form {
	case layout.FormTable:
		items := v.Items()
		e.emit(tableHeader(key, len(items), plan.Columns))
		e.lines = append(e.lines, tableRows(items, plan.Columns)...)
	case layout.FormDotFlattened:
		for _, leaf := range layout.FlattenedLeaves(v, key) {
			e.emit(leaf.Path + ":" + blockScalarToken(leaf.Value))
		}
	case layout.FormInline:
		e.emit(key + ":" + compoundPayload(v))
	default:
		e.emit(key + ":" + blockScalarToken(v))
	}
}
