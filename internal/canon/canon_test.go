package canon

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/dxieogo/zon/internal/zonerr"
	"github.com/dxieogo/zon/internal/zonvalue"
)

func TestValueScalarConversions(t *testing.T) {
	cases := []struct {
		in   any
		kind zonvalue.Kind
	}{
		{nil, zonvalue.KindNull},
		{true, zonvalue.KindBool},
		{42, zonvalue.KindInt},
		{int64(-7), zonvalue.KindInt},
		{3.5, zonvalue.KindFloat},
		{"hello", zonvalue.KindStr},
	}
	for _, c := range cases {
		v, err := Value(c.in)
		if err != nil {
			t.Fatalf("Value(%#v) returned error: %v", c.in, err)
		}
		if v.Kind() != c.kind {
			t.Errorf("Value(%#v): got kind %v, want %v", c.in, v.Kind(), c.kind)
		}
	}
}

func TestValueNaNAndInfBecomeNull(t *testing.T) {
	for _, f := range []float64{
		math.NaN(),
		math.Inf(1),
		math.Inf(-1),
	} {
		v, err := Value(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Kind() != zonvalue.KindNull {
			t.Errorf("Value(%v): expected KindNull, got %v", f, v.Kind())
		}
	}
}

func TestValueNegativeZeroCollapsesToZero(t *testing.T) {
	v, err := Value(math.Copysign(0, -1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != zonvalue.KindFloat || v.Float() != 0 {
		t.Errorf("expected negative zero to collapse to Float(0), got %v", v)
	}
}

func TestValueJSONNumberClassification(t *testing.T) {
	intVal, err := Value(json.Number("42"))
	if err != nil || intVal.Kind() != zonvalue.KindInt || intVal.Int() != 42 {
		t.Errorf("expected json.Number(42) to canonicalize to Int(42), got %v, err=%v", intVal, err)
	}

	floatVal, err := Value(json.Number("3.5"))
	if err != nil || floatVal.Kind() != zonvalue.KindFloat {
		t.Errorf("expected json.Number(3.5) to canonicalize to Float, got %v, err=%v", floatVal, err)
	}
}

func TestValueStringNormalizesNFC(t *testing.T) {
	// "e" + combining acute accent decomposed form should normalize to
	// the precomposed "é".
	decomposed := "é"
	v, err := Value(decomposed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Str() != "é" {
		t.Errorf("expected NFC-normalized string, got %q", v.Str())
	}
}

func TestValueMapAndSlice(t *testing.T) {
	in := map[string]any{"a": 1, "b": []any{1, "x", nil}}
	v, err := Value(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != zonvalue.KindObj {
		t.Fatalf("expected KindObj, got %v", v.Kind())
	}
	b, ok := v.Get("b")
	if !ok || b.Kind() != zonvalue.KindArr {
		t.Fatalf("expected field 'b' to be an array, got %v, %v", b, ok)
	}
}

func TestValueRejectsForbiddenKey(t *testing.T) {
	_, err := Value(map[string]any{"__proto__": 1})
	if err == nil || !zonerr.Is(err, zonerr.DecodePoisonKey) {
		t.Errorf("expected DecodePoisonKey error, got %v", err)
	}
}

func TestValueRejectsUnsupportedType(t *testing.T) {
	type weird struct{ X int }
	_, err := Value(weird{X: 1})
	if err == nil || !zonerr.Is(err, zonerr.EncodeUnsupportedType) {
		t.Errorf("expected EncodeUnsupportedType error, got %v", err)
	}
}

func TestValueDetectsCyclicMap(t *testing.T) {
	m := map[string]any{}
	m["self"] = m
	_, err := Value(m)
	if err == nil || !zonerr.Is(err, zonerr.EncodeCycle) {
		t.Errorf("expected EncodeCycle error for a self-referential map, got %v", err)
	}
}

func TestValueDetectsCyclicSlice(t *testing.T) {
	s := make([]any, 1)
	s[0] = s
	_, err := Value(s)
	if err == nil || !zonerr.Is(err, zonerr.EncodeCycle) {
		t.Errorf("expected EncodeCycle error for a self-referential slice, got %v", err)
	}
}

func TestValueAllowsSiblingSharedReference(t *testing.T) {
	shared := []any{1, 2}
	m := map[string]any{"a": shared, "b": shared}
	if _, err := Value(m); err != nil {
		t.Errorf("expected sibling references to the same slice to be allowed, got %v", err)
	}
}
