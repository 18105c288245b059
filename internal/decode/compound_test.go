package decode

import (
	"testing"

	"github.com/dxieogo/zon/internal/zonerr"
	"github.com/dxieogo/zon/internal/zonvalue"
)

func TestLooksLikeCompound(t *testing.T) {
	cases := map[string]bool{
		"{a:1}":    true,
		"[1,2]":    true,
		"plain":    false,
		"{}":       true,
		"[]":       true,
		"{":        false,
		"a{b}c":    false,
	}
	for in, want := range cases {
		if got := looksLikeCompound(in); got != want {
			t.Errorf("looksLikeCompound(%q) = %v, want %v", in, got, want)
		}
	}
}

func newTestDecoder() *decoder {
	return &decoder{opts: DefaultOptions().withDefaults()}
}

func TestParseCompoundEmptyContainers(t *testing.T) {
	d := newTestDecoder()
	obj, err := d.parseCompound("{}", 0)
	if err != nil || obj.Kind() != zonvalue.KindObj || len(obj.Fields()) != 0 {
		t.Errorf("got %v, err=%v", obj, err)
	}
	arr, err := d.parseCompound("[]", 0)
	if err != nil || arr.Kind() != zonvalue.KindArr || len(arr.Items()) != 0 {
		t.Errorf("got %v, err=%v", arr, err)
	}
}

func TestParseCompoundObjectWithNestedArray(t *testing.T) {
	d := newTestDecoder()
	v, err := d.parseCompound("{tags:[a,b],count:2}", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tags, ok := v.Get("tags")
	if !ok || len(tags.Items()) != 2 {
		t.Fatalf("got tags=%v ok=%v", tags, ok)
	}
	count, _ := v.Get("count")
	if count.Int() != 2 {
		t.Errorf("got count=%v", count)
	}
}

func TestParseCompoundRejectsForbiddenKey(t *testing.T) {
	d := newTestDecoder()
	_, err := d.parseCompound("{__proto__:1}", 0)
	if err == nil || !zonerr.Is(err, zonerr.DecodePoisonKey) {
		t.Errorf("expected DecodePoisonKey, got %v", err)
	}
}

func TestParseCompoundEnforcesMaxDepth(t *testing.T) {
	d := newTestDecoder()
	d.opts.MaxDepth = 1
	_, err := d.parseCompound("{a:{b:1}}", 0)
	if err == nil || !zonerr.Is(err, zonerr.DecodeDepth) {
		t.Errorf("expected DecodeDepth, got %v", err)
	}
}

func TestParseCompoundArrayEnforcesMaxArrayLen(t *testing.T) {
	d := newTestDecoder()
	d.opts.MaxArrayLen = 2
	_, err := d.parseCompound("[1,2,3]", 0)
	if err == nil || !zonerr.Is(err, zonerr.E303ArrayLength) {
		t.Errorf("expected E303ArrayLength, got %v", err)
	}
}

func TestParseCompoundQuotedElementStaysString(t *testing.T) {
	d := newTestDecoder()
	v, err := d.parseCompound(`["T","null"]`, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items := v.Items()
	if items[0].Kind() != zonvalue.KindStr || items[0].Str() != "T" {
		t.Errorf("got %v", items[0])
	}
	if items[1].Kind() != zonvalue.KindStr || items[1].Str() != "null" {
		t.Errorf("got %v", items[1])
	}
}

func TestSplitTopLevelRespectsNestedBracketsAndQuotes(t *testing.T) {
	parts, err := splitTopLevel(`a:1,b:"x,y",c:[1,2]`, ',')
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{`a:1`, `b:"x,y"`, `c:[1,2]`}
	if len(parts) != len(want) {
		t.Fatalf("got %v, want %v", parts, want)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("part %d: got %q, want %q", i, parts[i], want[i])
		}
	}
}

func TestSplitTopLevelRejectsUnbalancedBrackets(t *testing.T) {
	_, err := splitTopLevel("a:[1,2", ',')
	if err == nil || !zonerr.Is(err, zonerr.DecodeBadHeader) {
		t.Errorf("expected DecodeBadHeader, got %v", err)
	}
}

func TestSplitTopLevelColon(t *testing.T) {
	key, val, ok := splitTopLevelColon("tags:[a:1,b:2]")
	if !ok || key != "tags" || val != "[a:1,b:2]" {
		t.Errorf("got key=%q val=%q ok=%v", key, val, ok)
	}
}

func TestIsForbiddenKey(t *testing.T) {
	for _, k := range []string{"__proto__", "constructor", "prototype"} {
		if !isForbiddenKey(k) {
			t.Errorf("expected %q to be forbidden", k)
		}
	}
	if isForbiddenKey("name") {
		t.Error("expected 'name' to not be forbidden")
	}
}
