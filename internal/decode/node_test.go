package decode

import (
	"testing"

	"github.com/dxieogo/zon/internal/zonerr"
	"github.com/dxieogo/zon/internal/zonvalue"
)

func TestNodeSetPathSingleComponent(t *testing.T) {
	n := newNode()
	if err := n.setPath([]string{"name"}, zonvalue.Str("demo")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	built := n.build()
	v, ok := built.Get("name")
	if !ok || v.Str() != "demo" {
		t.Errorf("got %v, ok=%v", v, ok)
	}
}

func TestNodeSetPathNestedComponents(t *testing.T) {
	n := newNode()
	if err := n.setPath([]string{"a", "b", "c"}, zonvalue.Int(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	built := n.build()
	a, ok := built.Get("a")
	if !ok || a.Kind() != zonvalue.KindObj {
		t.Fatalf("expected nested object at 'a', got %v", a)
	}
	b, ok := a.Get("b")
	if !ok || b.Kind() != zonvalue.KindObj {
		t.Fatalf("expected nested object at 'a.b', got %v", b)
	}
	c, ok := b.Get("c")
	if !ok || c.Int() != 1 {
		t.Errorf("got c=%v", c)
	}
}

func TestNodePreservesInsertionOrder(t *testing.T) {
	n := newNode()
	n.setPath([]string{"zeta"}, zonvalue.Int(1))
	n.setPath([]string{"alpha"}, zonvalue.Int(2))
	built := n.build()
	keys := make([]string, len(built.Fields()))
	for i, f := range built.Fields() {
		keys[i] = f.Key
	}
	if keys[0] != "zeta" || keys[1] != "alpha" {
		t.Errorf("expected insertion order preserved, got %v", keys)
	}
}

func TestNodeRejectsForbiddenKeyAnywhereOnPath(t *testing.T) {
	n := newNode()
	if err := n.setPath([]string{"constructor", "x"}, zonvalue.Int(1)); err == nil || !zonerr.Is(err, zonerr.DecodePoisonKey) {
		t.Errorf("expected DecodePoisonKey, got %v", err)
	}
}

func TestNodeLeafThenChildCollides(t *testing.T) {
	n := newNode()
	if err := n.setPath([]string{"address"}, zonvalue.Str("flat")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := n.setPath([]string{"address", "city"}, zonvalue.Str("NYC"))
	if err == nil || !zonerr.Is(err, zonerr.DecodeKeyCollision) {
		t.Errorf("expected DecodeKeyCollision, got %v", err)
	}
}

func TestNodeChildThenLeafCollides(t *testing.T) {
	n := newNode()
	if err := n.setPath([]string{"address", "city"}, zonvalue.Str("NYC")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := n.setPath([]string{"address"}, zonvalue.Str("flat"))
	if err == nil || !zonerr.Is(err, zonerr.DecodeKeyCollision) {
		t.Errorf("expected DecodeKeyCollision, got %v", err)
	}
}

func TestNodeDuplicateLeafCollides(t *testing.T) {
	n := newNode()
	n.setPath([]string{"name"}, zonvalue.Str("a"))
	err := n.setPath([]string{"name"}, zonvalue.Str("b"))
	if err == nil || !zonerr.Is(err, zonerr.DecodeKeyCollision) {
		t.Errorf("expected DecodeKeyCollision, got %v", err)
	}
}

func TestNodeSiblingPathsCoexist(t *testing.T) {
	n := newNode()
	n.setPath([]string{"address", "city"}, zonvalue.Str("NYC"))
	n.setPath([]string{"address", "zip"}, zonvalue.Str("10001"))
	built := n.build()
	addr, _ := built.Get("address")
	if len(addr.Fields()) != 2 {
		t.Errorf("expected 2 sibling fields, got %d", len(addr.Fields()))
	}
}
