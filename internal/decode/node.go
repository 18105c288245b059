package decode

import (
	"github.com/dxieogo/zon/internal/zonerr"
	"github.com/dxieogo/zon/internal/zonvalue"
)

func zonerrCollision(key string) error {
	return zonerr.New(zonerr.DecodeKeyCollision, "key collision at: "+key)
}

func zonerrPoisonKey(key string) error {
	return zonerr.New(zonerr.DecodePoisonKey, "forbidden key: "+key)
}

// node accumulates a decoded object's fields in insertion order while
// it is still being built from dotted-key paths (spec §4.9): a key may
// arrive as a single `key:value` line, or be synthesized one path
// component at a time from a run of `parent.child:value` lines. Only
// once every line has been read is the tree frozen into an immutable
// zonvalue.Value via build.
type node struct {
	order    []string
	children map[string]*node
	leaf     map[string]zonvalue.Value
}

func newNode() *node {
	return &node{children: make(map[string]*node), leaf: make(map[string]zonvalue.Value)}
}

// setPath assigns v at the dotted path parts, creating intermediate
// nodes as needed. A path component that was already recorded as the
// opposite kind (leaf vs. nested object), or a leaf recorded twice,
// fails with DecodeKeyCollision (spec §4.9); a forbidden key anywhere
// on the path fails with DecodePoisonKey (spec §4.10).
func (n *node) setPath(parts []string, v zonvalue.Value) error {
	key := parts[0]
	if isForbiddenKey(key) {
		return zonerrPoisonKey(key)
	}
	if len(parts) == 1 {
		return n.setLeaf(key, v)
	}
	c, err := n.child(key)
	if err != nil {
		return err
	}
	return c.setPath(parts[1:], v)
}

func (n *node) setLeaf(key string, v zonvalue.Value) error {
	if _, isChild := n.children[key]; isChild {
		return zonerrCollision(key)
	}
	if _, exists := n.leaf[key]; exists {
		return zonerrCollision(key)
	}
	n.leaf[key] = v
	n.order = append(n.order, key)
	return nil
}

func (n *node) child(key string) (*node, error) {
	if _, isLeaf := n.leaf[key]; isLeaf {
		return nil, zonerrCollision(key)
	}
	c, ok := n.children[key]
	if !ok {
		c = newNode()
		n.children[key] = c
		n.order = append(n.order, key)
	}
	return c, nil
}

// build freezes the tree into an ordered Obj, recursing into nested
// path-synthesized children.
func (n *node) build() zonvalue.Value {
	fields := make([]zonvalue.Field, 0, len(n.order))
	for _, k := range n.order {
		if v, ok := n.leaf[k]; ok {
			fields = append(fields, zonvalue.Field{Key: k, Value: v})
			continue
		}
		fields = append(fields, zonvalue.Field{Key: k, Value: n.children[k].build()})
	}
	return zonvalue.Obj(fields)
}
