// Package digest computes a deterministic content digest over a
// value's canonical ZON encoding.
//
// Adapted from the teacher's ContentHash (internal/hash/hasher.go): the
// same "normalize → canonicalize → SHA-256 → hex" pipeline, but
// retargeted from Helios's fixed 6-field MemoryObject shape onto an
// arbitrary zonvalue.Value — canon.Value already performs the
// NFC-normalization step that ContentHash did field-by-field, and
// encode.Encode already performs the deterministic canonicalization
// ContentHash built by hand with an explicit field map.
package digest

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/dxieogo/zon/internal/encode"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// Sum returns the hex-encoded SHA-256 of v's canonical ZON encoding.
// Because Encode is a pure function of v (spec §4.6 law 3), Sum is
// stable across calls and depends only on v's value, not its host
// representation or decode history.
func Sum(v zonvalue.Value, opts encode.Options) (string, error) {
	text, err := encode.Encode(v, opts)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:]), nil
}

// SumText is Sum applied directly to already-encoded ZON text, for
// callers that already hold the canonical form (e.g. a file on disk)
// and want to avoid a redundant decode/re-encode round trip.
func SumText(canonicalText string) string {
	sum := sha256.Sum256([]byte(canonicalText))
	return hex.EncodeToString(sum[:])
}
