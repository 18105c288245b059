// Package verify implements test-vector verification for the ZON
// codec: it runs each vector's input through canonicalize → encode →
// decode → digest and compares the results against the vector's
// expectations.
//
// Adapted from the teacher's vector verifier (its VerifyVectors loop
// loading a JSON vectors file and comparing one computed hash per
// vector): retargeted from "compute one content hash and compare" to
// "compute a canonical encoding, a round-trip decode, and a digest,
// and compare all three" — the extra checks exist because a codec, unlike
// a hash function, has more than one property worth pinning down per
// vector.
package verify

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dxieogo/zon/internal/canon"
	"github.com/dxieogo/zon/internal/decode"
	"github.com/dxieogo/zon/internal/digest"
	"github.com/dxieogo/zon/internal/encode"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// TestVector represents a single test vector from vectors.json.
type TestVector struct {
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Input          interface{} `json:"input"`
	ExpectedZON    string      `json:"expected_zon"`
	ExpectedDigest string      `json:"expected_digest,omitempty"`
	Strict         bool        `json:"strict,omitempty"`
}

// VectorsFile is the top-level structure of vectors.json.
type VectorsFile struct {
	Vectors []TestVector `json:"vectors"`
}

// VerifyResult holds the result of verifying a single vector.
type VerifyResult struct {
	Name            string
	ExpectedZON     string
	GotZON          string
	ZONMatch        bool
	ExpectedDigest  string
	GotDigest       string
	DigestMatch     bool
	RoundTripMatch  bool
	Pass            bool
}

// VerifyVectors loads a vectors JSON file and checks each vector's
// canonical encoding (and, when present, its content digest and
// round-trip fidelity). Returns an error if any vector mismatches.
func VerifyVectors(path string) ([]VerifyResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vectors file: %w", err)
	}

	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	var vf VectorsFile
	if err := dec.Decode(&vf); err != nil {
		return nil, fmt.Errorf("failed to parse vectors file: %w", err)
	}

	results := make([]VerifyResult, len(vf.Vectors))
	var failures int

	for i, vec := range vf.Vectors {
		res, err := verifyOne(vec)
		if err != nil {
			return nil, fmt.Errorf("vector %q: %w", vec.Name, err)
		}
		results[i] = res
		if !res.Pass {
			failures++
		}
	}

	if failures > 0 {
		return results, fmt.Errorf("%d of %d vectors failed verification", failures, len(vf.Vectors))
	}
	return results, nil
}

func verifyOne(vec TestVector) (VerifyResult, error) {
	value, err := canon.Value(vec.Input)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("canonicalize failed: %w", err)
	}

	got, err := encode.Encode(value, encode.DefaultOptions())
	if err != nil {
		return VerifyResult{}, fmt.Errorf("encode failed: %w", err)
	}

	res := VerifyResult{
		Name:        vec.Name,
		ExpectedZON: vec.ExpectedZON,
		GotZON:      got,
		ZONMatch:    got == vec.ExpectedZON,
	}

	if vec.ExpectedDigest != "" {
		gotDigest := digest.SumText(got)
		res.GotDigest = gotDigest
		res.ExpectedDigest = vec.ExpectedDigest
		res.DigestMatch = gotDigest == vec.ExpectedDigest
	} else {
		res.DigestMatch = true
	}

	opts := decode.DefaultOptions()
	opts.Strict = vec.Strict
	roundTripped, err := decode.Decode(got, opts)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("round-trip decode failed: %w", err)
	}
	res.RoundTripMatch = zonvalue.Equal(value, roundTripped)

	res.Pass = res.ZONMatch && res.DigestMatch && res.RoundTripMatch
	return res, nil
}
