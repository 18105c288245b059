// Package zon implements Zero Overhead Notation (ZON): a line-oriented,
// UTF-8 text serialization of the JSON data model designed for a
// smaller token footprint than JSON (see SPEC_FULL.md).
//
// Two operations form the contract (spec §6.1): Marshal canonicalizes
// a host value and renders it as ZON text; Unmarshal parses ZON text
// back into a host value. Callers who want the intermediate tagged-
// union tree directly — to inspect it, re-encode it with different
// options, or compute its content digest without reparsing JSON — can
// use Value, EncodeValue, and DecodeValue instead.
package zon

import (
	"github.com/dxieogo/zon/internal/canon"
	"github.com/dxieogo/zon/internal/decode"
	"github.com/dxieogo/zon/internal/digest"
	"github.com/dxieogo/zon/internal/encode"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// Value is the ZON data model: a tagged union of Null/Bool/Int/Float/
// Str/Arr/Obj (spec §3.1).
type Value = zonvalue.Value

// EncodeOptions configures Marshal/EncodeValue (spec §6.1).
type EncodeOptions = encode.Options

// DecodeOptions configures Unmarshal/DecodeValue (spec §6.1, §5).
type DecodeOptions = decode.Options

// DefaultEncodeOptions returns the codec's default encode behavior:
// sort_keys=true, dot_flatten=false, ensure_trailing_newline=false.
// dot_flatten defaults to false despite spec §6.1's interface table
// listing true, because the literal golden output of §8.2 scenario S1
// governs (see encode.DefaultOptions and DESIGN.md's Open Question 2).
func DefaultEncodeOptions() EncodeOptions { return encode.DefaultOptions() }

// DefaultDecodeOptions returns the spec §6.1/§5 decode defaults:
// strict=true, and the documented resource limits.
func DefaultDecodeOptions() DecodeOptions { return decode.DefaultOptions() }

// Marshal canonicalizes v (spec §4.1's conversion table) and renders it
// as canonical ZON text. opts defaults to DefaultEncodeOptions when
// omitted.
func Marshal(v any, opts ...EncodeOptions) (string, error) {
	value, err := canon.Value(v)
	if err != nil {
		return "", err
	}
	return EncodeValue(value, opts...)
}

// EncodeValue renders an already-canonicalized Value as ZON text,
// skipping the host-value canonicalization step.
func EncodeValue(v Value, opts ...EncodeOptions) (string, error) {
	o := DefaultEncodeOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	return encode.Encode(v, o)
}

// Unmarshal parses ZON text into a plain Go value: nil, bool, int64,
// float64, string, []any, or map[string]any. opts defaults to
// DefaultDecodeOptions when omitted.
func Unmarshal(text string, opts ...DecodeOptions) (any, error) {
	v, err := DecodeValue(text, opts...)
	if err != nil {
		return nil, err
	}
	return v.ToAny(), nil
}

// DecodeValue parses ZON text into a Value, preserving the object key
// order that ToAny's map[string]any rendering loses.
func DecodeValue(text string, opts ...DecodeOptions) (Value, error) {
	o := DefaultDecodeOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	return decode.Decode(text, o)
}

// Digest returns the hex-encoded SHA-256 of v's canonical ZON
// encoding — a content digest stable under any round trip that
// preserves v's value (spec §4.6 law 3).
func Digest(v any, opts ...EncodeOptions) (string, error) {
	value, err := canon.Value(v)
	if err != nil {
		return "", err
	}
	o := DefaultEncodeOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	return digest.Sum(value, o)
}
