// Package canon implements the ZON canonicalizer (spec §4.1): it maps
// host Go values into the zonvalue.Value model before encoding,
// normalizing numbers, strings, and special float values along the way.
//
// The type-switch structure and the "normalize strings before anything
// else touches them" discipline follow the teacher's
// canonicalizeValue/NormalizeString split; this module generalizes that
// from "canonical JSON bytes" to "zonvalue.Value".
package canon

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/dxieogo/zon/internal/zonerr"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// visited is a path-local stack of container identities (map/slice
// pointer values), per spec §5: "a path-local stack, not global —
// sibling references to the same container are allowed." Only
// revisiting a container already on the current path is a cycle.
type visited struct {
	stack []uintptr
}

func (v *visited) push(id uintptr) bool {
	for _, x := range v.stack {
		if x == id {
			return false
		}
	}
	v.stack = append(v.stack, id)
	return true
}

func (v *visited) pop() {
	v.stack = v.stack[:len(v.stack)-1]
}

// containerID returns a stable identity for m/arr's backing storage, or
// 0 if the value has no addressable identity (e.g. a nil map/slice).
func containerID(v any) uintptr {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.Pointer()
	default:
		return 0
	}
}

// NormalizeString applies NFC Unicode normalization. Every Str value
// passes through this before it reaches the quoter or the encoder,
// matching the teacher's "must be called on EVERY string field value"
// discipline.
func NormalizeString(s string) string {
	return norm.NFC.String(s)
}

// Value canonicalizes an arbitrary host value into the ZON data model.
// See spec §4.1 for the conversion table.
func Value(v any) (zonvalue.Value, error) {
	return canonicalize(v, &visited{})
}

func canonicalize(v any, seen *visited) (zonvalue.Value, error) {
	switch val := v.(type) {
	case nil:
		return zonvalue.Null(), nil
	case bool:
		return zonvalue.Bool(val), nil

	case int:
		return zonvalue.Int(int64(val)), nil
	case int8:
		return zonvalue.Int(int64(val)), nil
	case int16:
		return zonvalue.Int(int64(val)), nil
	case int32:
		return zonvalue.Int(int64(val)), nil
	case int64:
		return zonvalue.Int(val), nil
	case uint:
		return uintToValue(uint64(val))
	case uint8:
		return zonvalue.Int(int64(val)), nil
	case uint16:
		return zonvalue.Int(int64(val)), nil
	case uint32:
		return zonvalue.Int(int64(val)), nil
	case uint64:
		return uintToValue(val)

	case float32:
		return floatToValue(float64(val))
	case float64:
		return floatToValue(val)

	case json.Number:
		return jsonNumberToValue(val)

	case *big.Int:
		if val.IsInt64() {
			return zonvalue.Int(val.Int64()), nil
		}
		return zonvalue.Value{}, zonerr.New(zonerr.EncodeOverflow, "integer exceeds i64 range: "+val.String())

	case string:
		return zonvalue.Str(NormalizeString(val)), nil

	case []byte:
		return zonvalue.Str(base64.StdEncoding.EncodeToString(val)), nil

	case time.Time:
		return zonvalue.Str(val.UTC().Format(time.RFC3339Nano)), nil

	case map[string]any:
		return canonicalizeMap(val, seen)

	case []any:
		return canonicalizeSlice(val, seen)

	default:
		return zonvalue.Value{}, zonerr.New(zonerr.EncodeUnsupportedType, fmt.Sprintf("unsupported type %T", v))
	}
}

func uintToValue(u uint64) (zonvalue.Value, error) {
	if u > math.MaxInt64 {
		return zonvalue.Value{}, zonerr.New(zonerr.EncodeOverflow, "unsigned integer exceeds i64 range")
	}
	return zonvalue.Int(int64(u)), nil
}

// floatToValue canonicalizes a finite float, rewriting NaN/±Inf to Null
// per spec §3.1/§4.1.
func floatToValue(f float64) (zonvalue.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return zonvalue.Null(), nil
	}
	if f == 0 {
		return zonvalue.Float(0), nil // negative zero collapses to 0
	}
	return zonvalue.Float(f), nil
}

// jsonNumberToValue canonicalizes a json.Number (the teacher's preferred
// decode-side numeric type, via json.Decoder.UseNumber()) into Int or
// Float, matching the classification json.Number.Int64/Float64 would
// already enforce, rather than round-tripping through float64 first.
func jsonNumberToValue(n json.Number) (zonvalue.Value, error) {
	if i, err := n.Int64(); err == nil {
		return zonvalue.Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return zonvalue.Value{}, zonerr.Wrap(zonerr.EncodeUnsupportedType, "not a number: "+n.String(), err)
	}
	return floatToValue(f)
}

func canonicalizeMap(m map[string]any, seen *visited) (zonvalue.Value, error) {
	if id := containerID(m); id != 0 {
		if !seen.push(id) {
			return zonvalue.Value{}, zonerr.New(zonerr.EncodeCycle, "cyclic object reference")
		}
		defer seen.pop()
	}
	fields := make([]zonvalue.Field, 0, len(m))
	for k, v := range m {
		if isForbiddenKey(k) {
			return zonvalue.Value{}, zonerr.New(zonerr.DecodePoisonKey, "forbidden key: "+k)
		}
		cv, err := canonicalize(v, seen)
		if err != nil {
			return zonvalue.Value{}, err
		}
		fields = append(fields, zonvalue.Field{Key: NormalizeString(k), Value: cv})
	}
	return zonvalue.Obj(fields), nil
}

func canonicalizeSlice(arr []any, seen *visited) (zonvalue.Value, error) {
	if id := containerID(arr); id != 0 {
		if !seen.push(id) {
			return zonvalue.Value{}, zonerr.New(zonerr.EncodeCycle, "cyclic array reference")
		}
		defer seen.pop()
	}
	items := make([]zonvalue.Value, len(arr))
	for i, v := range arr {
		cv, err := canonicalize(v, seen)
		if err != nil {
			return zonvalue.Value{}, err
		}
		items[i] = cv
	}
	return zonvalue.Arr(items), nil
}

// ForbiddenKeys are rejected on both encode and decode per spec §4.10.
var ForbiddenKeys = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

func isForbiddenKey(k string) bool {
	_, bad := ForbiddenKeys[k]
	return bad
}

