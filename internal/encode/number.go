package encode

import "strconv"

// FormatInt renders an Int canonically: decimal, no leading zeros,
// optional leading '-' (spec §4.3).
func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatFloat renders a Float canonically (spec §4.3): the shortest
// decimal that round-trips to the same binary64 value, never in
// scientific notation, with trailing fractional zeros stripped and a
// mathematically-integral value emitted the same way FormatInt would
// (no trailing ".0"). f is assumed finite — canon.Value already rewrote
// NaN/Inf to Null before a Float ever reaches here.
func FormatFloat(f float64) string {
	if f == float64(int64(f)) && isSafeIntegralFloat(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	// strconv's 'f' format never emits scientific notation; -1 precision
	// picks the shortest string that round-trips exactly.
	s := strconv.FormatFloat(f, 'f', -1, 64)
	return s
}

// isSafeIntegralFloat guards against magnitudes where float64 can no
// longer represent every integer exactly (>2^53): at that point
// int64(f) truncation is no longer a lossless round-trip check, so the
// value is rendered through the decimal expansion instead.
func isSafeIntegralFloat(f float64) bool {
	const maxExact = 1 << 53
	return f > -maxExact && f < maxExact
}
