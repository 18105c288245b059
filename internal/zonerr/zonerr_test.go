package zonerr

import (
	"errors"
	"strings"
	"testing"
)

func TestIsMatchesCode(t *testing.T) {
	err := New(DecodeBadNumber, "bad number")
	if !Is(err, DecodeBadNumber) {
		t.Error("expected Is to match the constructed code")
	}
	if Is(err, DecodeBadCell) {
		t.Error("expected Is to reject a different code")
	}
}

func TestIsFalseForPlainError(t *testing.T) {
	if Is(errors.New("plain"), DecodeBadNumber) {
		t.Error("expected Is to return false for a non-*Error")
	}
}

func TestWrapPreservesUnwrap(t *testing.T) {
	inner := errors.New("root cause")
	wrapped := Wrap(EncodeUnsupportedType, "wrapping", inner)
	if !errors.Is(wrapped, inner) {
		t.Error("expected errors.Is to see through Wrap via Unwrap")
	}
}

func TestErrorStringIncludesPosition(t *testing.T) {
	err := At(DecodeBadCell, "malformed cell", 4, 9)
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected a non-empty error string")
	}
	if !strings.Contains(msg, "line 4, col 9") {
		t.Errorf("expected the error string to include the position, got %q", msg)
	}
	if !errors.Is(err, err) {
		t.Error("expected an error to be errors.Is-equal to itself")
	}
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := New(DecodeBadHeader, "bad header")
	withCtx := base.WithContext("line text")
	if base.Context != "" {
		t.Error("expected WithContext to not mutate the receiver")
	}
	if withCtx.Context != "line text" {
		t.Errorf("expected context to be set, got %q", withCtx.Context)
	}
}
