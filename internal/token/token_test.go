package token

import (
	"testing"

	"github.com/dxieogo/zon/internal/zonerr"
)

func TestNormalizeNewlines(t *testing.T) {
	cases := map[string]string{
		"a\r\nb":   "a\nb",
		"a\rb":     "a\nb",
		"a\nb":     "a\nb",
		"a\r\n\rb": "a\n\nb",
	}
	for in, want := range cases {
		if got := NormalizeNewlines(in); got != want {
			t.Errorf("NormalizeNewlines(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitLinesEmptyInput(t *testing.T) {
	if lines := SplitLines(""); lines != nil {
		t.Errorf("expected nil for empty input, got %v", lines)
	}
}

func TestSplitLinesBasic(t *testing.T) {
	lines := SplitLines("a\nb\nc")
	want := []string{"a", "b", "c"}
	if len(lines) != len(want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestSplitKeyValue(t *testing.T) {
	key, rest, ok := SplitKeyValue("name:demo")
	if !ok || key != "name" || rest != "demo" {
		t.Errorf("got key=%q rest=%q ok=%v", key, rest, ok)
	}

	key, rest, ok = SplitKeyValue("rows:@(2):id,name")
	if !ok || key != "rows" || rest != "@(2):id,name" {
		t.Errorf("expected first-colon split, got key=%q rest=%q", key, rest)
	}

	if _, _, ok := SplitKeyValue("no-colon-here"); ok {
		t.Error("expected ok=false for a line with no colon")
	}
}

func TestScanQuotedBasic(t *testing.T) {
	content, end, err := ScanQuoted(`"hello"rest`, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "hello" || end != 7 {
		t.Errorf("got content=%q end=%d", content, end)
	}
}

func TestScanQuotedHandlesEscapedBackslashBeforeClosingQuote(t *testing.T) {
	content, _, err := ScanQuoted(`"a\\"`, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != `a\\` {
		t.Errorf("got %q", content)
	}
}

func TestScanQuotedUnterminated(t *testing.T) {
	_, _, err := ScanQuoted(`"no closing quote`, 1)
	if err == nil || !zonerr.Is(err, zonerr.DecodeUnterminatedString) {
		t.Errorf("expected DecodeUnterminatedString, got %v", err)
	}
}

func TestScanQuotedDanglingBackslash(t *testing.T) {
	_, _, err := ScanQuoted(`"abc\`, 1)
	if err == nil || !zonerr.Is(err, zonerr.DecodeBadEscape) {
		t.Errorf("expected DecodeBadEscape, got %v", err)
	}
}

func TestScanQuotedRejectsMissingOpeningQuote(t *testing.T) {
	_, _, err := ScanQuoted("no quote", 1)
	if err == nil {
		t.Fatal("expected an error for a non-quoted start")
	}
}

func TestSplitRowCellsPlainFields(t *testing.T) {
	cells, err := SplitRowCells("1,a,T", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	for _, c := range cells {
		if c.Quoted {
			t.Errorf("expected all cells unquoted, got %+v", c)
		}
	}
	if cells[1].Text != "a" {
		t.Errorf("got %q", cells[1].Text)
	}
}

func TestSplitRowCellsQuotedFieldWithEmbeddedComma(t *testing.T) {
	cells, err := SplitRowCells(`1,"a,b",T`, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d: %+v", len(cells), cells)
	}
	if cells[1].Text != "a,b" || !cells[1].Quoted {
		t.Errorf("got %+v", cells[1])
	}
}

func TestSplitRowCellsQuotedFieldWithDoubledQuote(t *testing.T) {
	cells, err := SplitRowCells(`"He said ""hi"""`, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `He said "hi"`
	if len(cells) != 1 || cells[0].Text != want || !cells[0].Quoted {
		t.Errorf("got %+v, want text %q", cells, want)
	}
}

func TestSplitRowCellsRejectsCharAfterClosingQuote(t *testing.T) {
	_, err := SplitRowCells(`"a"b,c`, 2)
	if err == nil || !zonerr.Is(err, zonerr.DecodeBadCell) {
		t.Errorf("expected DecodeBadCell, got %v", err)
	}
}

func TestSplitRowCellsRejectsUnterminatedQuote(t *testing.T) {
	_, err := SplitRowCells(`"unterminated`, 2)
	if err == nil || !zonerr.Is(err, zonerr.DecodeBadCell) {
		t.Errorf("expected DecodeBadCell, got %v", err)
	}
}

func TestSplitRowStripsQuotedFlag(t *testing.T) {
	fields, err := SplitRow(`1,"a,b"`, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fields) != 2 || fields[1] != "a,b" {
		t.Errorf("got %v", fields)
	}
}
