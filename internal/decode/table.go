package decode

import (
	"strings"

	"github.com/dxieogo/zon/internal/quote"
	"github.com/dxieogo/zon/internal/scalarparse"
	"github.com/dxieogo/zon/internal/token"
	"github.com/dxieogo/zon/internal/zonerr"
	"github.com/dxieogo/zon/internal/zonvalue"
)

// decodeTable consumes the data rows for a table header declaring n rows
// over cols, starting at d.lines[start] (spec §4.9, §3.2, §4.10).
// headerLine1 is the 1-based line number of the header, for diagnostics.
// It returns the decoded rows and the index of the first line after the
// table.
func (d *decoder) decodeTable(start, headerLine1, n int, cols []string) ([]zonvalue.Value, int, error) {
	if n > d.opts.MaxArrayLen {
		return nil, start, zonerr.At(zonerr.E303ArrayLength, "declared row count exceeds array length limit", headerLine1, 0)
	}
	avail := len(d.lines) - start
	take := n
	if avail < take {
		take = avail
	}
	rows := make([]zonvalue.Value, 0, take)
	for i := 0; i < take; i++ {
		lineIdx := start + i
		cells, err := token.SplitRowCells(d.lines[lineIdx], lineIdx+1)
		if err != nil {
			return nil, lineIdx, err
		}
		obj, err := d.rowToObject(cells, cols, lineIdx+1)
		if err != nil {
			return nil, lineIdx, err
		}
		rows = append(rows, obj)
	}
	if take != n {
		if d.opts.Strict {
			return nil, start + take, zonerr.Withf(zonerr.E001RowCount, headerLine1, 0,
				"declared %d rows, found %d", n, take)
		}
	}
	return rows, start + take, nil
}

// rowToObject builds one row's Obj from its RFC-4180 cells against the
// table's declared columns (spec §3.2, §4.10).
func (d *decoder) rowToObject(cells []token.Cell, cols []string, line1 int) (zonvalue.Value, error) {
	if d.opts.Strict && len(cells) != len(cols) {
		return zonvalue.Value{}, zonerr.Withf(zonerr.E002FieldCount, line1, 0,
			"row has %d fields, header declares %d columns", len(cells), len(cols))
	}

	fields := make([]zonvalue.Field, 0, len(cols))
	positional := cells
	var sparse []token.Cell
	if len(cells) > len(cols) {
		positional = cells[:len(cols)]
		sparse = cells[len(cols):]
	}
	for i, col := range cols {
		var v zonvalue.Value
		if i < len(positional) {
			cv, err := d.cellValue(positional[i], line1)
			if err != nil {
				return zonvalue.Value{}, err
			}
			v = cv
		} else {
			v = zonvalue.Null()
		}
		if err := d.countKey(); err != nil {
			return zonvalue.Value{}, err
		}
		fields = append(fields, zonvalue.Field{Key: col, Value: v})
	}

	// Sparse-table extension (§3.2): extra trailing cells beyond the
	// declared columns are interpreted as k:v fields by name when they
	// have that shape; otherwise (and always in strict mode) they are
	// rejected/truncated rather than guessed at.
	for _, extra := range sparse {
		if extra.Quoted {
			continue
		}
		key, val, ok := token.SplitKeyValue(extra.Text)
		if !ok {
			continue
		}
		v, err := scalarparse.ClassifyBare(val, line1, 0)
		if err != nil {
			return zonvalue.Value{}, err
		}
		if isForbiddenKey(key) {
			return zonvalue.Value{}, zonerr.At(zonerr.DecodePoisonKey, "forbidden key: "+key, line1, 0)
		}
		if err := d.countKey(); err != nil {
			return zonvalue.Value{}, err
		}
		fields = append(fields, zonvalue.Field{Key: key, Value: v})
	}

	return zonvalue.Obj(fields), nil
}

// cellValue types one table cell: a quoted cell is always Str (after
// undoing the RFC-4180 doubling the tokenizer already performed, plus
// QuoteCell's backslash control escapes); a bare cell goes through the
// ordinary scalar classification (spec §4.8).
func (d *decoder) cellValue(c token.Cell, line1 int) (zonvalue.Value, error) {
	if c.Quoted {
		unescaped, ok := quote.UnescapeCell(c.Text)
		if !ok {
			return zonvalue.Value{}, zonerr.At(zonerr.DecodeBadEscape, "invalid escape in cell: "+c.Text, line1, 0)
		}
		return zonvalue.Str(unescaped), nil
	}
	if c.Text == "" {
		return zonvalue.Str(""), nil
	}
	return scalarparse.ClassifyBare(c.Text, line1, 0)
}

// splitCols splits a table header's column list on ','. Column names
// never contain a comma (they are bare identifiers), so a plain split
// is exact; unlike row cells, headers carry no RFC-4180 quoting.
func splitCols(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
