package encode

import (
	"strconv"
	"strings"

	"github.com/dxieogo/zon/internal/zonvalue"
)

// tableHeader renders the canonical `key:@(N):c1,c2,…` (or, for the
// anonymous root table, `@(N):c1,c2,…`) header line, not including a
// trailing newline.
func tableHeader(key string, rowCount int, columns []string) string {
	header := "@(" + strconv.Itoa(rowCount) + "):" + strings.Join(columns, ",")
	if key == "" {
		return header
	}
	return key + ":" + header
}

// tableRows renders each row of a table value, in column order, one
// line per row, cells comma-joined per §4.2's RFC-4180 cell rule.
func tableRows(rows []zonvalue.Value, columns []string) []string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(columns))
		for j, col := range columns {
			cv, ok := row.Get(col)
			if !ok {
				cv = zonvalue.Null()
			}
			cells[j] = cellToken(cv)
		}
		lines[i] = strings.Join(cells, ",")
	}
	return lines
}
