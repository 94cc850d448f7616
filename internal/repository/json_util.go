package repository

import (
	"database/sql"
	"strconv"
	"time"

	"sluice-scada/internal/domain"
)

// scanRowMap scans the current row into column -> driver value.
func scanRowMap(rows *sql.Rows) (map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(cols))
	for i, col := range cols {
		out[col] = values[i]
	}
	return out, nil
}

// normalizeColumnValue converts driver values into JSON-friendly ones:
// NUMERIC arrives as []byte and becomes float64, timestamps use the client layout.
func normalizeColumnValue(v any) any {
	switch val := v.(type) {
	case []byte:
		s := string(val)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	case time.Time:
		return val.Format(domain.TimestampLayout)
	default:
		return val
	}
}
