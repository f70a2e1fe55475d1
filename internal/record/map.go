package record

import "github.com/bgunnarsson/psql/internal/db"

// Map converts rows into records, one per row and in the same order. Fields
// follow column order. When two columns share a name the later value wins
// and the field keeps the position of the first.
func Map(columns []db.Column, rows []db.Row) []*Record {
	out := make([]*Record, 0, len(rows))
	for _, row := range rows {
		rec := New(len(columns))
		for i, col := range columns {
			var cell any
			if i < len(row) {
				cell = row[i]
			}
			rec.Set(col.Name, Coerce(col.Type, cell))
		}
		out = append(out, rec)
	}
	return out
}

// Names returns the field names a record built from columns will have, in
// order, with duplicates collapsed.
func Names(columns []db.Column) []string {
	seen := make(map[string]struct{}, len(columns))
	names := make([]string, 0, len(columns))
	for _, col := range columns {
		if _, ok := seen[col.Name]; ok {
			continue
		}
		seen[col.Name] = struct{}{}
		names = append(names, col.Name)
	}
	return names
}
