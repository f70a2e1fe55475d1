package print

import (
	"encoding/json"
	"io"

	"github.com/bgunnarsson/psql/internal/record"
)

// RenderJSON writes one JSON object per record, one per line, with fields
// in column order.
func RenderJSON(w io.Writer, records []*record.Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}
