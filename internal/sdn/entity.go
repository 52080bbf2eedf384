package sdn

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// Directory maps SDN entity ids to display names, built from the flat SDN
// table. It is an enrichment only: a run proceeds with an empty directory when
// the flat source is unavailable.
type Directory map[string]string

// Lookup returns the display name for an entity id.
func (d Directory) Lookup(id string) (string, bool) {
	name, ok := d[id]
	return name, ok
}

// ParseEntityList reads the flat SDN table. The first column is the entity id
// and the second the display name; extra columns are ignored and short or
// blank rows skipped. Malformed rows are dropped, but a read failure on the
// underlying source is returned so the caller can surface the degradation.
func ParseEntityList(r io.Reader) (Directory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	dir := Directory{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// a single bad row is not worth losing the rest of the table
				continue
			}
			return dir, err
		}
		if len(row) < 2 {
			continue
		}

		id := strings.TrimSpace(row[0])
		name := strings.TrimSpace(row[1])
		if id == "" || name == "" {
			continue
		}
		dir[id] = name
	}

	return dir, nil
}
