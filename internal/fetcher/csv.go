package fetcher

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVTable is a fully-read CSV file with its header split off. Fixture
// lists and identity files are small enough to read whole.
type CSVTable struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// ReadCSVFile reads path as a headered CSV table.
func ReadCSVFile(path string) (*CSVTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: open %s", path)
	}
	defer f.Close() //nolint:errcheck
	return ReadCSV(f)
}

// ReadCSV reads a headered CSV table from r. Field counts may vary per
// row; fields are whitespace-trimmed.
func ReadCSV(r io.Reader) (*CSVTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "csv: read")
	}
	if len(records) == 0 {
		return nil, eris.New("csv: empty file")
	}
	for _, rec := range records {
		for i, field := range rec {
			rec[i] = strings.TrimSpace(field)
		}
	}

	t := &CSVTable{Header: records[0], Rows: records[1:]}
	t.index = make(map[string]int, len(t.Header))
	for i, col := range t.Header {
		t.index[col] = i
	}
	return t, nil
}

// Field returns the named column of one row, or "" when the column is
// missing or the row is short.
func (t *CSVTable) Field(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// FirstField returns the first non-empty value among cols for one row.
func (t *CSVTable) FirstField(row []string, cols ...string) string {
	for _, col := range cols {
		if v := t.Field(row, col); v != "" {
			return v
		}
	}
	return ""
}
