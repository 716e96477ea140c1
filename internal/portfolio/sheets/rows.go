package sheets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one spreadsheet row keyed by normalized header name.
type Row map[string]string

// Get returns the first non-empty value among the given column names.
func (r Row) Get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// ParseRows decodes CSV text into rows. Rows shorter than the header are
// padded, longer rows are truncated, and rows with only empty cells are
// skipped. A sheet with a header and no data yields ErrEmptySheet.
func ParseRows(text string) ([]Row, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = NormalizeHeader(h)
	}

	var rows []Row
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		if blank(rec) {
			continue
		}
		row := make(Row, len(keys))
		for i, k := range keys {
			if k == "" {
				continue
			}
			if i < len(rec) {
				row[k] = strings.TrimSpace(rec[i])
			} else {
				row[k] = ""
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}

// NormalizeHeader lower-cases a header cell and joins words with underscores,
// so "Video URL" and "video_url" address the same column.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "-", " ")
	return strings.Join(strings.Fields(h), "_")
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
