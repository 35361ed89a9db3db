package cdc

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// table is a header-indexed view over rows of text cells.
type table struct {
	columns map[string]int
	rows    [][]string
}

// foldHeader keeps letters and digits only, lowercased, so "Country/Region",
// "country_region" and "Country Region" fall together.
func foldHeader(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimPrefix(name, "\ufeff") {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func newTable(records [][]string) (*table, error) {
	if len(records) == 0 {
		return nil, ErrEmptySource
	}

	t := &table{columns: make(map[string]int), rows: records[1:]}
	for i, h := range records[0] {
		key := foldHeader(h)
		if _, ok := t.columns[key]; !ok {
			t.columns[key] = i
		}
	}
	return t, nil
}

// parseCSV reads delimited text. The delimiter is ';' when the header line has
// more of them than commas.
func parseCSV(data []byte) (*table, error) {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if bytes.Count(header, []byte{';'}) > bytes.Count(header, []byte{','}) {
		r.Comma = ';'
	}

	records, err := r.ReadAll()
	if nil != err {
		return nil, err
	}
	return newTable(records)
}

// column returns the index of the first alias present in the header.
func (t *table) column(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := t.columns[a]; ok {
			return i, true
		}
	}
	return -1, false
}

func (t *table) mustColumn(aliases ...string) (int, error) {
	i, ok := t.column(aliases...)
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrMissingColumn, aliases[0])
	}
	return i, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseNumber accepts integers and floats, "12.0" in particular. An empty cell
// is zero.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if nil != err {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

func parseCount(s string) (int64, error) {
	f, err := parseNumber(s)
	if nil != err {
		return 0, err
	}
	return int64(math.Round(f)), nil
}
