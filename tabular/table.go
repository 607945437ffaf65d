package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MissingColumnError is returned when a CSV lacks a required column.
type MissingColumnError struct {
	Column string
	Header []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q (have %s)", e.Column, strings.Join(e.Header, ","))
}

// Table is a CSV file held in memory with its header indexed by name.
type Table struct {
	Header []string
	Rows   [][]string
	idx    map[string]int
}

// Read parses a headed CSV and checks that every required column exists
// before any row is read.
func Read(r io.Reader, required ...string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		if len(required) > 0 {
			return nil, &MissingColumnError{Column: required[0]}
		}
		return &Table{idx: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	t := &Table{Header: header, idx: make(map[string]int, len(header))}
	for i, h := range header {
		t.idx[strings.TrimSpace(h)] = i
	}
	for _, c := range required {
		if _, ok := t.idx[c]; !ok {
			return nil, &MissingColumnError{Column: c, Header: header}
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv rows: %w", err)
	}
	t.Rows = rows
	return t, nil
}

func ReadFile(path string, required ...string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f, required...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

func (t *Table) Has(col string) bool {
	_, ok := t.idx[col]
	return ok
}

// Get returns the named field of row, or "" when the column is absent or
// the row is short.
func (t *Table) Get(row []string, col string) string {
	i, ok := t.idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *Table) Int(row []string, col string) (int, error) {
	v := strings.TrimSpace(t.Get(row, col))
	n, err := strconv.Atoi(v)
	if err != nil {
		// spreadsheet exports may write counts as "3.0"
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		n = int(f)
	}
	return n, nil
}

func (t *Table) Float(row []string, col string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(t.Get(row, col)), 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}
	return f, nil
}

func Write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func WriteFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, header, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
