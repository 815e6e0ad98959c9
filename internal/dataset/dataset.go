package dataset

// Package dataset holds the in-memory table every data source produces
// and every chart consumes. A Dataset is built once and never mutated.

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrMissingField is returned by Require when a chart asks for a column the dataset lacks
	ErrMissingField = errors.New("missing field")
	// ErrNotNumeric is returned by RequireNumber for a column that does not hold numbers
	ErrNotNumeric = errors.New("column is not numeric")
)

// naTokens are read as null in numeric cells, the same set pandas.read_csv treats as missing
var naTokens = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// grouped matches numbers formatted with thousands separators, as spreadsheets display them
var grouped = regexp.MustCompile(`^[-+]?\d{1,3}(,\d{3})+(\.\d+)?$`)

type Kind int

const (
	KindString Kind = iota
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	default:
		return "string"
	}
}

type Column struct {
	Name string
	Kind Kind
}

// Dataset - named table of rows.
// String cells hold string, number cells hold float64, null cells hold nil.
type Dataset struct {
	Name    string
	columns []Column
	index   map[string]int
	rows    [][]any
}

// New builds a dataset and normalizes every cell to the column kind.
// Rows shorter than the header are padded with nulls, longer rows are rejected.
func New(name string, columns []Column, rows [][]any) (*Dataset, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Name == "" {
			return nil, fmt.Errorf("dataset %s: column %d has no name", name, i)
		}
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("dataset %s: duplicate column %q", name, c.Name)
		}
		index[c.Name] = i
	}

	normalized := make([][]any, 0, len(rows))
	for r, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("dataset %s: row %d has %d cells, header has %d", name, r, len(row), len(columns))
		}
		out := make([]any, len(columns))
		for i, c := range columns {
			if i >= len(row) {
				continue
			}
			v, err := normalize(row[i], c.Kind)
			if err != nil {
				return nil, fmt.Errorf("dataset %s: row %d column %s: %w", name, r, c.Name, err)
			}
			out[i] = v
		}
		normalized = append(normalized, out)
	}

	cols := make([]Column, len(columns))
	copy(cols, columns)

	return &Dataset{Name: name, columns: cols, index: index, rows: normalized}, nil
}

// MustNew is New for fixed tables known to be well formed
func MustNew(name string, columns []Column, rows [][]any) *Dataset {
	ds, err := New(name, columns, rows)
	if err != nil {
		panic(err)
	}
	return ds
}

func normalize(v any, kind Kind) (any, error) {
	if v == nil {
		return nil, nil
	}
	if kind == KindString {
		switch t := v.(type) {
		case string:
			return t, nil
		case []byte:
			return string(t), nil
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64), nil
		default:
			return fmt.Sprint(t), nil
		}
	}

	switch t := v.(type) {
	case float64:
		return finite(t), nil
	case float32:
		return finite(float64(t)), nil
	case int:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		return ParseNumber(t)
	case []byte:
		return ParseNumber(string(t))
	default:
		return nil, fmt.Errorf("unsupported numeric value %v (%T)", v, v)
	}
}

// ParseNumber parses a numeric cell. Blank text, NA markers and
// non-finite values (NaN, Inf) are null. Thousands separators are accepted.
func ParseNumber(s string) (any, error) {
	s = strings.TrimSpace(s)
	if s == "" || naTokens[s] {
		return nil, nil
	}
	if grouped.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	return finite(f), nil
}

// finite maps NaN and ±Inf to null
func finite(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Empty reports whether the dataset is nil or has no rows
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column descriptor by name
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Require checks that every named field exists.
// Empty names are ignored so optional chart fields can be passed through.
func (d *Dataset) Require(fields ...string) error {
	for _, f := range fields {
		if f == "" {
			continue
		}
		if !d.Has(f) {
			return fmt.Errorf("dataset %s: %w %q (have %s)", d.Name, ErrMissingField, f, strings.Join(d.ColumnNames(), ", "))
		}
	}
	return nil
}

// RequireNumber checks that every named field exists and holds numbers
func (d *Dataset) RequireNumber(fields ...string) error {
	if err := d.Require(fields...); err != nil {
		return err
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if c, _ := d.Column(f); c.Kind != KindNumber {
			return fmt.Errorf("dataset %s: %w: %q is %s", d.Name, ErrNotNumeric, f, c.Kind)
		}
	}
	return nil
}

// String returns the cell as text; nulls are "".
func (d *Dataset) String(row int, col string) string {
	v := d.cell(row, col)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Float returns the numeric cell value. ok is false for nulls and text cells.
func (d *Dataset) Float(row int, col string) (float64, bool) {
	f, ok := d.cell(row, col).(float64)
	return f, ok
}

func (d *Dataset) cell(row int, col string) any {
	i, ok := d.index[col]
	if !ok || row < 0 || row >= len(d.rows) {
		return nil
	}
	return d.rows[row][i]
}
