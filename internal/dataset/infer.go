package dataset

import "strings"

// FromText builds a dataset from a header and text records (CSV, spreadsheet rows).
// A column is numeric when every cell is a number or a null marker (blank, NA, NaN...)
// and at least one cell is a number; otherwise it is a string column.
func FromText(name string, header []string, records [][]string) (*Dataset, error) {
	columns := make([]Column, len(header))
	for i, h := range header {
		columns[i] = Column{Name: strings.TrimSpace(h), Kind: inferKind(records, i)}
	}

	rows := make([][]any, len(records))
	for r, rec := range records {
		row := make([]any, len(rec))
		for i, cell := range rec {
			if i < len(columns) && columns[i].Kind == KindNumber && strings.TrimSpace(cell) == "" {
				row[i] = nil
				continue
			}
			row[i] = cell
		}
		rows[r] = row
	}

	return New(name, columns, rows)
}

func inferKind(records [][]string, col int) Kind {
	seen := false
	for _, rec := range records {
		if col >= len(rec) {
			continue
		}
		cell := strings.TrimSpace(rec[col])
		if cell == "" {
			continue
		}
		v, err := ParseNumber(cell)
		if err != nil {
			return KindString
		}
		if v != nil {
			seen = true
		}
	}
	if !seen {
		return KindString
	}
	return KindNumber
}
