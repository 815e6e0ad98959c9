package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"job-charts/internal/dataset"
	"job-charts/internal/infra/fs"
	logging "job-charts/internal/infra/log"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Extensions tried in order for <dir>/<name><ext>
var fileExtensions = []string{".csv", ".xlsx"}

// File reads exported query results from Dir
type File struct {
	Dir string
}

// Path returns the first existing input file for name.
// The error wraps ErrFileMissing when none exists.
func (f File) Path(name string) (string, error) {
	for _, ext := range fileExtensions {
		path := filepath.Join(f.Dir, name+ext)
		ok, err := fs.Exists(path)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", path, err)
		}
		if ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", filepath.Join(f.Dir, name+fileExtensions[0]), ErrFileMissing)
}

func (f File) Load(ctx context.Context, name string) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := f.Path(name)
	if err != nil {
		return nil, err
	}

	logging.LogInfo("Loading data from file", zap.String("dataset", name), zap.String("path", path))

	var header []string
	var records [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		header, records, err = readXLSX(path)
	default:
		header, records, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	ds, err := dataset.FromText(name, header, records)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ds, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrFileMissing)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("no header row")
	}
	if err != nil {
		return nil, nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff") // spreadsheet exports add a BOM
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return header, records, nil
}

// readXLSX reads the first sheet; the first non-empty row is the header
func readXLSX(path string) ([]string, [][]string, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}

	var header []string
	var records [][]string
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = row
			continue
		}
		records = append(records, row)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("no header row")
	}
	return header, records, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
