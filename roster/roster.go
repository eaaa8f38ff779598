// Package roster loads the tabular personnel roster. Rows are kept verbatim
// (all original columns survive into the report); only the identifier
// column is interpreted here.
package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"access-review/config"
	"access-review/model"
)

// Roster is one loaded roster table.
type Roster struct {
	Path    string
	Header  []string
	Rows    [][]string
	nameCol int
}

// Load reads a roster from a .csv or .xlsx file and validates that the
// required identifier column is present. A missing required column is a
// fatal input-validation error.
func Load(path string, cols config.Columns) (*Roster, error) {
	var header []string
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		header, rows, err = loadCSV(path)
	case ".xlsx", ".xlsm":
		header, rows, err = loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported roster format: %s", path)
	}
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("roster %s is empty", path)
	}

	nameCol := indexOf(header, cols.NameAndID)
	if nameCol < 0 {
		return nil, fmt.Errorf("roster %s: missing required column %q", path, cols.NameAndID)
	}

	// Pad ragged rows so every cell access is in range.
	for i, row := range rows {
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows[i] = row
	}

	return &Roster{Path: path, Header: header, Rows: rows, nameCol: nameCol}, nil
}

// Identity parses the identifier field of row i.
func (r *Roster) Identity(i int) model.Identity {
	return model.ParseIdentity(r.Rows[i][r.nameCol])
}

func loadCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open roster: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read roster csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return trimAll(records[0]), records[1:], nil
}

func loadXLSX(path string) ([]string, [][]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open roster workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("roster workbook has no sheets")
	}
	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read roster sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return trimAll(records[0]), records[1:], nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
