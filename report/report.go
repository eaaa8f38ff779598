// Package report assembles and writes the two output row sets: resolved
// rows and unresolved rows that need a manual decision.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"access-review/config"
	"access-review/model"
	"access-review/roster"
)

// Sheet names for workbook output.
const (
	SheetResolved   = "Resolved"
	SheetUnresolved = "Unresolved"
)

// Build applies each resolution to its roster row and splits the rows into
// the resolved and unresolved sets. The returned header is the roster
// header extended with the scenario bookkeeping columns (when absent) and
// the match-source and match-evidence columns.
//
// Write-back rules: a pre-existing scenario value is never overwritten;
// when it was empty the computed label is written and the action-correct
// column is set affirmative. The receipt-confirmed column is set
// affirmative whenever the computed scenario is Add or Remove, even for
// rows with a pre-filled scenario.
func Build(ros *roster.Roster, results []model.Resolution, rules config.Rules) (header []string, resolved, unresolved [][]string, err error) {
	if len(results) != len(ros.Rows) {
		return nil, nil, nil, fmt.Errorf("report: %d resolutions for %d roster rows", len(results), len(ros.Rows))
	}

	cols := rules.Columns
	header = append([]string(nil), ros.Header...)
	for _, name := range []string{cols.Scenario, cols.ActionCorrect, cols.ReceiptConfirmed, cols.MatchSource, cols.MatchEvidence} {
		if indexOf(header, name) < 0 {
			header = append(header, name)
		}
	}

	scenarioCol := indexOf(header, cols.Scenario)
	actionCol := indexOf(header, cols.ActionCorrect)
	receiptCol := indexOf(header, cols.ReceiptConfirmed)
	sourceCol := indexOf(header, cols.MatchSource)
	evidenceCol := indexOf(header, cols.MatchEvidence)

	for i, row := range ros.Rows {
		cells := make([]string, len(header))
		copy(cells, row)

		res := results[i]
		cells[sourceCol] = string(res.Location)
		cells[evidenceCol] = res.Evidence

		if !res.Matched {
			unresolved = append(unresolved, cells)
			continue
		}

		if strings.TrimSpace(cells[scenarioCol]) == "" {
			cells[scenarioCol] = rules.ScenarioLabel(res.Scenario)
			cells[actionCol] = rules.Affirmative
		}
		if res.Scenario == model.ScenarioAdd || res.Scenario == model.ScenarioRemove {
			cells[receiptCol] = rules.Affirmative
		}
		resolved = append(resolved, cells)
	}

	return header, resolved, unresolved, nil
}

// Write stores the report at path. An .xlsx path produces one workbook with
// a Resolved and an Unresolved sheet; a .csv path produces two files with
// _resolved and _unresolved suffixes.
func Write(path string, header []string, resolved, unresolved [][]string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeWorkbook(path, header, resolved, unresolved)
	case ".csv":
		base := strings.TrimSuffix(path, filepath.Ext(path))
		if err := writeCSV(base+"_resolved.csv", header, resolved); err != nil {
			return err
		}
		return writeCSV(base+"_unresolved.csv", header, unresolved)
	default:
		return fmt.Errorf("unsupported report format: %s", path)
	}
}

func writeWorkbook(path string, header []string, resolved, unresolved [][]string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName(wb.GetSheetName(0), SheetResolved); err != nil {
		return fmt.Errorf("name resolved sheet: %w", err)
	}
	if _, err := wb.NewSheet(SheetUnresolved); err != nil {
		return fmt.Errorf("create unresolved sheet: %w", err)
	}

	if err := writeSheet(wb, SheetResolved, header, resolved); err != nil {
		return err
	}
	if err := writeSheet(wb, SheetUnresolved, header, unresolved); err != nil {
		return err
	}

	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(wb *excelize.File, sheet string, header []string, rows [][]string) error {
	if err := setRow(wb, sheet, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(wb, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(wb *excelize.File, sheet string, rowNum int, cells []string) error {
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}
