package sheet

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// IsXLSX reports whether the path names an Excel workbook.
func IsXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// ReadXLSX reads the first sheet of an XLSX workbook into a Table. Short
// rows are padded to the widest row so the table stays rectangular, the
// same shape contract ReadDelimited enforces.
func ReadXLSX(path string) (Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "sheet: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("sheet: xlsx has no sheets")
	}

	return sheetTable(f.Sheets[0])
}

// ReadXLSXSheet reads a named sheet of an XLSX workbook into a Table.
func ReadXLSXSheet(path, name string) (Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "sheet: open xlsx")
	}
	sh, ok := f.Sheet[name]
	if !ok {
		return nil, eris.Errorf("sheet: xlsx sheet %q not found", name)
	}

	return sheetTable(sh)
}

func sheetTable(sh *xlsx.Sheet) (Table, error) {
	width := 0
	for _, row := range sh.Rows {
		if len(row.Cells) > width {
			width = len(row.Cells)
		}
	}
	if width == 0 {
		return nil, eris.New("sheet: xlsx sheet is empty")
	}

	rows := make(Table, 0, len(sh.Rows))
	for _, row := range sh.Rows {
		cells := make([]string, width)
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

// Read dispatches on the file extension: .xlsx goes through the workbook
// reader, everything else through the delimited parser.
func Read(path string) (Table, error) {
	if IsXLSX(path) {
		return ReadXLSX(path)
	}
	return ReadDelimited(path)
}
