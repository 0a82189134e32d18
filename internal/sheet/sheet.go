// Package sheet reads raw tabular input files: delimited text with
// auto-detected separators, and XLSX workbooks.
package sheet

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is a raw parsed table: every cell is an untyped string, rows in
// file order. Row 0 is the rate row, row 1 the header row, rows 2+ data.
type Table [][]string

// DetectDelimiter inspects the first line of a delimited file and picks
// the separator. Comma wins over semicolon, semicolon over tab; a line
// with none of the three falls back to comma.
func DetectDelimiter(firstLine string) rune {
	switch {
	case strings.ContainsRune(firstLine, ','):
		return ','
	case strings.ContainsRune(firstLine, ';'):
		return ';'
	case strings.ContainsRune(firstLine, '\t'):
		return '\t'
	default:
		return ','
	}
}

// ReadDelimited parses a delimited text file into a Table. The delimiter
// is detected from the first line. Every row must have the same number of
// columns; a ragged file is a parse error.
func ReadDelimited(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "sheet: open file")
	}
	defer f.Close()

	return parseDelimited(f)
}

func parseDelimited(r io.Reader) (Table, error) {
	br := bufio.NewReader(r)
	firstLine, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, eris.Wrap(err, "sheet: read first line")
	}
	line, _, _ := strings.Cut(string(firstLine), "\n")

	reader := csv.NewReader(br)
	reader.Comma = DetectDelimiter(line)
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "sheet: parse rows")
	}
	if len(rows) == 0 {
		return nil, eris.New("sheet: file is empty")
	}
	if len(rows[0]) == 0 {
		return nil, eris.New("sheet: file has zero columns")
	}

	return rows, nil
}
