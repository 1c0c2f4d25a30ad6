// Package sheet parses the CSV export of a published spreadsheet and maps
// its rows onto comment records.
package sheet

import "strings"

// Parse splits delimited text into rows of fields.
//
// A double quote toggles the quoted state; a doubled quote inside a quoted
// field is kept and unescaped after the field ends. Commas and line breaks
// (LF, CR or CRLF) inside quotes are part of the field. Stray quotes in the
// middle of a field are tolerated. Rows whose fields are all empty are
// dropped, except the first row.
//
// Blank rows are dropped anywhere, not only at the end, so the row count
// that append-only polls compare against counts non-blank rows rather than
// raw sheet rows.
func Parse(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)

	endCell := func() {
		row = append(row, unescape(cell.String()))
		cell.Reset()
	}
	endRow := func() {
		endCell()
		if len(rows) == 0 || !isBlank(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			// "" внутри кавычек: двойное переключение, сохраняем для unescape
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				cell.WriteString(`""`)
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			endCell()
		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		default:
			cell.WriteByte(c)
		}
	}

	// Последняя строка без завершающего переноса
	endCell()
	if !isBlank(row) || len(rows) == 0 && len(text) > 0 {
		rows = append(rows, row)
	}

	return rows
}

func unescape(field string) string {
	return strings.ReplaceAll(field, `""`, `"`)
}

func isBlank(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
