package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard/finboard/internal/apperr"
	enc "github.com/finboard/finboard/internal/encoding"
	"github.com/finboard/finboard/internal/transaction"
)

// Parsed is the outcome of reading one statement file. Rows carry no
// category when the file has none.
type Parsed struct {
	Format  Format
	Charset string
	Rows    []transaction.CreateParams
}

// Parse decodes r to UTF-8 and reads it with the profile for format, or with
// the first profile whose header row is found when format is empty.
func Parse(r io.Reader, format Format) (*Parsed, error) {
	candidates := profiles

	if format != "" {
		p, ok := lookupProfile(format)
		if !ok {
			return nil, apperr.Invalid("format", fmt.Sprintf("unknown format %q", format))
		}

		candidates = []Profile{p}
	}

	utf8r, charset, err := enc.ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	for _, p := range candidates {
		rows, err := readRecords(content, p.Comma)
		if err != nil {
			if len(candidates) == 1 {
				return nil, apperr.Invalid("file", fmt.Sprintf("malformed csv: %v", err))
			}

			continue
		}

		cols, headerIdx, ok := findHeader(p, rows)
		if !ok {
			continue
		}

		params, err := parseRows(p, cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		return &Parsed{Format: p.Format, Charset: charset, Rows: params}, nil
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return &Parsed{Format: format, Charset: charset}, nil
	}

	return nil, apperr.Invalid("file", "no known statement header found")
}

func readRecords(content []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func (c colIndex) get(name string) int {
	if name == "" {
		return -1
	}

	if i, ok := c[name]; ok {
		return i
	}

	return -1
}

// findHeader scans rows for one carrying every required column of p. Bank
// exports put account metadata above the header, so it need not be first.
func findHeader(p Profile, rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if _, dup := cols[name]; name != "" && !dup {
				cols[name] = i
			}
		}

		matched := true

		for _, name := range p.requiredCols() {
			if _, ok := cols[name]; !ok {
				matched = false
				break
			}
		}

		if matched {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

// parseRows turns data rows into create params. Rows whose date cell does not
// parse (blank lines, footers, balance lines) and zero amounts are skipped,
// unless the profile has StrictDates and the row carries a description.
func parseRows(p Profile, cols colIndex, rows [][]string, firstRowNum int) ([]transaction.CreateParams, error) {
	var (
		dateIdx     = cols.get(p.DateCol)
		descIdx     = cols.get(p.DescCol)
		categoryIdx = cols.get(p.CategoryCol)
		typeIdx     = cols.get(p.TypeCol)
	)

	var params []transaction.CreateParams

	for i, row := range rows {
		rowNum := firstRowNum + i + 1

		desc := cellValue(row, descIdx)

		dateCell := cellValue(row, dateIdx)

		date, ok := parseDate(dateCell, p.DateLayouts)
		if !ok {
			if p.StrictDates && desc != "" {
				return nil, apperr.Invalid("file", fmt.Sprintf("row %d: invalid date %q", rowNum, dateCell))
			}

			continue
		}

		if desc == "" {
			return nil, apperr.Invalid("file", fmt.Sprintf("row %d: missing description", rowNum))
		}

		amount, txType, err := rowAmount(p, cols, row)
		if err != nil {
			return nil, apperr.Invalid("file", fmt.Sprintf("row %d: %v", rowNum, err))
		}

		if amount.IsZero() {
			continue
		}

		if s := strings.ToLower(cellValue(row, typeIdx)); s != "" {
			declared := transaction.Type(s)
			if !declared.Valid() {
				return nil, apperr.Invalid("file", fmt.Sprintf("row %d: type must be income or expense", rowNum))
			}

			txType = declared
		}

		params = append(params, transaction.CreateParams{
			Description: desc,
			Amount:      new(amount.Abs().InexactFloat64()),
			Date:        new(date),
			Category:    cellValue(row, categoryIdx),
			Type:        txType,
		})
	}

	return params, nil
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// rowAmount returns the amount of a row and the type its sign or column
// implies.
func rowAmount(p Profile, cols colIndex, row []string) (decimal.Decimal, transaction.Type, error) {
	if p.AmountCol != "" {
		d, err := parseCell(p, cellValue(row, cols.get(p.AmountCol)))
		if err != nil {
			return decimal.Zero, "", err
		}

		if d.IsNegative() {
			return d, transaction.TypeExpense, nil
		}

		return d, transaction.TypeIncome, nil
	}

	debit, err := parseCell(p, cellValue(row, cols.get(p.DebitCol)))
	if err != nil {
		return decimal.Zero, "", err
	}

	if !debit.IsZero() {
		return debit, transaction.TypeExpense, nil
	}

	credit, err := parseCell(p, cellValue(row, cols.get(p.CreditCol)))
	if err != nil {
		return decimal.Zero, "", err
	}

	return credit, transaction.TypeIncome, nil
}

// parseCell parses an amount cell; blank cells count as zero.
func parseCell(p Profile, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	d, err := p.ParseAmount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	return d, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
