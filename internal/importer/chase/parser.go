package chase

import (
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"time"

	enc "github.com/rangehq/rangefin/internal/encoding"
	"github.com/rangehq/rangefin/internal/transaction"
)

const (
	colTransactionDate = "Transaction Date"
	colPostDate        = "Post Date"
	colDescription     = "Description"
	colCategory        = "Category"
	colType            = "Type"
	colAmount          = "Amount"
	colMemo            = "Memo"
)

// requiredCols are the header columns a Chase credit-card export must carry.
var requiredCols = []string{
	colTransactionDate,
	colPostDate,
	colDescription,
	colCategory,
	colType,
	colAmount,
	colMemo,
}

// Parser reads Chase credit-card CSV exports and produces transaction
// params. The header row is mandatory; rows that fail to parse abort the
// whole import with their 1-based row number so nothing partial is stored.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv format: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("csv content is empty")
	}

	cols, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	txs := make([]transaction.CreateParams, 0, len(rows)-1)

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		if isBlank(row) {
			continue
		}

		params, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		txs = append(txs, params)
	}

	if len(txs) == 0 {
		return nil, fmt.Errorf("csv contains no transaction data")
	}

	return txs, nil
}

// headerIndex maps column names to their position, failing with the sorted
// list of missing required columns.
func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))

	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var missing []string

	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("csv is missing required columns: %s", strings.Join(missing, ", "))
	}

	return cols, nil
}

func parseRow(cols map[string]int, row []string) (transaction.CreateParams, error) {
	date, err := parseDate(cell(row, cols[colTransactionDate]))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("transaction date: %w", err)
	}

	postDate, err := parseDate(cell(row, cols[colPostDate]))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("post date: %w", err)
	}

	description := html.UnescapeString(cell(row, cols[colDescription]))
	if description == "" {
		return transaction.CreateParams{}, fmt.Errorf("missing description")
	}

	amount, err := parseAmount(cell(row, cols[colAmount]))
	if err != nil {
		return transaction.CreateParams{}, err
	}

	// Chase reports purchases as negative amounts and payments/returns as
	// positive. The sign drives the debit/credit classification; the signed
	// amount is stored as-is.
	txType := transaction.TypeCredit
	if amount < 0 {
		txType = transaction.TypeDebit
	}

	return transaction.CreateParams{
		Date:        date,
		PostDate:    postDate,
		Description: description,
		Category:    cell(row, cols[colCategory]),
		Type:        txType,
		Amount:      amount,
		Memo:        cell(row, cols[colMemo]),
	}, nil
}

// parseDate parses the MM/DD/YYYY dates Chase uses. Years outside
// 1900-2100 are rejected.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty")
	}

	t, err := time.Parse("01/02/2006", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in MM/DD/YYYY format, got: %s", s)
	}

	if t.Year() < 1900 || t.Year() > 2100 {
		return time.Time{}, fmt.Errorf("year must be between 1900 and 2100, got: %d", t.Year())
	}

	return t, nil
}

// cell safely gets a trimmed cell value from a row.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
