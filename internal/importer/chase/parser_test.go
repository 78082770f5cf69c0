package chase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangehq/rangefin/internal/importer/chase"
	"github.com/rangehq/rangefin/internal/transaction"
)

const header = "Transaction Date,Post Date,Description,Category,Type,Amount,Memo\n"

func TestParser_Parse(t *testing.T) {
	input := header +
		"01/12/2024,01/13/2024,Grocery Store,Food,Sale,-5.75,\n" +
		"01/13/2024,01/14/2024,Gas Station,Transportation,Sale,-45.25,fill up\n" +
		"01/14/2024,01/14/2024,Payroll,Income,Payment,2500.00,\n"

	txs, err := chase.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	first := txs[0]
	assert.Equal(t, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), first.PostDate)
	assert.Equal(t, "Grocery Store", first.Description)
	assert.Equal(t, "Food", first.Category)
	assert.Equal(t, transaction.TypeDebit, first.Type)
	assert.Equal(t, int64(-575), first.Amount)

	assert.Equal(t, "fill up", txs[1].Memo)

	payroll := txs[2]
	assert.Equal(t, transaction.TypeCredit, payroll.Type)
	assert.Equal(t, int64(250000), payroll.Amount)
}

func TestParser_Parse_HTMLEntities(t *testing.T) {
	input := header +
		"01/12/2024,01/13/2024,AT&amp;T Wireless,Bills &amp; Utilities,Sale,-85.50,\n"

	txs, err := chase.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "AT&T Wireless", txs[0].Description)
}

func TestParser_Parse_EmptyCategory(t *testing.T) {
	input := header +
		"01/12/2024,01/13/2024,Mystery Charge,,Sale,-10.00,\n"

	txs, err := chase.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, txs[0].Category)
}

func TestParser_Parse_SkipsBlankLines(t *testing.T) {
	input := header +
		"01/12/2024,01/13/2024,Grocery Store,Food,Sale,-5.75,\n" +
		",,,,,,\n"

	txs, err := chase.NewParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestParser_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "Empty",
			input:   "",
			wantErr: "empty",
		},
		{
			name:    "MissingColumns",
			input:   "Transaction Date,Description,Amount\n01/12/2024,Coffee,-3.00\n",
			wantErr: "missing required columns: Category, Memo, Post Date, Type",
		},
		{
			name:    "HeaderOnly",
			input:   header,
			wantErr: "no transaction data",
		},
		{
			name:    "BadDate",
			input:   header + "2024-01-12,01/13/2024,Coffee,Food,Sale,-3.00,\n",
			wantErr: "row 2",
		},
		{
			name:    "BadYear",
			input:   header + "01/12/1850,01/13/1850,Coffee,Food,Sale,-3.00,\n",
			wantErr: "year must be between 1900 and 2100",
		},
		{
			name:    "BadAmount",
			input:   header + "01/12/2024,01/13/2024,Coffee,Food,Sale,three dollars,\n",
			wantErr: "invalid amount value",
		},
		{
			name:    "MissingDescription",
			input:   header + "01/12/2024,01/13/2024,,Food,Sale,-3.00,\n",
			wantErr: "missing description",
		},
		{
			name: "ErrorReportsRowNumber",
			input: header +
				"01/12/2024,01/13/2024,Coffee,Food,Sale,-3.00,\n" +
				"01/13/2024,01/14/2024,Tea,Food,Sale,oops,\n",
			wantErr: "row 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chase.NewParser().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
