package dashboard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangehq/rangefin/internal/dashboard"
	"github.com/rangehq/rangefin/internal/transaction"
)

func tx(date, desc, category string, amount int64, typ transaction.Type) *transaction.Transaction {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}

	return &transaction.Transaction{
		Date:        d,
		Description: desc,
		Category:    category,
		Amount:      amount,
		Type:        typ,
	}
}

func fixture() []*transaction.Transaction {
	return []*transaction.Transaction{
		tx("2024-01-12", "Grocery Store", "Food", -575, transaction.TypeDebit),
		tx("2024-01-13", "Gas Station", "Transportation", -4525, transaction.TypeDebit),
		tx("2024-01-14", "Payroll", "Income", 250000, transaction.TypeCredit),
		tx("2024-01-15", "Corner Cafe", "Food", -8550, transaction.TypeDebit),
		tx("2024-01-16", "Refund", "", 575, transaction.TypeCredit),
	}
}

func descriptions(rows []*transaction.Transaction) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Description
	}

	return out
}

func TestApply_SearchCaseInsensitive(t *testing.T) {
	page := dashboard.Apply(fixture(), dashboard.Query{Search: "grocery"})

	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Grocery Store", page.Rows[0].Description)
}

func TestApply_SearchMatchesCategory(t *testing.T) {
	page := dashboard.Apply(fixture(), dashboard.Query{Search: "transport"})

	require.Len(t, page.Rows, 1)
	assert.Equal(t, "Gas Station", page.Rows[0].Description)
}

func TestApply_SearchNoMatch(t *testing.T) {
	// "grocery" must not match a row whose description and category both miss.
	page := dashboard.Apply(fixture(), dashboard.Query{Search: "grocery", Type: transaction.TypeDebit, Category: "Transportation"})
	assert.Empty(t, page.Rows)
}

func TestApply_ConjunctiveFilters(t *testing.T) {
	page := dashboard.Apply(fixture(), dashboard.Query{
		Category: "Food",
		Type:     transaction.TypeDebit,
	})

	assert.Equal(t, []string{"Grocery Store", "Corner Cafe"}, descriptions(page.Rows))
	assert.Equal(t, 2, page.Total)
}

func TestApply_FilterIdempotent(t *testing.T) {
	q := dashboard.Query{Search: "a", Type: transaction.TypeDebit}

	once := dashboard.Apply(fixture(), q)
	twice := dashboard.Apply(once.Rows, q)

	assert.Equal(t, descriptions(once.Rows), descriptions(twice.Rows))
	assert.Equal(t, once.Total, twice.Total)
}

func TestApply_SortAmountByMagnitude(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("2024-01-01", "a", "", -50000, transaction.TypeDebit),
		tx("2024-01-02", "b", "", 200, transaction.TypeCredit),
		tx("2024-01-03", "c", "", 50000, transaction.TypeCredit),
	}

	asc := dashboard.Apply(txs, dashboard.Query{SortBy: dashboard.SortByAmount, Order: dashboard.OrderAsc})
	assert.Equal(t, []string{"b", "a", "c"}, descriptions(asc.Rows))

	// -500.00 and 500.00 are equal-ranked, so original order holds between
	// them in both directions.
	desc := dashboard.Apply(txs, dashboard.Query{SortBy: dashboard.SortByAmount, Order: dashboard.OrderDesc})
	assert.Equal(t, []string{"a", "c", "b"}, descriptions(desc.Rows))
}

func TestApply_SortStrings(t *testing.T) {
	txs := []*transaction.Transaction{
		tx("2024-01-01", "zebra", "Travel", -100, transaction.TypeDebit),
		tx("2024-01-02", "Apple", "", -200, transaction.TypeDebit),
		tx("2024-01-03", "apple", "food", -300, transaction.TypeDebit),
	}

	byDesc := dashboard.Apply(txs, dashboard.Query{SortBy: dashboard.SortByDescription, Order: dashboard.OrderAsc})
	// Case-insensitive compare; the two apples keep original relative order.
	assert.Equal(t, []string{"Apple", "apple", "zebra"}, descriptions(byDesc.Rows))

	byCat := dashboard.Apply(txs, dashboard.Query{SortBy: dashboard.SortByCategory, Order: dashboard.OrderAsc})
	// Missing category sorts as empty string, before any non-empty category.
	assert.Equal(t, []string{"Apple", "apple", "zebra"}, descriptions(byCat.Rows))
}

func TestApply_SortDateChronological(t *testing.T) {
	page := dashboard.Apply(fixture(), dashboard.Query{SortBy: dashboard.SortByDate, Order: dashboard.OrderDesc})

	assert.Equal(t, "Refund", page.Rows[0].Description)
	assert.Equal(t, "Grocery Store", page.Rows[len(page.Rows)-1].Description)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	txs := fixture()
	before := descriptions(txs)

	dashboard.Apply(txs, dashboard.Query{SortBy: dashboard.SortByAmount, Order: dashboard.OrderDesc})

	assert.Equal(t, before, descriptions(txs))
}

func TestApply_PaginationInvariant(t *testing.T) {
	const n = 137

	txs := make([]*transaction.Transaction, 0, n)
	for i := range n {
		txs = append(txs, tx("2024-01-01", fmt.Sprintf("tx-%03d", i), "", int64(-i), transaction.TypeDebit))
	}

	first := dashboard.Apply(txs, dashboard.Query{Page: 1})
	require.Equal(t, 3, first.TotalPages)

	var seen int

	for p := 1; p <= first.TotalPages; p++ {
		page := dashboard.Apply(txs, dashboard.Query{Page: p})
		seen += len(page.Rows)

		if p < first.TotalPages {
			assert.Len(t, page.Rows, dashboard.DefaultPageSize)
		}
	}

	// Every row appears exactly once and only the last page may be short.
	assert.Equal(t, n, seen)
}

func TestApply_PageClamping(t *testing.T) {
	txs := fixture()

	over := dashboard.Apply(txs, dashboard.Query{Page: 99, PageSize: 2})
	assert.Equal(t, 3, over.TotalPages)
	assert.Equal(t, 3, over.Page)
	assert.Len(t, over.Rows, 1)

	under := dashboard.Apply(txs, dashboard.Query{Page: -4, PageSize: 2})
	assert.Equal(t, 1, under.Page)
	assert.Len(t, under.Rows, 2)
}

func TestApply_EmptyInput(t *testing.T) {
	page := dashboard.Apply(nil, dashboard.Query{Page: 5})

	assert.Empty(t, page.Rows)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.TotalPages)
	assert.Equal(t, 1, page.Page)
}

func TestToggle(t *testing.T) {
	q := dashboard.Query{SortBy: dashboard.SortByDate, Order: dashboard.OrderDesc}

	// Switching to a new field resets to ascending.
	q = dashboard.Toggle(q, dashboard.SortByAmount)
	assert.Equal(t, dashboard.SortByAmount, q.SortBy)
	assert.Equal(t, dashboard.OrderAsc, q.Order)

	// Re-selecting the same field flips the order.
	q = dashboard.Toggle(q, dashboard.SortByAmount)
	assert.Equal(t, dashboard.OrderDesc, q.Order)

	q = dashboard.Toggle(q, dashboard.SortByAmount)
	assert.Equal(t, dashboard.OrderAsc, q.Order)
}
