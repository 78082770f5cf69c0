// Package dashboard holds the client-side data shaping for the TUI: the
// filter/sort/paginate pipeline applied to the in-memory transaction list,
// and the process-wide theme state.
package dashboard

import (
	"sort"
	"strings"

	"github.com/rangehq/rangefin/internal/transaction"
)

// SortField selects the sort key of the pipeline.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByDescription SortField = "description"
	SortByAmount      SortField = "amount"
	SortByCategory    SortField = "category"
)

// SortOrder selects the sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// DefaultPageSize is the number of rows per dashboard page.
const DefaultPageSize = 50

// Query captures the current UI controls. The zero value of a field means
// "no restriction". Page is 1-based.
type Query struct {
	Search   string
	Category string
	Type     transaction.Type
	SortBy   SortField
	Order    SortOrder
	Page     int
	PageSize int
}

// Page is the derived view of the transaction list for one render.
type Page struct {
	Rows       []*transaction.Transaction
	Total      int // matches across all pages
	TotalPages int
	Page       int // clamped 1-based page actually shown
}

// Apply derives the visible page from the raw transaction list and the
// current controls. It is a pure function: the input slice is not reordered
// or mutated, and equal sort keys keep their original relative order.
func Apply(txs []*transaction.Transaction, q Query) Page {
	filtered := filter(txs, q)
	sortRows(filtered, q)

	return paginate(filtered, q)
}

// Toggle returns q adjusted for a click on a sort field: selecting a new
// field sorts ascending, re-selecting the current field flips the order.
func Toggle(q Query, field SortField) Query {
	if q.SortBy == field {
		if q.Order == OrderDesc {
			q.Order = OrderAsc
		} else {
			q.Order = OrderDesc
		}

		return q
	}

	q.SortBy = field
	q.Order = OrderAsc

	return q
}

// filter applies the conjunctive predicates: search matches description or
// category case-insensitively, category and type match exactly.
func filter(txs []*transaction.Transaction, q Query) []*transaction.Transaction {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if search != "" &&
			!strings.Contains(strings.ToLower(tx.Description), search) &&
			!strings.Contains(strings.ToLower(tx.Category), search) {
			continue
		}

		if q.Category != "" && tx.Category != q.Category {
			continue
		}

		if q.Type != "" && tx.Type != q.Type {
			continue
		}

		out = append(out, tx)
	}

	return out
}

func sortRows(txs []*transaction.Transaction, q Query) {
	less := lessFunc(q.SortBy)
	if less == nil {
		return
	}

	if q.Order == OrderDesc {
		asc := less
		less = func(a, b *transaction.Transaction) bool { return asc(b, a) }
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return less(txs[i], txs[j])
	})
}

func lessFunc(field SortField) func(a, b *transaction.Transaction) bool {
	switch field {
	case SortByDate:
		return func(a, b *transaction.Transaction) bool {
			return a.Date.Before(b.Date)
		}
	case SortByDescription:
		return func(a, b *transaction.Transaction) bool {
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		}
	case SortByAmount:
		// Amounts rank by magnitude: -100.00 and +100.00 are equal.
		return func(a, b *transaction.Transaction) bool {
			return abs(a.Amount) < abs(b.Amount)
		}
	case SortByCategory:
		// Missing category sorts as the empty string, before any name.
		return func(a, b *transaction.Transaction) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	}

	return nil
}

// paginate slices the filtered rows into the requested page, clamping
// out-of-range page numbers instead of erroring.
func paginate(txs []*transaction.Transaction, q Query) Page {
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(txs)
	totalPages := (total + size - 1) / size

	page := q.Page
	if page < 1 {
		page = 1
	}

	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}

	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Rows:       txs[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
	}
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
