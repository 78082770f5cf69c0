// Package analytics derives dashboard aggregates from a transaction set.
// All aggregation is pure and linear over the input; the Service variants
// apply the same functions to the current upload's dataset.
package analytics

import (
	"sort"
	"time"

	"github.com/rangehq/rangefin/internal/transaction"
)

// Summary holds the aggregate scalars computed once per upload.
// All monetary values are cents.
type Summary struct {
	TotalSpent           int64 `json:"total_spent"`
	TotalIncome          int64 `json:"total_income"`
	NetAmount            int64 `json:"net_amount"`
	TransactionCount     int   `json:"transaction_count"`
	AvgTransactionAmount int64 `json:"avg_transaction_amount"`
}

// CategorySpending is one row of the spending-by-category breakdown.
// Amount is the sum of absolute debit amounts in the category.
type CategorySpending struct {
	Category   string  `json:"category"`
	Amount     int64   `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TimelinePoint is one month of the net-amount timeline. Months with no
// transactions are omitted, not zero-filled.
type TimelinePoint struct {
	Date       string `json:"date"` // month label, e.g. "Jan 2024"
	Amount     int64  `json:"amount"`
	Cumulative int64  `json:"cumulative"`
}

// Summarize computes the upload summary. TotalSpent and TotalIncome are
// absolute sums over debits and credits respectively; the average is the
// mean absolute amount across all transactions, rounded down.
func Summarize(txs []*transaction.Transaction) Summary {
	var s Summary

	var absTotal int64

	for _, tx := range txs {
		a := abs(tx.Amount)
		absTotal += a

		switch tx.Type {
		case transaction.TypeDebit:
			s.TotalSpent += a
		case transaction.TypeCredit:
			s.TotalIncome += a
		}
	}

	s.NetAmount = s.TotalIncome - s.TotalSpent
	s.TransactionCount = len(txs)

	if len(txs) > 0 {
		s.AvgTransactionAmount = absTotal / int64(len(txs))
	}

	return s
}

// ByCategory groups debit transactions by category and reports each group's
// absolute spend, row count, and share of totalSpent. Absent categories
// fall under "Uncategorized". Groups are sorted by amount descending, then
// category name for a deterministic order. All percentages are 0 when
// totalSpent is 0.
func ByCategory(txs []*transaction.Transaction, totalSpent int64) []CategorySpending {
	groups := make(map[string]*CategorySpending)

	for _, tx := range txs {
		if tx.Type != transaction.TypeDebit {
			continue
		}

		name := tx.CategoryLabel()

		g, ok := groups[name]
		if !ok {
			g = &CategorySpending{Category: name}
			groups[name] = g
		}

		g.Amount += abs(tx.Amount)
		g.Count++
	}

	out := make([]CategorySpending, 0, len(groups))

	for _, g := range groups {
		if totalSpent != 0 {
			g.Percentage = float64(g.Amount) / float64(abs(totalSpent)) * 100
		}

		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}

		return out[i].Category < out[j].Category
	})

	return out
}

// MonthlyTimeline buckets all transactions (debit and credit) by calendar
// year-month and reports the signed net amount per bucket plus a running
// cumulative sum across buckets in ascending chronological order.
func MonthlyTimeline(txs []*transaction.Transaction) []TimelinePoint {
	type bucket struct {
		key    time.Time
		amount int64
	}

	byMonth := make(map[time.Time]*bucket)

	for _, tx := range txs {
		key := time.Date(tx.Date.Year(), tx.Date.Month(), 1, 0, 0, 0, 0, time.UTC)

		b, ok := byMonth[key]
		if !ok {
			b = &bucket{key: key}
			byMonth[key] = b
		}

		b.amount += tx.Amount
	}

	buckets := make([]*bucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].key.Before(buckets[j].key)
	})

	out := make([]TimelinePoint, 0, len(buckets))

	var cumulative int64

	for _, b := range buckets {
		cumulative += b.amount
		out = append(out, TimelinePoint{
			Date:       b.key.Format("Jan 2006"),
			Amount:     b.amount,
			Cumulative: cumulative,
		})
	}

	return out
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
