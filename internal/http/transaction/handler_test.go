package transaction

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rangehq/rangefin/internal/transaction"
)

func newServer(t *testing.T, repo transaction.Repository) *httptest.Server {
	t.Helper()

	h := NewHandler(transaction.NewService(repo))

	r := chi.NewRouter()
	r.Route("/api/transactions", h.Routes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func sampleTxs() []*transaction.Transaction {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	return []*transaction.Transaction{
		{
			ID:          uuid.New(),
			Date:        date,
			PostDate:    date.AddDate(0, 0, 1),
			Description: "WHOLE FOODS MARKET",
			Category:    "Food",
			Type:        transaction.TypeDebit,
			Amount:      -5750,
		},
		{
			ID:          uuid.New(),
			Date:        date.AddDate(0, 0, 5),
			PostDate:    date.AddDate(0, 0, 6),
			Description: "PAYROLL DEPOSIT",
			Category:    "Income",
			Type:        transaction.TypeCredit,
			Amount:      250000,
			Memo:        "JAN",
		},
	}
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	txs := sampleTxs()
	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{
			Category: "Food",
			Search:   "market",
			Type:     transaction.TypeDebit,
			Limit:    transaction.DefaultListLimit,
		}).
		Return(txs[:1], 1, nil)

	srv := newServer(t, repo)

	resp, err := http.Get(srv.URL + "/api/transactions?category=Food&search=market&type=debit")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload listResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 1, payload.Total)
	require.Len(t, payload.Transactions, 1)
	assert.Equal(t, "WHOLE FOODS MARKET", payload.Transactions[0].Description)
	assert.Equal(t, int64(-5750), payload.Transactions[0].Amount)
}

func TestHandler_List_InvalidType(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	srv := newServer(t, repo)

	resp, err := http.Get(srv.URL + "/api/transactions?type=transfer")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_List_Pagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{Limit: 10, Offset: 20}).
		Return(nil, 137, nil)

	srv := newServer(t, repo)

	resp, err := http.Get(srv.URL + "/api/transactions?limit=10&offset=20")
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload listResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 137, payload.Total)
	assert.Empty(t, payload.Transactions)
}

func TestHandler_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	repo.EXPECT().
		AllTransactions(gomock.Any()).
		Return(sampleTxs(), nil)

	srv := newServer(t, repo)

	resp, err := http.Get(srv.URL + "/api/transactions/export")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo",
	}, records[0])
	assert.Equal(t, []string{
		"01/15/2024", "01/16/2024", "WHOLE FOODS MARKET", "Food", "debit", "-57.50", "",
	}, records[1])
	assert.Equal(t, []string{
		"01/20/2024", "01/21/2024", "PAYROLL DEPOSIT", "Income", "credit", "2500.00", "JAN",
	}, records[2])
}
