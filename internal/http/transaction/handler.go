package transaction

import (
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rangehq/rangefin/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/export", h.export)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	if t := r.URL.Query().Get("type"); t != "" {
		typ := transaction.Type(t)
		if !typ.Valid() {
			http.Error(w, "invalid type filter", http.StatusBadRequest)
			return
		}

		filter.Type = typ
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Limit = n
		}
	}

	if s := r.URL.Query().Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			filter.Offset = n
		}
	}

	txs, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toListResponse(txs, total)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// export streams the current dataset back out in the same column layout it
// was uploaded in.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.All(r.Context())
	if err != nil {
		slog.Error("failed to load transactions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	cw := csv.NewWriter(w)

	record := []string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"}
	if err := cw.Write(record); err != nil {
		slog.Error("failed to write csv", "error", err)
		return
	}

	for _, tx := range txs {
		record = []string{
			tx.Date.Format("01/02/2006"),
			tx.PostDate.Format("01/02/2006"),
			tx.Description,
			tx.Category,
			string(tx.Type),
			decimal.New(tx.Amount, -2).StringFixed(2),
			tx.Memo,
		}

		if err := cw.Write(record); err != nil {
			slog.Error("failed to write csv", "error", err)
			return
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		slog.Error("failed to flush csv", "error", err)
	}
}
