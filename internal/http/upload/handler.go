package upload

import (
	"encoding/json"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rangehq/rangefin/internal/analytics"
	"github.com/rangehq/rangefin/internal/importer"
	"github.com/rangehq/rangefin/internal/transaction"
)

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
	maxBytes  int64
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, maxBytes int64) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
		maxBytes:  maxBytes,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.upload)
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Date        time.Time        `json:"date"`
	PostDate    time.Time        `json:"post_date"`
	Description string           `json:"description"`
	Category    string           `json:"category,omitempty"`
	Type        transaction.Type `json:"type"`
	Amount      int64            `json:"amount"`
	Memo        string           `json:"memo,omitempty"`
}

type uploadResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	Transactions []transactionResponse `json:"transactions,omitempty"`
	Summary      *analytics.Summary    `json:"summary,omitempty"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeFailure(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !acceptableCSV(header) {
		writeFailure(w, http.StatusBadRequest, "Invalid file format")
		return
	}

	params, err := h.importSvc.Import(importer.FormatChase, file)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	upload, txs, err := h.txSvc.CreateUpload(r.Context(), params)
	if err != nil {
		slog.Error("failed to store upload", "error", err)
		writeFailure(w, http.StatusInternalServerError, "failed to store upload")

		return
	}

	summary := analytics.Summarize(txs)

	resp := uploadResponse{
		Success:      true,
		Message:      "Upload processed successfully",
		Transactions: make([]transactionResponse, 0, len(txs)),
		Summary:      &summary,
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, toTxResponse(tx))
	}

	slog.Info("csv uploaded",
		"upload_id", upload.ID,
		"transactions", upload.TransactionCount,
	)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// acceptableCSV checks the uploaded file's name and declared type. The real
// gate is the parser; this only rejects files that are obviously not CSV.
func acceptableCSV(header *multipart.FileHeader) bool {
	if strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	switch mediaType {
	case "text/csv", "application/csv", "text/plain":
		return true
	}

	return false
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := uploadResponse{Success: false, Message: message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toTxResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date,
		PostDate:    tx.PostDate,
		Description: tx.Description,
		Category:    tx.Category,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Memo:        tx.Memo,
	}
}
