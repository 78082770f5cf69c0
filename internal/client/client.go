// Package client is the dashboard's HTTP client for the rangefin API.
// Every call goes through one response funnel that normalizes non-2xx
// responses into *APIError and branches 2xx bodies on their content type.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rangehq/rangefin/internal/analytics"
	"github.com/rangehq/rangefin/internal/transaction"
)

// ErrInvalidCSV rejects a file that is neither .csv-named nor text/csv-typed
// before any network traffic happens.
var ErrInvalidCSV = errors.New("Please upload a valid CSV file")

// APIError is a non-2xx response normalized to its status code and the best
// available message (JSON "message" or "detail" field, else the status text).
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL. No request timeout is
// configured; the caller owns cancellation via context if it wants any.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// Transaction is the wire form of a transaction.
type Transaction struct {
	ID          uuid.UUID        `json:"id"`
	Date        time.Time        `json:"date"`
	PostDate    time.Time        `json:"post_date"`
	Description string           `json:"description"`
	Category    string           `json:"category,omitempty"`
	Type        transaction.Type `json:"type"`
	Amount      int64            `json:"amount"`
	Memo        string           `json:"memo,omitempty"`
}

// ToDomain converts a wire transaction into the domain type.
func (t Transaction) ToDomain() *transaction.Transaction {
	return &transaction.Transaction{
		ID:          t.ID,
		Date:        t.Date,
		PostDate:    t.PostDate,
		Description: t.Description,
		Category:    t.Category,
		Type:        t.Type,
		Amount:      t.Amount,
		Memo:        t.Memo,
	}
}

// ToDomainList converts a slice of wire transactions.
func ToDomainList(txs []Transaction) []*transaction.Transaction {
	out := make([]*transaction.Transaction, len(txs))
	for i, t := range txs {
		out[i] = t.ToDomain()
	}

	return out
}

// UploadResult is the upload endpoint's response.
type UploadResult struct {
	Success      bool               `json:"success"`
	Message      string             `json:"message"`
	Transactions []Transaction      `json:"transactions,omitempty"`
	Summary      *analytics.Summary `json:"summary,omitempty"`
}

// TransactionList is the list endpoint's response.
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}

// ListOptions are the list endpoint's query parameters. Zero values are
// omitted from the request.
type ListOptions struct {
	Limit    int
	Offset   int
	Category string
	Type     transaction.Type
	Search   string
}

// ValidateCSVFile checks a candidate upload before it touches the network.
// A file passes when its name ends in .csv or its declared content type is
// text/csv.
func ValidateCSVFile(name, contentType string) error {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return nil
	}

	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "text/csv" {
		return nil
	}

	return ErrInvalidCSV
}

// Upload sends a CSV as a multipart request. Invalid files are rejected
// locally with ErrInvalidCSV and never issue a network call.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	if err := ValidateCSVFile(filename, mime.TypeByExtension(filepath.Ext(filename))); err != nil {
		return nil, err
	}

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}

	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transactions/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListTransactions fetches one page of the current dataset.
func (c *Client) ListTransactions(ctx context.Context, opts ListOptions) (*TransactionList, error) {
	q := url.Values{}

	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	if opts.Category != "" {
		q.Set("category", opts.Category)
	}

	if opts.Type != "" {
		q.Set("type", string(opts.Type))
	}

	if opts.Search != "" {
		q.Set("search", opts.Search)
	}

	endpoint := c.baseURL + "/api/transactions"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var list TransactionList
	if err := c.get(ctx, endpoint, &list); err != nil {
		return nil, err
	}

	return &list, nil
}

// Summary fetches the aggregate scalars for the current upload.
func (c *Client) Summary(ctx context.Context) (*analytics.Summary, error) {
	var s analytics.Summary
	if err := c.get(ctx, c.baseURL+"/api/analytics/summary", &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// ByCategory fetches the spending-by-category breakdown.
func (c *Client) ByCategory(ctx context.Context) ([]analytics.CategorySpending, error) {
	var out []analytics.CategorySpending
	if err := c.get(ctx, c.baseURL+"/api/analytics/by-category", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Timeline fetches the monthly net-amount series.
func (c *Client) Timeline(ctx context.Context) ([]analytics.TimelinePoint, error) {
	var out []analytics.TimelinePoint
	if err := c.get(ctx, c.baseURL+"/api/analytics/timeline", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// ExportCSV fetches the current dataset as raw CSV text.
func (c *Client) ExportCSV(ctx context.Context) (string, error) {
	var csv string
	if err := c.get(ctx, c.baseURL+"/api/transactions/export", &csv); err != nil {
		return "", err
	}

	return csv, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	return c.do(req, out)
}

// do executes the request and funnels the response. Transport failures
// propagate as the underlying error; non-2xx statuses become *APIError;
// 2xx JSON decodes into out, any other 2xx body is returned as text when
// out is a *string.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, body),
		}
	}

	if out == nil {
		return nil
	}

	if isJSON(resp.Header.Get("Content-Type")) {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		return nil
	}

	if text, ok := out.(*string); ok {
		*text = string(body)
		return nil
	}

	return fmt.Errorf("unexpected content type: %s", resp.Header.Get("Content-Type"))
}

// errorMessage extracts a usable message from an error body: the JSON
// "message" or "detail" field when present, else the HTTP status text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}

		if payload.Detail != "" {
			return payload.Detail
		}
	}

	return http.StatusText(status)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json"
}
