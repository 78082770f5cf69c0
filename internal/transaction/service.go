package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoUpload is returned when no CSV has been uploaded yet.
var ErrNoUpload = errors.New("no upload found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// CreateUpload stores an upload and its transactions atomically.
	// Either everything is persisted or nothing is.
	CreateUpload(ctx context.Context, upload *Upload, txs []*Transaction) error

	// LatestUpload returns the most recent upload, or ErrNoUpload.
	LatestUpload(ctx context.Context) (*Upload, error)

	// ListTransactions returns a page of the latest upload's transactions
	// matching the filter, plus the total match count before paging.
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, int, error)

	// AllTransactions returns every transaction of the latest upload in
	// ascending date order.
	AllTransactions(ctx context.Context) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams carries one parsed CSV row into the service.
type CreateParams struct {
	Date        time.Time
	PostDate    time.Time
	Description string
	Category    string
	Type        Type
	Amount      int64
	Memo        string
}

// ListFilter narrows ListTransactions results. Zero values mean "no
// restriction"; Limit defaults to DefaultListLimit.
type ListFilter struct {
	Category string
	Type     Type
	Search   string
	Limit    int
	Offset   int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 10000
)

// CreateUpload persists a new upload from parsed rows. The new upload
// becomes the current dataset; prior uploads are left untouched (an upload
// either fully replaces the visible set or fails without effect).
func (s *Service) CreateUpload(ctx context.Context, params []CreateParams) (*Upload, []*Transaction, error) {
	if len(params) == 0 {
		return nil, nil, fmt.Errorf("upload contains no transactions")
	}

	upload := &Upload{TransactionCount: len(params)}

	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			Date:        p.Date,
			PostDate:    p.PostDate,
			Description: p.Description,
			Category:    p.Category,
			Type:        p.Type,
			Amount:      p.Amount,
			Memo:        p.Memo,
		}
	}

	if err := s.repo.CreateUpload(ctx, upload, txs); err != nil {
		return nil, nil, fmt.Errorf("create upload: %w", err)
	}

	return upload, txs, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}

	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) All(ctx context.Context) ([]*Transaction, error) {
	return s.repo.AllTransactions(ctx)
}

func (s *Service) LatestUpload(ctx context.Context) (*Upload, error) {
	return s.repo.LatestUpload(ctx)
}
