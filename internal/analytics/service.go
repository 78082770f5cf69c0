package analytics

import (
	"context"
	"fmt"

	"github.com/rangehq/rangefin/internal/transaction"
)

// Service applies the aggregation functions to the current upload's
// transactions.
type Service struct {
	txs *transaction.Service
}

func NewService(txs *transaction.Service) *Service {
	return &Service{txs: txs}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	all, err := s.txs.All(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("loading transactions: %w", err)
	}

	return Summarize(all), nil
}

func (s *Service) ByCategory(ctx context.Context) ([]CategorySpending, error) {
	all, err := s.txs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	return ByCategory(all, Summarize(all).TotalSpent), nil
}

func (s *Service) Timeline(ctx context.Context) ([]TimelinePoint, error) {
	all, err := s.txs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	return MonthlyTimeline(all), nil
}
