package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rangehq/rangefin/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, upload_id, date, post_date, description, category, type, amount, memo, created_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	var category, memo sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.UploadID, &tx.Date, &tx.PostDate, &tx.Description,
		&category, &typeStr, &tx.Amount, &memo, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.Category = category.String
	tx.Memo = memo.String

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.upload_id, t.date, t.post_date, t.description, t.category, t.type, t.amount, t.memo, t.created_at
`

// latestUploadExpr restricts a query to the most recent upload.
const latestUploadExpr = `(SELECT id FROM uploads ORDER BY created_at DESC, id DESC LIMIT 1)`

func (s *Store) CreateUpload(ctx context.Context, upload *transaction.Upload, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upload: %w", err)
	}
	defer dbTx.Rollback()

	err = dbTx.QueryRowContext(ctx, `
		INSERT INTO uploads (transaction_count, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`, upload.TransactionCount).Scan(&upload.ID, &upload.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating upload: %w", err)
	}

	insert := `
		INSERT INTO transactions (upload_id, date, post_date, description, category, type, amount, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	for _, t := range txs {
		t.UploadID = upload.ID

		err := dbTx.QueryRowContext(ctx, insert,
			t.UploadID,
			t.Date,
			t.PostDate,
			t.Description,
			nullIfEmpty(t.Category),
			t.Type,
			t.Amount,
			nullIfEmpty(t.Memo),
		).Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit upload: %w", err)
	}

	return nil
}

func (s *Store) LatestUpload(ctx context.Context) (*transaction.Upload, error) {
	var u transaction.Upload

	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, transaction_count
		FROM uploads
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`).Scan(&u.ID, &u.CreatedAt, &u.TransactionCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNoUpload
		}

		return nil, fmt.Errorf("getting latest upload: %w", err)
	}

	return &u, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, int, error) {
	where, args := buildFilter(filter)

	var total int

	countQuery := `SELECT COUNT(*) FROM transactions t WHERE ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		WHERE %s
		ORDER BY t.date ASC, t.id ASC
		LIMIT $%d OFFSET $%d
	`, selectTransactionColumns, where, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	txs, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (s *Store) AllTransactions(ctx context.Context) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.upload_id = ` + latestUploadExpr + `
		ORDER BY t.date ASC, t.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// buildFilter assembles the WHERE clause for ListTransactions. The latest
// upload restriction is always present; the remaining predicates are added
// only when the filter sets them.
func buildFilter(filter transaction.ListFilter) (string, []any) {
	conds := []string{"t.upload_id = " + latestUploadExpr}

	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("COALESCE(t.category, '') = $%d", len(args)))
	}

	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("t.type = $%d", len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(t.description ILIKE $%d OR COALESCE(t.category, '') ILIKE $%d)", len(args), len(args)))
	}

	return strings.Join(conds, " AND "), args
}

func collect(rows *sql.Rows) ([]*transaction.Transaction, error) {
	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}

	return s
}
