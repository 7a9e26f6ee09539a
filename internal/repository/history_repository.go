package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ecspend/lending-engine/internal/domain"
)

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) CreateTransaction(ctx context.Context, record *domain.TransactionRecord) error {
	query := `
		INSERT INTO transactions (id, title, category_kind, line, partner_id, partner_name, amount, total_payable, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Title,
		record.CategoryKind,
		record.Line,
		record.PartnerID,
		record.PartnerName,
		record.Amount,
		record.TotalPayable,
		record.Status,
		record.CreatedAt,
	)

	return err
}

func (r *historyRepository) CreateInstallments(ctx context.Context, installments []*domain.InstallmentRecord) error {
	query := `
		INSERT INTO installments (id, transaction_id, sequence_number, due_date, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, installment := range installments {
		_, err = tx.ExecContext(ctx, query,
			installment.ID,
			installment.TransactionID,
			installment.SequenceNumber,
			installment.DueDate,
			installment.Amount,
			installment.Status,
			installment.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *historyRepository) ListTransactions(ctx context.Context) ([]*domain.TransactionRecord, error) {
	query := `
		SELECT id, title, category_kind, line, partner_id, partner_name, amount, total_payable, status, created_at
		FROM transactions
		ORDER BY created_at DESC
	`

	var records []*domain.TransactionRecord
	err := r.db.SelectContext(ctx, &records, query)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *historyRepository) GetInstallmentsByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*domain.InstallmentRecord, error) {
	query := `
		SELECT id, transaction_id, sequence_number, due_date, amount, status, created_at
		FROM installments
		WHERE transaction_id = $1
		ORDER BY sequence_number
	`

	var installments []*domain.InstallmentRecord
	err := r.db.SelectContext(ctx, &installments, query, transactionID)
	if err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *historyRepository) GetDueInstallments(ctx context.Context, cutoff time.Time) ([]*domain.InstallmentRecord, error) {
	query := `
		SELECT id, transaction_id, sequence_number, due_date, amount, status, created_at
		FROM installments
		WHERE status = 'pending' AND due_date <= $1
		ORDER BY due_date
	`

	var installments []*domain.InstallmentRecord
	err := r.db.SelectContext(ctx, &installments, query, cutoff)
	if err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *historyRepository) MarkInstallmentsOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE installments
		SET status = 'overdue'
		WHERE status = 'pending' AND due_date < $1
	`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
