package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecspend/lending-engine/internal/domain"
)

// ProfileRepository defines the interface for the persisted user
// profile: one serialized record under a well-known storage key.
type ProfileRepository interface {
	// Load retrieves the stored profile. Returns
	// errors.ErrProfileNotFound when no record exists. A record that
	// cannot be parsed is discarded and reported as corrupted.
	Load(ctx context.Context) (*domain.Profile, error)

	// Save writes the profile, replacing any previous record.
	Save(ctx context.Context, profile *domain.Profile) error

	// Clear removes the stored record.
	Clear(ctx context.Context) error
}

// HistoryRepository defines the interface for completed transaction
// and installment schedule records.
type HistoryRepository interface {
	// CreateTransaction records a completed disbursal.
	CreateTransaction(ctx context.Context, record *domain.TransactionRecord) error

	// CreateInstallments records a disclosed repayment schedule.
	CreateInstallments(ctx context.Context, installments []*domain.InstallmentRecord) error

	// ListTransactions retrieves history, newest first.
	ListTransactions(ctx context.Context) ([]*domain.TransactionRecord, error)

	// GetInstallmentsByTransaction retrieves a transaction's schedule.
	GetInstallmentsByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*domain.InstallmentRecord, error)

	// GetDueInstallments gets pending installments due on or before the cutoff.
	GetDueInstallments(ctx context.Context, cutoff time.Time) ([]*domain.InstallmentRecord, error)

	// MarkInstallmentsOverdue flips pending installments past the cutoff to overdue.
	MarkInstallmentsOverdue(ctx context.Context, cutoff time.Time) (int64, error)
}
