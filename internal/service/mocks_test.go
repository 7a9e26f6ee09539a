package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ecspend/lending-engine/internal/domain"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Load(ctx context.Context) (*domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) CreateTransaction(ctx context.Context, record *domain.TransactionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) CreateInstallments(ctx context.Context, installments []*domain.InstallmentRecord) error {
	args := m.Called(ctx, installments)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListTransactions(ctx context.Context) ([]*domain.TransactionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TransactionRecord), args.Error(1)
}

func (m *MockHistoryRepository) GetInstallmentsByTransaction(ctx context.Context, transactionID uuid.UUID) ([]*domain.InstallmentRecord, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InstallmentRecord), args.Error(1)
}

func (m *MockHistoryRepository) GetDueInstallments(ctx context.Context, cutoff time.Time) ([]*domain.InstallmentRecord, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InstallmentRecord), args.Error(1)
}

func (m *MockHistoryRepository) MarkInstallmentsOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
