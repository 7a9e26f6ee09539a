package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ecspend/lending-engine/internal/domain"
	"github.com/ecspend/lending-engine/internal/transaction"
	customError "github.com/ecspend/lending-engine/pkg/errors"
)

var testNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

func newTestService(profileRepo *MockProfileRepository, historyRepo *MockHistoryRepository) *LendingService {
	return &LendingService{
		ProfileRepo: profileRepo,
		HistoryRepo: historyRepo,
		FeeRate:     decimal.NewFromFloat(0.01),
		Delay:       0,
		Now:         func() time.Time { return testNow },
	}
}

func TestResume(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockProfileRepository)
		wantRoute  string
	}{
		{
			name: "No record routes to onboarding",
			setupMocks: func(repo *MockProfileRepository) {
				repo.On("Load", mock.Anything).Return(nil, customError.ErrProfileNotFound)
			},
			wantRoute: RouteOnboarding,
		},
		{
			name: "Corrupted record routes to onboarding",
			setupMocks: func(repo *MockProfileRepository) {
				repo.On("Load", mock.Anything).Return(nil, customError.WrapProfileCorrupted(assert.AnError))
			},
			wantRoute: RouteOnboarding,
		},
		{
			name: "Record with PIN requires quick login",
			setupMocks: func(repo *MockProfileRepository) {
				repo.On("Load", mock.Anything).Return(domain.NewProfile("Rajesh Kumar", "9876543210", "1234"), nil)
			},
			wantRoute: RouteQuickLogin,
		},
		{
			name: "Record without PIN opens the dashboard",
			setupMocks: func(repo *MockProfileRepository) {
				repo.On("Load", mock.Anything).Return(domain.NewProfile("Rajesh Kumar", "9876543210", ""), nil)
			},
			wantRoute: RouteDashboard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profileRepo := &MockProfileRepository{}
			tt.setupMocks(profileRepo)
			service := newTestService(profileRepo, &MockHistoryRepository{})

			route, err := service.Resume(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantRoute, route)
			profileRepo.AssertExpectations(t)
		})
	}
}

func TestOnboardSeedsCreditState(t *testing.T) {
	profileRepo := &MockProfileRepository{}
	profileRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.Credit.SpendLimit.Equal(decimal.NewFromInt(1000)) &&
			p.Credit.SpendUsed.Equal(decimal.NewFromInt(200)) &&
			p.Credit.CashLimit.Equal(decimal.NewFromInt(1000)) &&
			p.Credit.CashUsed.IsZero() &&
			p.Credit.CreditLevel == 1 &&
			p.Credit.ECScore == 650
	})).Return(nil)

	service := newTestService(profileRepo, &MockHistoryRepository{})

	profile, err := service.Onboard(context.Background(), &domain.OnboardRequest{
		Name:  "Rajesh Kumar",
		Phone: "9876543210",
		PIN:   "1234",
	})

	require.NoError(t, err)
	assert.Equal(t, "Rajesh Kumar", profile.Name)
	assert.True(t, profile.HasPIN)
	profileRepo.AssertExpectations(t)
}

func TestUnlock(t *testing.T) {
	stored := domain.NewProfile("Rajesh Kumar", "9876543210", "1234")

	t.Run("Correct PIN opens the session", func(t *testing.T) {
		profileRepo := &MockProfileRepository{}
		profileRepo.On("Load", mock.Anything).Return(stored, nil)
		service := newTestService(profileRepo, &MockHistoryRepository{})

		profile, err := service.Unlock(context.Background(), "1234")

		require.NoError(t, err)
		assert.Equal(t, "Rajesh Kumar", profile.Name)
	})

	t.Run("Wrong PIN is rejected", func(t *testing.T) {
		profileRepo := &MockProfileRepository{}
		profileRepo.On("Load", mock.Anything).Return(stored, nil)
		service := newTestService(profileRepo, &MockHistoryRepository{})

		_, err := service.Unlock(context.Background(), "0000")

		require.Error(t, err)
		assert.ErrorIs(t, err, customError.ErrInvalidPIN)
	})

	t.Run("Missing profile reports onboarding required", func(t *testing.T) {
		profileRepo := &MockProfileRepository{}
		profileRepo.On("Load", mock.Anything).Return(nil, customError.ErrProfileNotFound)
		service := newTestService(profileRepo, &MockHistoryRepository{})

		_, err := service.Unlock(context.Background(), "1234")

		require.Error(t, err)
		assert.ErrorIs(t, err, customError.ErrProfileNotFound)
	})
}

func onboardedService(t *testing.T, profileRepo *MockProfileRepository, historyRepo *MockHistoryRepository) *LendingService {
	t.Helper()
	profileRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	service := newTestService(profileRepo, historyRepo)
	_, err := service.Onboard(context.Background(), &domain.OnboardRequest{
		Name:  "Rajesh Kumar",
		Phone: "9876543210",
	})
	require.NoError(t, err)
	return service
}

func TestSpendFlowEndToEnd(t *testing.T) {
	ctx := context.Background()
	profileRepo := &MockProfileRepository{}
	historyRepo := &MockHistoryRepository{}
	historyRepo.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(r *domain.TransactionRecord) bool {
		return r.Status == domain.TransactionStatusCompleted &&
			r.CategoryKind == domain.CategoryFuel &&
			r.Amount.Equal(decimal.NewFromInt(300))
	})).Return(nil)
	historyRepo.On("CreateInstallments", mock.Anything, mock.MatchedBy(func(installments []*domain.InstallmentRecord) bool {
		return len(installments) == 4
	})).Return(nil)

	service := onboardedService(t, profileRepo, historyRepo)

	// Begin a spend transaction
	state, err := service.Begin(ctx, transaction.VariantSpend)
	require.NoError(t, err)
	assert.Equal(t, transaction.StateEntry, state)

	// Entry produces the ranked offer list
	offers, err := service.SubmitEntry(ctx, &domain.EntryRequest{
		Amount:       decimal.NewFromInt(300),
		CategoryKind: domain.CategoryFuel,
	})
	require.NoError(t, err)
	require.Len(t, offers.Offers, 4)
	assert.Equal(t, "hdfc", offers.Offers[0].PartnerID, "lowest rate first")

	// Selecting an offer shows its weekly disclosure
	disclosure, err := service.SelectOffer(ctx, "hdfc")
	require.NoError(t, err)
	assert.Equal(t, domain.FrequencyWeekly, disclosure.Frequency)
	assert.Equal(t, 4, disclosure.Disclosure.Terms.InstallmentCount)
	assert.Len(t, disclosure.Disclosure.Schedule, 4)

	// Consent completes processing, charges the ledger, persists
	result, err := service.Confirm(ctx, true)
	require.NoError(t, err)
	assert.True(t, result.Credit.SpendUsed.Equal(decimal.NewFromInt(500)), "200 seed + 300 disbursal")
	assert.Equal(t, domain.LineSpend, result.Record.Line)

	// The flow is finished; further actions need a new transaction
	_, err = service.SubmitEntry(ctx, &domain.EntryRequest{Amount: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, customError.ErrNoTransaction)

	profileRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
}

func TestBiWeeklyFrequencyChangesDisclosure(t *testing.T) {
	ctx := context.Background()
	service := onboardedService(t, &MockProfileRepository{}, &MockHistoryRepository{})

	_, err := service.Begin(ctx, transaction.VariantSpend)
	require.NoError(t, err)
	_, err = service.SubmitEntry(ctx, &domain.EntryRequest{
		Amount:       decimal.NewFromInt(500),
		CategoryKind: domain.CategoryCash,
	})
	require.NoError(t, err)

	weekly, err := service.SelectOffer(ctx, "hdfc")
	require.NoError(t, err)

	biweekly, err := service.SetFrequency(ctx, domain.FrequencyBiWeekly)
	require.NoError(t, err)

	assert.Equal(t, 2, biweekly.Disclosure.Terms.InstallmentCount)
	premium := biweekly.Disclosure.Terms.EffectiveRate.Sub(weekly.Disclosure.Terms.EffectiveRate)
	assert.True(t, premium.Equal(decimal.NewFromFloat(0.05)))
}

func TestConfirmWithoutConsentBlocked(t *testing.T) {
	ctx := context.Background()
	service := onboardedService(t, &MockProfileRepository{}, &MockHistoryRepository{})

	_, err := service.Begin(ctx, transaction.VariantSpend)
	require.NoError(t, err)
	_, err = service.SubmitEntry(ctx, &domain.EntryRequest{
		Amount:       decimal.NewFromInt(100),
		CategoryKind: domain.CategoryGrocery,
	})
	require.NoError(t, err)
	_, err = service.SelectOffer(ctx, "sbi")
	require.NoError(t, err)

	_, err = service.Confirm(ctx, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrConsentRequired)
}

func TestEntryOverLimitBlocked(t *testing.T) {
	ctx := context.Background()
	service := onboardedService(t, &MockProfileRepository{}, &MockHistoryRepository{})

	_, err := service.Begin(ctx, transaction.VariantSpend)
	require.NoError(t, err)

	// Seed profile has 800 available on the spend line.
	_, err = service.SubmitEntry(ctx, &domain.EntryRequest{
		Amount:       decimal.NewFromInt(801),
		CategoryKind: domain.CategoryFuel,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrLimitExceeded)
}

func TestScanFlowWaivesFee(t *testing.T) {
	ctx := context.Background()
	service := onboardedService(t, &MockProfileRepository{}, &MockHistoryRepository{})

	_, err := service.Begin(ctx, transaction.VariantScan)
	require.NoError(t, err)

	offers, err := service.SubmitEntry(ctx, &domain.EntryRequest{Amount: decimal.NewFromInt(400)})
	require.NoError(t, err)
	require.Len(t, offers.Offers, 4)
	for _, offer := range offers.Offers {
		assert.True(t, offer.FeeAmount.IsZero(), "partner %s", offer.PartnerID)
		assert.Equal(t, 4, offer.InstallmentCount)
	}
}

func TestRepay(t *testing.T) {
	ctx := context.Background()
	profileRepo := &MockProfileRepository{}
	service := onboardedService(t, profileRepo, &MockHistoryRepository{})

	result, err := service.Repay(ctx, domain.LineSpend)

	require.NoError(t, err)
	assert.True(t, result.Credit.SpendUsed.IsZero())
	assert.True(t, result.Credit.SpendLimit.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 670, result.Credit.ECScore)
	profileRepo.AssertExpectations(t)
}

func TestScheduleLookup(t *testing.T) {
	transactionID := uuid.New()
	historyRepo := &MockHistoryRepository{}
	historyRepo.On("GetInstallmentsByTransaction", mock.Anything, transactionID).Return([]*domain.InstallmentRecord{
		{TransactionID: transactionID, SequenceNumber: 1, Status: domain.InstallmentStatusPending},
		{TransactionID: transactionID, SequenceNumber: 2, Status: domain.InstallmentStatusPending},
	}, nil)
	service := newTestService(&MockProfileRepository{}, historyRepo)

	installments, err := service.Schedule(context.Background(), transactionID)

	require.NoError(t, err)
	require.Len(t, installments, 2)
	assert.Equal(t, 1, installments[0].SequenceNumber)
	historyRepo.AssertExpectations(t)
}

func TestHistoryWrapsDatabaseError(t *testing.T) {
	historyRepo := &MockHistoryRepository{}
	historyRepo.On("ListTransactions", mock.Anything).Return(nil, assert.AnError)
	service := newTestService(&MockProfileRepository{}, historyRepo)

	_, err := service.History(context.Background())

	require.Error(t, err)
	var businessErr *customError.BusinessError
	require.ErrorAs(t, err, &businessErr)
	assert.Equal(t, customError.ErrCodeDatabaseError, businessErr.Code)
}
