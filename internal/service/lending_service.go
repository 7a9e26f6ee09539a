package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ecspend/lending-engine/internal/config"
	"github.com/ecspend/lending-engine/internal/domain"
	"github.com/ecspend/lending-engine/internal/ledger"
	"github.com/ecspend/lending-engine/internal/pricing"
	"github.com/ecspend/lending-engine/internal/repository"
	"github.com/ecspend/lending-engine/internal/transaction"
	customError "github.com/ecspend/lending-engine/pkg/errors"
)

// Session routes returned by Resume.
const (
	RouteOnboarding = "onboarding"
	RouteQuickLogin = "quick_login"
	RouteDashboard  = "dashboard"
)

// LendingService drives the single-user lending session: profile
// lifecycle, the transaction flow state machine, ledger application,
// and history recording. One transaction runs at a time; the session
// shell owns the profile and the service persists it after every
// mutating action.
type LendingService struct {
	ProfileRepo repository.ProfileRepository
	HistoryRepo repository.HistoryRepository

	// FeeRate is the flat processing fee for spend and cash flows.
	FeeRate decimal.Decimal
	// Delay is the simulated disbursal processing time.
	Delay time.Duration
	// Now supplies the clock for schedule generation.
	Now func() time.Time

	profile *domain.Profile
	current *transaction.Machine
}

func NewLendingService(
	profileRepo repository.ProfileRepository,
	historyRepo repository.HistoryRepository,
	cfg *config.Config,
) *LendingService {
	return &LendingService{
		ProfileRepo: profileRepo,
		HistoryRepo: historyRepo,
		FeeRate:     cfg.GetFeeRate(),
		Delay:       cfg.GetProcessingDelay(),
		Now:         time.Now,
	}
}

// Resume loads the persisted profile at session start and decides
// where the user lands: no record means onboarding, a record with a
// PIN requires quick unlock, a record without one opens the dashboard
// directly.
func (s *LendingService) Resume(ctx context.Context) (string, error) {
	profile, err := s.ProfileRepo.Load(ctx)
	if err != nil {
		if errors.Is(err, customError.ErrProfileNotFound) || errors.Is(err, customError.ErrProfileCorrupted) {
			return RouteOnboarding, nil
		}
		return "", err
	}

	if profile.PIN != "" {
		return RouteQuickLogin, nil
	}

	s.profile = profile
	return RouteDashboard, nil
}

// Onboard creates the profile with seed credit values and persists it.
func (s *LendingService) Onboard(ctx context.Context, request *domain.OnboardRequest) (*domain.ProfileResponse, error) {
	profile := domain.NewProfile(request.Name, request.Phone, request.PIN)
	if err := s.ProfileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.profile = profile
	return profileResponse(profile), nil
}

// Unlock checks the quick-entry PIN against the stored profile and
// opens the session on a match.
func (s *LendingService) Unlock(ctx context.Context, pin string) (*domain.ProfileResponse, error) {
	profile, err := s.ProfileRepo.Load(ctx)
	if err != nil {
		if errors.Is(err, customError.ErrProfileNotFound) {
			return nil, customError.WrapProfileNotFound()
		}
		return nil, err
	}

	if profile.PIN != "" && profile.PIN != pin {
		return nil, customError.WrapInvalidPIN()
	}

	s.profile = profile
	return profileResponse(profile), nil
}

// Profile returns the active session profile.
func (s *LendingService) Profile(ctx context.Context) (*domain.ProfileResponse, error) {
	profile, err := s.sessionProfile(ctx)
	if err != nil {
		return nil, err
	}
	return profileResponse(profile), nil
}

// Logout drops the in-memory session. The persisted record survives
// unless explicitly wiped.
func (s *LendingService) Logout() {
	s.profile = nil
	s.current = nil
}

// Wipe removes the persisted record and ends the session.
func (s *LendingService) Wipe(ctx context.Context) error {
	if err := s.ProfileRepo.Clear(ctx); err != nil {
		return err
	}
	s.Logout()
	return nil
}

// Begin starts a fresh transaction flow, discarding any unfinished
// one. Selection and consent always start empty.
func (s *LendingService) Begin(ctx context.Context, variant string) (string, error) {
	if _, err := s.sessionProfile(ctx); err != nil {
		return "", err
	}
	s.current = transaction.New(variant)
	return s.current.State(), nil
}

// SubmitEntry validates the amount and category against the session's
// credit lines and computes the ranked offer list.
func (s *LendingService) SubmitEntry(ctx context.Context, request *domain.EntryRequest) (*domain.OffersResponse, error) {
	profile, machine, err := s.activeFlow(ctx)
	if err != nil {
		return nil, err
	}

	offers := s.computeOffers(request.Amount, machine.Variant(), request.CategoryKind)
	if blocked := machine.SubmitEntry(request.Amount, request.CategoryKind, profile.Credit, offers); blocked != nil {
		return nil, customError.WrapBlockedTransition(blocked.Reason)
	}

	return &domain.OffersResponse{Offers: offers}, nil
}

// SelectOffer picks a partner's offer and produces its disclosure.
func (s *LendingService) SelectOffer(ctx context.Context, partnerID string) (*domain.DisclosureResponse, error) {
	_, machine, err := s.activeFlow(ctx)
	if err != nil {
		return nil, err
	}

	if blocked := machine.SelectOffer(partnerID); blocked != nil {
		return nil, customError.WrapBlockedTransition(blocked.Reason)
	}

	return s.disclosureResponse(machine), nil
}

// SetFrequency re-discloses the selected offer under the chosen
// repayment frequency. Scan payments keep their fixed cadence.
func (s *LendingService) SetFrequency(ctx context.Context, frequency string) (*domain.DisclosureResponse, error) {
	_, machine, err := s.activeFlow(ctx)
	if err != nil {
		return nil, err
	}

	if blocked := machine.SetFrequency(frequency); blocked != nil {
		return nil, customError.WrapBlockedTransition(blocked.Reason)
	}

	return s.disclosureResponse(machine), nil
}

// Back steps the flow to the previous screen.
func (s *LendingService) Back(ctx context.Context) (string, error) {
	_, machine, err := s.activeFlow(ctx)
	if err != nil {
		return "", err
	}

	if blocked := machine.Back(); blocked != nil {
		return "", customError.WrapBlockedTransition(blocked.Reason)
	}
	return machine.State(), nil
}

// Confirm takes the consent flag, runs the simulated processing
// delay, applies the disbursal to the ledger, persists the profile,
// and records the transaction with its installment schedule. The
// prototype models no disbursal failure: once processing starts the
// transaction always succeeds.
func (s *LendingService) Confirm(ctx context.Context, consent bool) (*domain.TransactionResult, error) {
	profile, machine, err := s.activeFlow(ctx)
	if err != nil {
		return nil, err
	}

	if blocked := machine.Confirm(consent); blocked != nil {
		return nil, customError.WrapBlockedTransition(blocked.Reason)
	}

	// Simulated network latency. Not cancellable; the flow has no
	// way back once processing begins.
	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	if blocked := machine.Complete(); blocked != nil {
		return nil, customError.WrapBlockedTransition(blocked.Reason)
	}

	disclosure := s.buildDisclosure(machine)
	now := s.Now()

	profile.Credit = ledger.ApplyDisbursal(profile.Credit, machine.Line(), machine.Amount())
	if err := s.ProfileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	record := &domain.TransactionRecord{
		ID:           uuid.New(),
		Title:        transactionTitle(machine),
		CategoryKind: machine.CategoryKind(),
		Line:         machine.Line(),
		PartnerID:    disclosure.Terms.PartnerID,
		PartnerName:  disclosure.Terms.PartnerName,
		Amount:       machine.Amount(),
		TotalPayable: disclosure.Terms.TotalPayable,
		Status:       domain.TransactionStatusCompleted,
		CreatedAt:    now,
	}

	if err := s.HistoryRepo.CreateTransaction(ctx, record); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	installments := make([]*domain.InstallmentRecord, 0, len(disclosure.Schedule))
	for _, entry := range disclosure.Schedule {
		installments = append(installments, &domain.InstallmentRecord{
			ID:             uuid.New(),
			TransactionID:  record.ID,
			SequenceNumber: entry.SequenceNumber,
			DueDate:        entry.DueDate,
			Amount:         entry.Amount,
			Status:         domain.InstallmentStatusPending,
			CreatedAt:      now,
		})
	}
	if err := s.HistoryRepo.CreateInstallments(ctx, installments); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.current = nil
	return &domain.TransactionResult{Record: record, Credit: profile.Credit}, nil
}

// Repay settles dues on a credit line and persists the updated state.
// Repayment is always assumed successful once triggered.
func (s *LendingService) Repay(ctx context.Context, line string) (*domain.TransactionResult, error) {
	profile, err := s.sessionProfile(ctx)
	if err != nil {
		return nil, err
	}

	profile.Credit = ledger.ApplyRepayment(profile.Credit, line)
	if err := s.ProfileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	return &domain.TransactionResult{Credit: profile.Credit}, nil
}

// History lists completed transactions, newest first.
func (s *LendingService) History(ctx context.Context) (*domain.HistoryResponse, error) {
	records, err := s.HistoryRepo.ListTransactions(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return &domain.HistoryResponse{Transactions: records}, nil
}

// Schedule returns the persisted installment schedule of a completed
// transaction.
func (s *LendingService) Schedule(ctx context.Context, transactionID uuid.UUID) ([]*domain.InstallmentRecord, error) {
	installments, err := s.HistoryRepo.GetInstallmentsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return installments, nil
}

func (s *LendingService) sessionProfile(ctx context.Context) (*domain.Profile, error) {
	if s.profile != nil {
		return s.profile, nil
	}

	profile, err := s.ProfileRepo.Load(ctx)
	if err != nil {
		if errors.Is(err, customError.ErrProfileNotFound) {
			return nil, customError.WrapProfileNotFound()
		}
		return nil, err
	}

	s.profile = profile
	return profile, nil
}

func (s *LendingService) activeFlow(ctx context.Context) (*domain.Profile, *transaction.Machine, error) {
	profile, err := s.sessionProfile(ctx)
	if err != nil {
		return nil, nil, err
	}
	if s.current == nil {
		return nil, nil, customError.WrapNoTransaction()
	}
	return profile, s.current, nil
}

func (s *LendingService) computeOffers(amount decimal.Decimal, variant, categoryKind string) []domain.Offer {
	if variant == transaction.VariantScan {
		return pricing.ComputeOffers(amount, pricing.ScanPayPlan(), domain.Partners(), decimal.Zero)
	}
	return pricing.ComputeOffers(amount, pricing.ResolvePlan(categoryKind), domain.Partners(), s.FeeRate)
}

func (s *LendingService) buildDisclosure(machine *transaction.Machine) domain.Disclosure {
	selected := *machine.Selected()
	if machine.Variant() == transaction.VariantScan {
		return pricing.BuildScanDisclosure(selected, s.Now())
	}
	return pricing.BuildDisclosure(selected, machine.Frequency(), s.Now(), s.FeeRate)
}

func (s *LendingService) disclosureResponse(machine *transaction.Machine) *domain.DisclosureResponse {
	disclosure := s.buildDisclosure(machine)
	return &domain.DisclosureResponse{
		Disclosure: &disclosure,
		Frequency:  machine.Frequency(),
	}
}

func transactionTitle(machine *transaction.Machine) string {
	if machine.Variant() == transaction.VariantScan {
		return "Merchant Payment"
	}
	if category, ok := domain.CategoryByKind(machine.CategoryKind()); ok {
		return category.DisplayName
	}
	return "EC Spend"
}

func profileResponse(profile *domain.Profile) *domain.ProfileResponse {
	return &domain.ProfileResponse{
		Name:   profile.Name,
		Phone:  profile.Phone,
		HasPIN: profile.PIN != "",
		Credit: profile.Credit,
	}
}
