package repository

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ecspend/lending-engine/internal/domain"
	customError "github.com/ecspend/lending-engine/pkg/errors"
)

type profileRepository struct {
	client *redis.Client
	key    string
}

// NewProfileRepository returns a Redis-backed profile store keeping
// the whole profile as one JSON record under key.
func NewProfileRepository(client *redis.Client, key string) ProfileRepository {
	return &profileRepository{client: client, key: key}
}

// storedProfile mirrors domain.Profile with optional credit fields so
// that records written before a field existed still load; missing
// fields get defaults on the way out.
type storedProfile struct {
	Name   string       `json:"name"`
	Phone  string       `json:"phone"`
	PIN    string       `json:"pin,omitempty"`
	Credit storedCredit `json:"credit"`
}

type storedCredit struct {
	SpendLimit  decimal.Decimal  `json:"spend_limit"`
	SpendUsed   decimal.Decimal  `json:"spend_used"`
	CashLimit   *decimal.Decimal `json:"cash_limit,omitempty"`
	CashUsed    *decimal.Decimal `json:"cash_used,omitempty"`
	CreditLevel *int             `json:"credit_level,omitempty"`
	ECScore     *int             `json:"ec_score,omitempty"`
}

func (r *profileRepository) Load(ctx context.Context) (*domain.Profile, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, customError.ErrProfileNotFound
	}
	if err != nil {
		return nil, customError.WrapCacheError(err)
	}

	var stored storedProfile
	if err := json.Unmarshal(raw, &stored); err != nil {
		// An unreadable record is discarded so the caller restarts
		// onboarding instead of failing forever.
		_ = r.client.Del(ctx, r.key).Err()
		return nil, customError.WrapProfileCorrupted(err)
	}

	return stored.toDomain(), nil
}

func (r *profileRepository) Save(ctx context.Context, profile *domain.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return customError.WrapCacheError(err)
	}

	// The record is the session's source of truth; it does not expire.
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

func (r *profileRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}

func (s storedProfile) toDomain() *domain.Profile {
	credit := domain.UserCreditState{
		SpendLimit:  s.Credit.SpendLimit,
		SpendUsed:   s.Credit.SpendUsed,
		CashLimit:   decimal.NewFromInt(domain.DefaultCashLimit),
		CashUsed:    decimal.Zero,
		CreditLevel: domain.DefaultCreditLevel,
		ECScore:     domain.DefaultECScore,
	}
	if s.Credit.CashLimit != nil {
		credit.CashLimit = *s.Credit.CashLimit
	}
	if s.Credit.CashUsed != nil {
		credit.CashUsed = *s.Credit.CashUsed
	}
	if s.Credit.CreditLevel != nil {
		credit.CreditLevel = *s.Credit.CreditLevel
	}
	if s.Credit.ECScore != nil {
		credit.ECScore = *s.Credit.ECScore
	}

	return &domain.Profile{
		Name:   s.Name,
		Phone:  s.Phone,
		PIN:    s.PIN,
		Credit: credit,
	}
}
