package domain

import "github.com/shopspring/decimal"

// DTOs for requests and responses

type OnboardRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	PIN   string `json:"pin" validate:"omitempty,len=4,numeric"`
}

type UnlockRequest struct {
	PIN string `json:"pin" validate:"required,len=4,numeric"`
}

type BeginTransactionRequest struct {
	// Variant selects the flow: "spend" for in-app category spends,
	// "scan" for merchant QR payments.
	Variant string `json:"variant" validate:"required,oneof=spend scan"`
}

type EntryRequest struct {
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	CategoryKind string          `json:"category_kind"`
}

type SelectOfferRequest struct {
	PartnerID string `json:"partner_id" validate:"required"`
}

type FrequencyRequest struct {
	Frequency string `json:"frequency" validate:"required,oneof=weekly biweekly"`
}

type ConfirmRequest struct {
	Consent bool `json:"consent"`
}

type RepaymentRequest struct {
	Line string `json:"line" validate:"required,oneof=spend cash"`
}

type OffersResponse struct {
	Offers []Offer `json:"offers"`
}

type DisclosureResponse struct {
	Disclosure *Disclosure `json:"disclosure"`
	Frequency  string      `json:"frequency"`
}

type TransactionResult struct {
	Record *TransactionRecord `json:"record"`
	Credit UserCreditState    `json:"credit"`
}

type ProfileResponse struct {
	Name   string          `json:"name"`
	Phone  string          `json:"phone"`
	HasPIN bool            `json:"has_pin"`
	Credit UserCreditState `json:"credit"`
}

type HistoryResponse struct {
	Transactions []*TransactionRecord `json:"transactions"`
}
