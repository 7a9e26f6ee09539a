package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction record statuses
const (
	TransactionStatusCompleted = "completed"
	TransactionStatusPending   = "pending"
	TransactionStatusFailed    = "failed"
)

// Installment statuses for persisted schedules
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
	InstallmentStatusOverdue = "overdue"
)

// TransactionRecord is a completed disbursal as it appears in the
// user's history.
type TransactionRecord struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	Title        string          `json:"title" db:"title"`
	CategoryKind string          `json:"category_kind" db:"category_kind"`
	Line         string          `json:"line" db:"line"`
	PartnerID    string          `json:"partner_id" db:"partner_id"`
	PartnerName  string          `json:"partner_name" db:"partner_name"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	TotalPayable decimal.Decimal `json:"total_payable" db:"total_payable"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// InstallmentRecord is one persisted row of a disclosed repayment
// schedule, used by the reminder scheduler.
type InstallmentRecord struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	TransactionID  uuid.UUID       `json:"transaction_id" db:"transaction_id"`
	SequenceNumber int             `json:"sequence_number" db:"sequence_number"`
	DueDate        time.Time       `json:"due_date" db:"due_date"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	Status         string          `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
