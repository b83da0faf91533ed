package model

import "time"

// TransactionType classifies a money movement on the platform.
type TransactionType string

const (
	TxCreditPurchase TransactionType = "CREDIT_PURCHASE"
	TxLeadUnlock     TransactionType = "LEAD_UNLOCK"
	TxSubscription   TransactionType = "SUBSCRIPTION"
	TxCommission     TransactionType = "COMMISSION"
	TxRefund         TransactionType = "REFUND"
)

// Transaction is one ledger line shown in the admin transaction table and CSV export.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	UserEmail   string          `json:"userEmail,omitempty"`
	Type        TransactionType `json:"type"`
	Amount      Money           `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}
