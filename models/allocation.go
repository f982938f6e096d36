package models

import "github.com/shopspring/decimal"

// Allocation is the amount a client holds in one asset. The amount is kept
// encrypted at rest; Amount is only populated after decryption.
type Allocation struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clienteId"`
	AssetCode string `json:"ativo"`

	// Amount is the decrypted allocation amount. It serializes as a decimal
	// string.
	Amount decimal.Decimal `json:"valor"`

	// EncryptedAmount is the stored ciphertext token and never leaves the
	// server.
	EncryptedAmount string `json:"-"`
}

// AllocationRequest is the body of a record-allocation request. Amount
// accepts both JSON numbers and numeric strings.
type AllocationRequest struct {
	AssetCode string          `json:"ativo"`
	Amount    decimal.Decimal `json:"valor"`
}

// AllocationUpdate describes an in-place edit of one allocation. Nil
// fields are left untouched.
type AllocationUpdate struct {
	ID        int64            `json:"-"`
	AssetCode *string          `json:"ativo,omitempty"`
	Amount    *decimal.Decimal `json:"valor,omitempty"`

	// EncryptedAmount carries the ciphertext of Amount down to storage.
	EncryptedAmount *string `json:"-"`
}

// AllocationCount is the obfuscated number of allocations of one client.
type AllocationCount struct {
	ClientID int64  `json:"clienteId"`
	Count    string `json:"numeroAlocacoes"`
}
