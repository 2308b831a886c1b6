package wallet

import (
	"fmt"
	"time"
)

// Kind classifies a ledger entry. Amounts are stored as positive
// magnitudes; the kind carries the sign.
type Kind string

const (
	KindCredit Kind = "credit"
	KindDebit  Kind = "debit"
)

const SignupBonusDescription = "Initial Signup Bonus"

// Wallet is the per-student stored balance, in minor currency units.
type Wallet struct {
	ID           int       `db:"id" json:"id"`
	UserID       int       `db:"user_id" json:"user_id"`
	BalanceCents int64     `db:"balance_cents" json:"balance_cents"`
	Currency     string    `db:"currency" json:"currency"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FormatAmount renders minor units as a decimal string, e.g. 50000 -> "500.00".
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Transaction is an immutable ledger entry. For every wallet the sum of
// credit amounts minus the sum of debit amounts equals the balance.
type Transaction struct {
	ID          int       `db:"id" json:"id"`
	WalletID    int       `db:"wallet_id" json:"wallet_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Kind        Kind      `db:"kind" json:"kind"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
