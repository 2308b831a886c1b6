package wallet

import "context"

type Repository interface {
	GetOrCreateWallet(ctx context.Context, userID int) (*Wallet, error)
	ApplyDelta(ctx context.Context, userID int, amountCents int64, kind Kind, description string) (int64, error)
	CreditOnce(ctx context.Context, userID int, dedupKey string, amountCents int64, description string) (int64, bool, error)
	Balance(ctx context.Context, userID int) (int64, error)
	Transactions(ctx context.Context, userID, limit, offset int) ([]Transaction, error)
	TotalSpent(ctx context.Context, userID int) (int64, error)
}
