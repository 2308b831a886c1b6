package wallet

import (
	"context"
	"errors"

	"campusms/internal/logger"
	"campusms/internal/metrics"
)

// Notifier receives balance-changed events after a successful commit.
// Dispatch failures must never affect the committed ledger state, so the
// engine only logs them.
type Notifier interface {
	BalanceChanged(ctx context.Context, userID int, newBalanceCents int64, description string) error
}

type Service interface {
	EnsureWallet(ctx context.Context, userID int) (*Wallet, error)
	Credit(ctx context.Context, userID int, amountCents int64, description string) (int64, error)
	CreditOnce(ctx context.Context, userID int, dedupKey string, amountCents int64, description string) (int64, error)
	DebitForMeal(ctx context.Context, userID int, amountCents int64, description string) (int64, error)
	Balance(ctx context.Context, userID int) (int64, error)
	Transactions(ctx context.Context, userID, limit, offset int) ([]Transaction, error)
	TotalSpent(ctx context.Context, userID int) (int64, error)
}

type service struct {
	repo     Repository
	notifier Notifier
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) EnsureWallet(ctx context.Context, userID int) (*Wallet, error) {
	return s.repo.GetOrCreateWallet(ctx, userID)
}

func (s *service) Credit(ctx context.Context, userID int, amountCents int64, description string) (int64, error) {
	newBalance, err := s.repo.ApplyDelta(ctx, userID, amountCents, KindCredit, description)
	if err != nil {
		metrics.RecordLedgerOp("credit", "error")
		return 0, err
	}

	metrics.RecordLedgerOp("credit", "success")
	s.emitBalanceChanged(userID, newBalance, description)
	return newBalance, nil
}

func (s *service) CreditOnce(ctx context.Context, userID int, dedupKey string, amountCents int64, description string) (int64, error) {
	balance, credited, err := s.repo.CreditOnce(ctx, userID, dedupKey, amountCents, description)
	if err != nil {
		metrics.RecordLedgerOp("credit", "error")
		return 0, err
	}

	if !credited {
		metrics.DuplicateTopUpsTotal.Inc()
		logger.Infof("Duplicate gateway credit suppressed: user=%d key=%s", userID, dedupKey)
		return balance, nil
	}

	metrics.RecordLedgerOp("credit", "success")
	metrics.WalletTopUpsTotal.Inc()
	s.emitBalanceChanged(userID, balance, description)
	return balance, nil
}

func (s *service) DebitForMeal(ctx context.Context, userID int, amountCents int64, description string) (int64, error) {
	newBalance, err := s.repo.ApplyDelta(ctx, userID, amountCents, KindDebit, description)
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			metrics.RecordLedgerOp("debit", "insufficient_funds")
		} else {
			metrics.RecordLedgerOp("debit", "error")
		}
		return 0, err
	}

	metrics.RecordLedgerOp("debit", "success")
	s.emitBalanceChanged(userID, newBalance, description)
	return newBalance, nil
}

func (s *service) Balance(ctx context.Context, userID int) (int64, error) {
	return s.repo.Balance(ctx, userID)
}

func (s *service) Transactions(ctx context.Context, userID, limit, offset int) ([]Transaction, error) {
	return s.repo.Transactions(ctx, userID, limit, offset)
}

func (s *service) TotalSpent(ctx context.Context, userID int) (int64, error) {
	return s.repo.TotalSpent(ctx, userID)
}

func (s *service) emitBalanceChanged(userID int, newBalanceCents int64, description string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.BalanceChanged(context.Background(), userID, newBalanceCents, description); err != nil {
		logger.Errorf("Failed to queue balance notification for user %d: %v", userID, err)
	}
}
