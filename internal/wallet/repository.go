package wallet

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrIdentityNotFound  = errors.New("identity not found")
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

type repository struct {
	db               *sqlx.DB
	signupBonusCents int64
}

func NewRepository(db *sqlx.DB, signupBonusCents int64) Repository {
	return &repository{db: db, signupBonusCents: signupBonusCents}
}

func (r *repository) GetOrCreateWallet(ctx context.Context, userID int) (*Wallet, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	w, err := r.lockOrCreateWallet(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *repository) ApplyDelta(ctx context.Context, userID int, amountCents int64, kind Kind, description string) (int64, error) {
	if amountCents <= 0 {
		return 0, ErrNonPositiveAmount
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	newBalance, err := r.applyDeltaTx(ctx, tx, userID, amountCents, kind, description)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *repository) CreditOnce(ctx context.Context, userID int, dedupKey string, amountCents int64, description string) (int64, bool, error) {
	if amountCents <= 0 {
		return 0, false, ErrNonPositiveAmount
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback()

	// The dedup key insert and the balance update commit together, so a
	// replayed gateway callback either sees the key and no-ops or loses the
	// insert race and blocks until the first delivery commits.
	res, err := tx.ExecContext(ctx,
		`INSERT INTO gateway_credits (dedup_key, user_id, amount_cents)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (dedup_key) DO NOTHING`,
		dedupKey, userID, amountCents,
	)
	if err != nil {
		return 0, false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, false, err
	}

	if inserted == 0 {
		var balance int64
		err := tx.GetContext(ctx, &balance,
			`SELECT balance_cents FROM wallets WHERE user_id = $1`, userID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return 0, false, err
		}
		if err := tx.Commit(); err != nil {
			return 0, false, err
		}
		return balance, false, nil
	}

	newBalance, err := r.applyDeltaTx(ctx, tx, userID, amountCents, KindCredit, description)
	if err != nil {
		return 0, false, err
	}

	if err := tx.Commit(); err != nil {
		return 0, false, err
	}
	return newBalance, true, nil
}

func (r *repository) Balance(ctx context.Context, userID int) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance,
		`SELECT balance_cents FROM wallets WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		w, err := r.GetOrCreateWallet(ctx, userID)
		if err != nil {
			return 0, err
		}
		return w.BalanceCents, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *repository) Transactions(ctx context.Context, userID, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}

	var walletID int
	err := r.db.GetContext(ctx, &walletID,
		`SELECT id FROM wallets WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Transaction{}, nil
		}
		return nil, err
	}

	var txs []Transaction
	err = r.db.SelectContext(ctx, &txs, `
		SELECT id, wallet_id, amount_cents, kind, description, created_at
		FROM wallet_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, walletID, limit, offset)
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *repository) TotalSpent(ctx context.Context, userID int) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(t.amount_cents), 0)
		FROM wallet_transactions t
		JOIN wallets w ON t.wallet_id = w.id
		WHERE w.user_id = $1 AND t.kind = 'debit'
	`, userID)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// applyDeltaTx performs the guarded read-modify-write on the locked wallet
// row. The balance update and the ledger append share the caller's
// transaction; neither is ever visible without the other.
func (r *repository) applyDeltaTx(ctx context.Context, tx *sqlx.Tx, userID int, amountCents int64, kind Kind, description string) (int64, error) {
	w, err := r.lockOrCreateWallet(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	delta := amountCents
	if kind == KindDebit {
		delta = -amountCents
	}

	newBalance := w.BalanceCents + delta
	if newBalance < 0 {
		return 0, ErrInsufficientFunds
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE wallets
		 SET balance_cents = $1, updated_at = NOW()
		 WHERE id = $2`,
		newBalance, w.ID,
	)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO wallet_transactions (wallet_id, amount_cents, kind, description)
		 VALUES ($1, $2, $3, $4)`,
		w.ID, amountCents, kind, description,
	)
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// lockOrCreateWallet returns the wallet row locked FOR UPDATE, creating it
// with the signup bonus on first touch. ON CONFLICT DO NOTHING resolves a
// race between two first touches to a single wallet and a single bonus row.
func (r *repository) lockOrCreateWallet(ctx context.Context, tx *sqlx.Tx, userID int) (*Wallet, error) {
	var exists bool
	if err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrIdentityNotFound
	}

	w := &Wallet{}
	err := tx.QueryRowxContext(ctx,
		`SELECT id, user_id, balance_cents, currency, created_at, updated_at
		 FROM wallets
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).StructScan(w)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO wallets (user_id, balance_cents)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO NOTHING
		 RETURNING id, user_id, balance_cents, currency, created_at, updated_at`,
		userID, r.signupBonusCents,
	).StructScan(w)
	if errors.Is(err, sql.ErrNoRows) {
		// Lost the creation race; the winner has committed, lock its row.
		err = tx.QueryRowxContext(ctx,
			`SELECT id, user_id, balance_cents, currency, created_at, updated_at
			 FROM wallets
			 WHERE user_id = $1
			 FOR UPDATE`,
			userID,
		).StructScan(w)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	if err != nil {
		return nil, err
	}

	if r.signupBonusCents > 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO wallet_transactions (wallet_id, amount_cents, kind, description)
			 VALUES ($1, $2, $3, $4)`,
			w.ID, r.signupBonusCents, KindCredit, SignupBonusDescription,
		)
		if err != nil {
			return nil, err
		}
	}

	return w, nil
}
