package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"campusms/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStatement(t *testing.T) {
	when := time.Date(2025, 11, 3, 12, 30, 0, 0, time.UTC)
	txs := []wallet.Transaction{
		{ID: 2, WalletID: 1, AmountCents: 15000, Kind: wallet.KindDebit, Description: "Meal Booking 2025-11-03 to 2025-11-03 (lunch)", CreatedAt: when},
		{ID: 1, WalletID: 1, AmountCents: 50000, Kind: wallet.KindCredit, Description: wallet.SignupBonusDescription, CreatedAt: when.Add(-time.Hour)},
	}

	var buf bytes.Buffer
	err := WriteStatement(&buf, txs, 15000)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"date", "kind", "amount", "description"}, records[0])
	assert.Equal(t, []string{"2025-11-03 12:30:00", "debit", "150.00", "Meal Booking 2025-11-03 to 2025-11-03 (lunch)"}, records[1])
	assert.Equal(t, "credit", records[2][1])
	assert.Equal(t, "500.00", records[2][2])
	assert.Equal(t, []string{"", "", "150.00", "Total spent"}, records[3])
}

func TestWriteStatement_EmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStatement(&buf, nil, 0)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0.00", records[1][2])
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "wallet-statement-7.csv", FileName(7))
}
