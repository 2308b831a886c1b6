package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"campusms/internal/wallet"
)

// WriteStatement renders a wallet's transaction history as CSV, newest
// first, with a total-spent footer.
func WriteStatement(w io.Writer, txs []wallet.Transaction, totalSpentCents int64) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "kind", "amount", "description"}); err != nil {
		return err
	}

	for _, tx := range txs {
		record := []string{
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
			string(tx.Kind),
			wallet.FormatAmount(tx.AmountCents),
			tx.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{"", "", wallet.FormatAmount(totalSpentCents), "Total spent"}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// FileName is the attachment name for a user's statement download.
func FileName(userID int) string {
	return fmt.Sprintf("wallet-statement-%d.csv", userID)
}
