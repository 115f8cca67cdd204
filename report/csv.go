package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/cointax/ledger"
)

// WriteBalancesCSV writes one row per asset: asset, final quantity,
// transaction count.
func WriteBalancesCSV(path string, l *ledger.Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"asset", "quantity", "transactions"}); err != nil {
		return err
	}

	for _, name := range l.Assets() {
		acct, _ := l.Account(name)
		w.Write([]string{
			acct.Name,
			fl(acct.Quantity),
			strconv.Itoa(len(acct.History)),
		})
	}

	w.Flush()
	return w.Error()
}

// WriteHistoryCSV writes every account's history, one row per (account,
// transaction) pair. Convert rows appear once per touched account, so a
// two-asset conversion produces two rows.
func WriteHistoryCSV(path string, l *ledger.Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"asset", "time", "action", "quantity", "price", "convert_to", "convert_quantity"}); err != nil {
		return err
	}

	for _, name := range l.Assets() {
		acct, _ := l.Account(name)
		for _, tx := range acct.History {
			convTo, convQty := "", ""
			if tx.Conversion != nil {
				convTo = tx.Conversion.Name
				convQty = fl(tx.Conversion.Quantity)
			}
			w.Write([]string{
				acct.Name,
				tx.Time().Format(time.RFC3339),
				tx.Action.String(),
				fl(tx.Quantity),
				fl(tx.Price),
				convTo,
				convQty,
			})
		}
	}

	w.Flush()
	return w.Error()
}

func fl(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
