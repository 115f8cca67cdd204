// Package report consumes a finished ledger: plain-text display, CSV export,
// and a SQLite store of import runs.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/cointax/ledger"
)

// Text writes a balance table followed by each asset's transaction history,
// assets sorted, histories in timestamp order.
func Text(w io.Writer, l *ledger.Ledger) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ASSET\tQUANTITY\tTXNS")
	for _, name := range l.Assets() {
		acct, _ := l.Account(name)
		fmt.Fprintf(tw, "%s\t%.8f\t%d\n", acct.Name, acct.Quantity, len(acct.History))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range l.Assets() {
		acct, _ := l.Account(name)
		fmt.Fprintf(w, "\n%s history:\n", acct.Name)
		for _, tx := range acct.History {
			line := fmt.Sprintf("  %s  %-8s %14.8f", tx.Time().Format(time.RFC3339), tx.Action, tx.Quantity)
			if tx.Conversion != nil {
				line += fmt.Sprintf("  -> %.8f %s", tx.Conversion.Quantity, tx.Conversion.Name)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
