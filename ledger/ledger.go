// Package ledger accumulates exchange transactions into per-asset accounts:
// a running quantity plus a timestamp-ordered history, the input for any
// later cost-basis analysis.
package ledger

import (
	"fmt"
	"sort"
)

// Ledger maps asset identifiers to their accounts. Accounts are created
// lazily on first reference and never removed. A Ledger is owned by a single
// processing loop and is read-only once the input stream is exhausted.
type Ledger struct {
	accounts map[string]*AssetAccount
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{accounts: make(map[string]*AssetAccount)}
}

// AccountError reports a lookup failure for an account that EnsureAccount
// should have just created. It signals an implementation bug, not bad input.
type AccountError struct {
	Asset string
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("no account for asset %q", e.Asset)
}

// EnsureAccount returns the account for asset, creating a zero-quantity,
// empty-history account on first use.
func (l *Ledger) EnsureAccount(asset string) *AssetAccount {
	if acct, ok := l.accounts[asset]; ok {
		return acct
	}
	acct := &AssetAccount{Name: asset}
	l.accounts[asset] = acct
	return acct
}

// Apply records tx against the accounts it touches.
//
// A convert transaction updates two accounts: the destination is credited
// with the converted quantity first, then the source is debited by the
// transacted quantity. Both accounts are ensured to exist before either is
// mutated, so an error cannot leave the ledger partially updated. The same
// transaction record ends up in both histories. A self-conversion (source
// and destination name the same asset) is a single credit of the
// destination-side quantity.
func (l *Ledger) Apply(tx Transaction) error {
	l.EnsureAccount(tx.Asset)

	if tx.Action == Convert {
		if tx.Conversion == nil {
			return fmt.Errorf("convert of %q has no destination leg", tx.Asset)
		}
		l.EnsureAccount(tx.Conversion.Name)

		dest, ok := l.accounts[tx.Conversion.Name]
		if !ok {
			return &AccountError{Asset: tx.Conversion.Name}
		}
		dest.apply(tx)

		if tx.Conversion.Name == tx.Asset {
			return nil
		}
	}

	acct, ok := l.accounts[tx.Asset]
	if !ok {
		return &AccountError{Asset: tx.Asset}
	}
	acct.apply(tx)
	return nil
}

// Account returns the account for asset, or false if no transaction has
// referenced it.
func (l *Ledger) Account(asset string) (*AssetAccount, bool) {
	acct, ok := l.accounts[asset]
	return acct, ok
}

// Assets returns every asset identifier in the ledger, sorted.
func (l *Ledger) Assets() []string {
	names := make([]string, 0, len(l.accounts))
	for name := range l.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	return len(l.accounts)
}
