package ledger

import "sort"

// AssetAccount tracks a single asset: its running signed balance and every
// transaction that touched it.
//
// History is kept in ascending timestamp order. Records with equal timestamps
// land at whatever position the binary search finds, so their relative order
// is not guaranteed to match arrival order. The running Quantity, by
// contrast, is always accumulated in arrival order.
type AssetAccount struct {
	Name     string
	Quantity float64
	History  []Transaction
}

// insert places tx into History, preserving ascending timestamp order.
func (a *AssetAccount) insert(tx Transaction) {
	pos := sort.Search(len(a.History), func(i int) bool {
		return a.History[i].Timestamp >= tx.Timestamp
	})
	a.History = append(a.History, Transaction{})
	copy(a.History[pos+1:], a.History[pos:])
	a.History[pos] = tx
}

// apply adjusts the balance by the transaction's effect on this account and
// records it in the history.
//
// A convert transaction is a simultaneous sell of the source asset and buy of
// the destination asset, so its effect depends on which side this account is
// on. When both sides name the same asset the account is credited with the
// destination-side quantity.
func (a *AssetAccount) apply(tx Transaction) {
	switch tx.Action {
	case Buy:
		a.Quantity += tx.Quantity
	case Sell:
		a.Quantity -= tx.Quantity
	case Income:
		a.Quantity += tx.Quantity
	case Convert:
		if a.Name == tx.Conversion.Name {
			a.Quantity += tx.Conversion.Quantity
		} else {
			a.Quantity -= tx.Quantity
		}
	}

	a.insert(tx)
}
