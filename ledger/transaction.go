package ledger

import (
	"fmt"
	"time"
)

// Action identifies the effect a transaction has on an asset balance.
type Action int

const (
	Buy Action = iota
	Sell
	Income
	Convert
)

func (a Action) String() string {
	switch a {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case Income:
		return "income"
	case Convert:
		return "convert"
	default:
		return "unknown"
	}
}

// ParseAction is the inverse of Action.String. It is used when reading
// transactions back out of a store.
func ParseAction(s string) (Action, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	case "income":
		return Income, nil
	case "convert":
		return Convert, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// Conversion is the destination leg of a convert transaction: the asset
// received and how much of it.
type Conversion struct {
	Name     string
	Quantity float64
}

// Transaction is one canonical exchange event. Adapters produce it from a raw
// export row; the ledger consumes it. Quantity is always stored positive,
// Action determines the sign of the effect. Price is the reported total at
// transaction time and does not participate in balance math.
//
// Conversion is set if and only if Action is Convert; a convert transaction
// without it is a caller contract violation.
type Transaction struct {
	Timestamp  int64 // epoch milliseconds
	Action     Action
	Asset      string
	Quantity   float64
	Price      float64
	Conversion *Conversion
}

// Time returns the transaction timestamp as UTC wall-clock time.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp).UTC()
}
