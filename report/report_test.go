package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/cointax/ledger"
)

// testLedger builds the ledger used across the sink tests: a BTC buy/sell
// pair plus an XLM to ALGO conversion.
func testLedger(t *testing.T) *ledger.Ledger {
	t.Helper()

	l := ledger.New()
	require.NoError(t, l.Apply(ledger.Transaction{
		Timestamp: 1516678811000, Action: ledger.Buy, Asset: "BTC", Quantity: 0.000919, Price: 10.00,
	}))
	require.NoError(t, l.Apply(ledger.Transaction{
		Timestamp: 1516700000000, Action: ledger.Sell, Asset: "BTC", Quantity: 0.0005, Price: 5.50,
	}))
	require.NoError(t, l.Apply(ledger.Transaction{
		Timestamp:  1620000000000,
		Action:     ledger.Convert,
		Asset:      "XLM",
		Quantity:   1641.4065951,
		Price:      903.49,
		Conversion: &ledger.Conversion{Name: "ALGO", Quantity: 774.762752},
	}))
	return l
}
