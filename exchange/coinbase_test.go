package exchange

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/cointax/ledger"
)

const coinbaseHeader = "Timestamp,Transaction Type,Asset,Quantity Transacted,Spot Price at Transaction,Subtotal,Total,Fees,Notes"

func writeExport(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "export.csv")
	data := coinbaseHeader + "\n"
	for _, l := range lines {
		data += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestParseCoinbaseBuyRow(t *testing.T) {
	t.Parallel()

	row := []string{
		"2018-01-23T03:40:11Z", "Buy", "BTC", "0.000919",
		"10881.58", "10.00", "10.00", "0.00",
		"Bought 0.000919 BTC for $10.00 USD",
	}

	tx, err := parseCoinbaseRow(row)
	require.NoError(t, err)

	assert.Equal(t, int64(1516678811000), tx.Timestamp)
	assert.Equal(t, ledger.Buy, tx.Action)
	assert.Equal(t, "BTC", tx.Asset)
	assert.InDelta(t, 0.000919, tx.Quantity, 1e-12)
	assert.InDelta(t, 10.00, tx.Price, 1e-9)
	assert.Nil(t, tx.Conversion)
}

func TestParseCoinbaseConvertRow(t *testing.T) {
	t.Parallel()

	row := []string{
		"2021-05-03T12:00:00Z", "Convert", "XLM", "1641.4065951",
		"0.55", "900.00", "903.49", "3.49",
		"Converted 1,641.4065951 XLM to 774.762752 ALGO",
	}

	tx, err := parseCoinbaseRow(row)
	require.NoError(t, err)

	assert.Equal(t, ledger.Convert, tx.Action)
	assert.Equal(t, "XLM", tx.Asset)
	assert.InDelta(t, 1641.4065951, tx.Quantity, 1e-9)
	require.NotNil(t, tx.Conversion)
	assert.Equal(t, "ALGO", tx.Conversion.Name)
	assert.InDelta(t, 774.762752, tx.Conversion.Quantity, 1e-9)
}

func TestParseCoinbaseActionVocabulary(t *testing.T) {
	t.Parallel()

	cases := map[string]ledger.Action{
		"Buy":            ledger.Buy,
		"Sell":           ledger.Sell,
		"Rewards Income": ledger.Income,
		"Coinbase Earn":  ledger.Income,
		"Convert":        ledger.Convert,
	}
	for raw, want := range cases {
		got, err := parseCoinbaseAction(raw)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := parseCoinbaseAction("Send")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestParseCoinbaseBadFields(t *testing.T) {
	t.Parallel()

	base := []string{"2018-01-23T03:40:11Z", "Buy", "BTC", "0.5", "1", "1", "1", "0", ""}

	bad := make([]string, len(base))
	copy(bad, base)
	bad[0] = "01/23/2018 03:40"
	_, err := parseCoinbaseRow(bad)
	assert.ErrorContains(t, err, "bad timestamp")

	copy(bad, base)
	bad[3] = "half"
	_, err = parseCoinbaseRow(bad)
	assert.ErrorContains(t, err, "bad quantity")

	copy(bad, base)
	bad[6] = "ten dollars"
	_, err = parseCoinbaseRow(bad)
	assert.ErrorContains(t, err, "bad price")
}

func TestParseConvertNoteMalformed(t *testing.T) {
	t.Parallel()

	_, err := parseConvertNote("Sent 1.0 BTC to wallet")
	assert.ErrorContains(t, err, "convert note")

	_, err = parseConvertNote("")
	assert.Error(t, err)
}

func TestCoinbaseFeedReadsFile(t *testing.T) {
	t.Parallel()

	path := writeExport(t,
		"2018-01-23T03:40:11Z,Buy,BTC,0.000919,10881.58,10.00,10.00,0.00,Bought 0.000919 BTC for $10.00 USD",
		"2018-01-23T09:33:20Z,Sell,BTC,0.0005,11000.00,5.50,5.50,0.00,Sold 0.0005 BTC for $5.50 USD",
	)

	feed, err := OpenCoinbase(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = feed.Close() })

	var got []ledger.Transaction
	for {
		tx, ok, err := feed.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, tx)
	}

	require.Len(t, got, 2)
	assert.Equal(t, ledger.Buy, got[0].Action)
	assert.Equal(t, ledger.Sell, got[1].Action)
}

func TestCoinbaseFeedFatalOnBadRow(t *testing.T) {
	t.Parallel()

	path := writeExport(t,
		"2018-01-23T03:40:11Z,Buy,BTC,0.000919,10881.58,10.00,10.00,0.00,",
		"2018-01-24T03:40:11Z,Send,BTC,0.1,10881.58,10.00,10.00,0.00,",
		"2018-01-25T03:40:11Z,Buy,BTC,0.2,10881.58,10.00,10.00,0.00,",
	)

	feed, err := OpenCoinbase(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = feed.Close() })

	_, ok, err := feed.Next()
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = feed.Next()
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestOpenUnsupportedExchange(t *testing.T) {
	t.Parallel()

	_, err := Open("kraken", "whatever.csv")
	assert.ErrorIs(t, err, ErrUnsupportedExchange)
}
