package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rustyeddy/cointax/ledger"
)

// sliceFeed replays transactions from memory, failing at failAt if set.
type sliceFeed struct {
	txs    []ledger.Transaction
	pos    int
	failAt int
	err    error
}

func (f *sliceFeed) Next() (ledger.Transaction, bool, error) {
	if f.err != nil && f.pos == f.failAt {
		return ledger.Transaction{}, false, f.err
	}
	if f.pos >= len(f.txs) {
		return ledger.Transaction{}, false, nil
	}
	tx := f.txs[f.pos]
	f.pos++
	return tx, true, nil
}

func (f *sliceFeed) Close() error { return nil }

func TestRunBuildsLedger(t *testing.T) {
	t.Parallel()

	feed := &sliceFeed{txs: []ledger.Transaction{
		{Timestamp: 1516678811000, Action: ledger.Buy, Asset: "BTC", Quantity: 0.000919},
		{Timestamp: 1516700000000, Action: ledger.Sell, Asset: "BTC", Quantity: 0.0005},
		{Timestamp: 1516800000000, Action: ledger.Income, Asset: "ALGO", Quantity: 12},
	}}

	l, err := Run(feed, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, l)

	btc, ok := l.Account("BTC")
	require.True(t, ok)
	assert.InDelta(t, 0.000419, btc.Quantity, 1e-12)
	assert.Len(t, btc.History, 2)

	algo, ok := l.Account("ALGO")
	require.True(t, ok)
	assert.InDelta(t, 12.0, algo.Quantity, 1e-12)
}

func TestRunAbortsOnFeedError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad row")
	feed := &sliceFeed{
		txs: []ledger.Transaction{
			{Timestamp: 1, Action: ledger.Buy, Asset: "BTC", Quantity: 1},
			{Timestamp: 2, Action: ledger.Buy, Asset: "BTC", Quantity: 1},
		},
		failAt: 1,
		err:    boom,
	}

	l, err := Run(feed, zap.NewNop())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, l)
}

func TestRunAbortsOnApplyError(t *testing.T) {
	t.Parallel()

	// Convert with no destination leg violates the adapter contract.
	feed := &sliceFeed{txs: []ledger.Transaction{
		{Timestamp: 1, Action: ledger.Convert, Asset: "BTC", Quantity: 1},
	}}

	l, err := Run(feed, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, l)
}
