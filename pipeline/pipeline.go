// Package pipeline drives a transaction feed into a ledger.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/cointax/exchange"
	"github.com/rustyeddy/cointax/ledger"
)

// Run consumes feed into a fresh ledger, in the feed's arrival order. The
// first error aborts the run: no partial ledger is returned. The caller owns
// closing the feed.
func Run(feed exchange.Feed, logger *zap.Logger) (*ledger.Ledger, error) {
	l := ledger.New()

	rows := 0
	for {
		tx, ok, err := feed.Next()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rows+1, err)
		}
		if !ok {
			break
		}

		if err := l.Apply(tx); err != nil {
			return nil, fmt.Errorf("apply row %d: %w", rows+1, err)
		}
		rows++

		logger.Debug("applied transaction",
			zap.String("asset", tx.Asset),
			zap.Stringer("action", tx.Action),
			zap.Float64("quantity", tx.Quantity),
			zap.Int64("timestamp", tx.Timestamp),
		)
	}

	logger.Info("import complete",
		zap.Int("rows", rows),
		zap.Int("assets", l.Len()),
	)
	return l, nil
}
