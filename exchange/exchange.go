// Package exchange turns raw exchange export files into canonical ledger
// transactions. Each supported exchange gets its own adapter; Open picks one
// by name.
package exchange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/cointax/ledger"
)

var (
	// ErrUnknownAction means an export row carried an action keyword outside
	// the exchange's recognized vocabulary.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnsupportedExchange means no adapter exists for the requested
	// exchange identifier.
	ErrUnsupportedExchange = errors.New("exchange not supported")
)

// Feed yields canonical transactions parsed from one export file, in file
// row order (which is not necessarily timestamp order). A feed is lazy,
// finite and cannot be restarted. Next returns false with a nil error once
// the file is exhausted; any error is fatal to the run.
type Feed interface {
	Next() (ledger.Transaction, bool, error)
	Close() error
}

// Open returns a feed over the export file at path for the named exchange.
func Open(exchange, path string) (Feed, error) {
	switch strings.ToLower(strings.TrimSpace(exchange)) {
	case "coinbase":
		return OpenCoinbase(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExchange, exchange)
	}
}
