package exchange

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/cointax/ledger"
)

// Column layout of a coinbase transaction export:
//
//	0 timestamp (RFC3339)
//	1 action
//	2 asset
//	3 quantity
//	6 total price
//	8 notes ("Converted <qty> <asset> to <qty> <asset>" on convert rows)
const (
	cbTimestamp = 0
	cbAction    = 1
	cbAsset     = 2
	cbQuantity  = 3
	cbPrice     = 6
	cbNotes     = 8
)

// CoinbaseFeed reads a coinbase transaction export. The first row is the
// export header and is skipped unconditionally.
type CoinbaseFeed struct {
	f *os.File
	r *csv.Reader

	sawHeader bool
}

// OpenCoinbase opens a feed over the coinbase export at path.
func OpenCoinbase(path string) (*CoinbaseFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	return &CoinbaseFeed{f: f, r: r}, nil
}

func (c *CoinbaseFeed) Close() error {
	if c.f != nil {
		return c.f.Close()
	}
	return nil
}

func (c *CoinbaseFeed) Next() (ledger.Transaction, bool, error) {
	for {
		row, err := c.r.Read()
		if err == io.EOF {
			return ledger.Transaction{}, false, nil
		}
		if err != nil {
			return ledger.Transaction{}, false, err
		}
		if len(row) == 0 {
			continue
		}

		if !c.sawHeader {
			c.sawHeader = true
			continue
		}

		tx, err := parseCoinbaseRow(row)
		if err != nil {
			return ledger.Transaction{}, false, err
		}
		return tx, true, nil
	}
}

func parseCoinbaseRow(row []string) (ledger.Transaction, error) {
	if len(row) <= cbPrice {
		return ledger.Transaction{}, fmt.Errorf("coinbase: short row, %d fields", len(row))
	}

	ts := strings.TrimSpace(row[cbTimestamp])
	when, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("coinbase: bad timestamp %q: %w", ts, err)
	}

	action, err := parseCoinbaseAction(strings.TrimSpace(row[cbAction]))
	if err != nil {
		return ledger.Transaction{}, err
	}

	asset := strings.TrimSpace(row[cbAsset])
	if asset == "" {
		return ledger.Transaction{}, fmt.Errorf("coinbase: row %s has no asset", ts)
	}

	qty, err := parseAmount(row[cbQuantity])
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("coinbase: bad quantity %q: %w", row[cbQuantity], err)
	}
	price, err := parseAmount(row[cbPrice])
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("coinbase: bad price %q: %w", row[cbPrice], err)
	}

	tx := ledger.Transaction{
		Timestamp: when.UnixMilli(),
		Action:    action,
		Asset:     asset,
		Quantity:  qty,
		Price:     price,
	}

	if action == ledger.Convert {
		if len(row) <= cbNotes {
			return ledger.Transaction{}, fmt.Errorf("coinbase: convert row %s has no notes field", ts)
		}
		conv, err := parseConvertNote(row[cbNotes])
		if err != nil {
			return ledger.Transaction{}, err
		}
		tx.Conversion = &conv
	}

	return tx, nil
}

func parseCoinbaseAction(raw string) (ledger.Action, error) {
	switch raw {
	case "Buy":
		return ledger.Buy, nil
	case "Sell":
		return ledger.Sell, nil
	case "Rewards Income", "Coinbase Earn":
		return ledger.Income, nil
	case "Convert":
		return ledger.Convert, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
}

// parseConvertNote extracts the destination leg from a convert row's notes,
// e.g. "Converted 1,641.4065951 XLM to 774.762752 ALGO".
func parseConvertNote(note string) (ledger.Conversion, error) {
	fields := strings.Fields(strings.TrimSpace(note))
	if len(fields) != 6 || fields[0] != "Converted" || fields[3] != "to" {
		return ledger.Conversion{}, fmt.Errorf("coinbase: unrecognized convert note %q", note)
	}

	qty, err := parseAmount(fields[4])
	if err != nil {
		return ledger.Conversion{}, fmt.Errorf("coinbase: bad converted quantity %q: %w", fields[4], err)
	}
	return ledger.Conversion{Name: fields[5], Quantity: qty}, nil
}

// parseAmount parses a numeric export field, tolerating thousands separators
// and a leading dollar sign.
func parseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}
