package report

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rustyeddy/cointax/ledger"
)

// ImportRecord describes one stored import run.
type ImportRecord struct {
	ImportID  string
	Exchange  string
	Source    string
	CreatedAt time.Time
}

// Balance is one asset's final quantity within an import run.
type Balance struct {
	Asset    string
	Quantity float64
}

// ListImports returns every stored import run, oldest first (ULID keys sort
// by creation time).
func (s *SQLite) ListImports() ([]ImportRecord, error) {
	rows, err := s.db.Query(`
		SELECT import_id, exchange, source, created_at
		FROM imports
		ORDER BY import_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ImportRecord
	for rows.Next() {
		var rec ImportRecord
		if err := rows.Scan(&rec.ImportID, &rec.Exchange, &rec.Source, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBalances returns the per-asset balances of one import run, sorted by
// asset.
func (s *SQLite) GetBalances(importID string) ([]Balance, error) {
	rows, err := s.db.Query(`
		SELECT asset, quantity
		FROM balances
		WHERE import_id = ?
		ORDER BY asset ASC`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Balance
	for rows.Next() {
		var b Balance
		if err := rows.Scan(&b.Asset, &b.Quantity); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("import %q not found", importID)
	}
	return out, nil
}

// ListTransactions returns one account's stored history in timestamp order.
func (s *SQLite) ListTransactions(importID, asset string) ([]ledger.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT ts, action, quantity, price, convert_to, convert_quantity
		FROM transactions
		WHERE import_id = ? AND asset = ?
		ORDER BY ts ASC`, importID, asset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		var (
			tx      ledger.Transaction
			action  string
			convTo  sql.NullString
			convQty sql.NullFloat64
		)
		if err := rows.Scan(&tx.Timestamp, &action, &tx.Quantity, &tx.Price, &convTo, &convQty); err != nil {
			return nil, err
		}

		tx.Asset = asset
		tx.Action, err = ledger.ParseAction(action)
		if err != nil {
			return nil, err
		}
		if convTo.Valid {
			tx.Conversion = &ledger.Conversion{Name: convTo.String, Quantity: convQty.Float64}
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
