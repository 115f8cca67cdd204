package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/cointax/ledger"
	"github.com/rustyeddy/cointax/pkg/id"
)

// SQLite persists finished ledgers, one import run per ULID key, so past
// imports can be queried without re-reading the export file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveLedger stores the ledger's balances and histories under a fresh import
// ID and returns it. The write is transactional: a failed save leaves no
// partial import behind.
func (s *SQLite) SaveLedger(l *ledger.Ledger, exchange, source string) (string, error) {
	importID := id.New()

	dbtx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer dbtx.Rollback()

	if _, err := dbtx.Exec(`
		INSERT INTO imports (import_id, exchange, source, created_at)
		VALUES (?, ?, ?, ?)`,
		importID, exchange, source, time.Now().UTC(),
	); err != nil {
		return "", fmt.Errorf("insert import: %w", err)
	}

	for _, name := range l.Assets() {
		acct, _ := l.Account(name)

		if _, err := dbtx.Exec(`
			INSERT INTO balances (import_id, asset, quantity)
			VALUES (?, ?, ?)`,
			importID, acct.Name, acct.Quantity,
		); err != nil {
			return "", fmt.Errorf("insert balance %s: %w", acct.Name, err)
		}

		for _, tx := range acct.History {
			var convTo sql.NullString
			var convQty sql.NullFloat64
			if tx.Conversion != nil {
				convTo = sql.NullString{String: tx.Conversion.Name, Valid: true}
				convQty = sql.NullFloat64{Float64: tx.Conversion.Quantity, Valid: true}
			}

			if _, err := dbtx.Exec(`
				INSERT INTO transactions
				(import_id, asset, ts, action, quantity, price, convert_to, convert_quantity)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				importID, acct.Name, tx.Timestamp, tx.Action.String(),
				tx.Quantity, tx.Price, convTo, convQty,
			); err != nil {
				return "", fmt.Errorf("insert transaction for %s: %w", acct.Name, err)
			}
		}
	}

	if err := dbtx.Commit(); err != nil {
		return "", err
	}
	return importID, nil
}
