package report

const Schema = `
CREATE TABLE IF NOT EXISTS imports (
	import_id TEXT PRIMARY KEY,
	exchange TEXT NOT NULL,
	source TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS balances (
	import_id TEXT NOT NULL,
	asset TEXT NOT NULL,
	quantity REAL NOT NULL,
	PRIMARY KEY (import_id, asset)
);

CREATE TABLE IF NOT EXISTS transactions (
	import_id TEXT NOT NULL,
	asset TEXT NOT NULL,
	ts INTEGER NOT NULL,
	action TEXT NOT NULL,
	quantity REAL NOT NULL,
	price REAL NOT NULL,
	convert_to TEXT,
	convert_quantity REAL
);

CREATE INDEX IF NOT EXISTS idx_transactions_import_asset ON transactions(import_id, asset, ts);
`
