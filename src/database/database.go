package database

import (
	"database/sql"
	stdlog "log"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Ensuring database schema", "databasePath", databasePath)
	} else {
		stdlog.Println("Ensuring database schema for:", databasePath)
	}

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS affiliate_transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		order_id TEXT NOT NULL,
		item_id INTEGER NOT NULL,
		purchase_time TEXT,
		complete_time TEXT,
		click_time TEXT,
		qty INTEGER,
		item_price TEXT,
		actual_amount TEXT,
		net_commission TEXT,
		platform_commission TEXT,
		seller_commission TEXT,
		refund TEXT,
		commission_rate TEXT,
		item_rate TEXT,
		status TEXT,
		channel TEXT,
		category TEXT,
		item_name TEXT,
		shop_name TEXT,
		attribution_type TEXT,
		sub_id1 TEXT,
		sub_id2 TEXT,
		sub_id3 TEXT,
		sub_id4 TEXT,
		sub_id5 TEXT,
		UNIQUE(user_id, order_id, item_id)
	);

	CREATE TABLE IF NOT EXISTS clicks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		click_time TEXT NOT NULL,
		region TEXT,
		referrer TEXT,
		click_pv INTEGER NOT NULL DEFAULT 1,
		sub_id1 TEXT,
		sub_id2 TEXT,
		sub_id3 TEXT,
		sub_id4 TEXT,
		sub_id5 TEXT
	);

	CREATE TABLE IF NOT EXISTS upload_history (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		file_name TEXT NOT NULL,
		record_type TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		file_size INTEGER NOT NULL,
		uploaded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_purchase
		ON affiliate_transactions(user_id, purchase_time);
	CREATE INDEX IF NOT EXISTS idx_clicks_user_time
		ON clicks(user_id, click_time);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}

	migrateTransactionsTable()

	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

// migrateTransactionsTable adds columns introduced after the first release
// to databases created under the older schema.
func migrateTransactionsTable() {
	rows, err := DB.Query("PRAGMA table_info(affiliate_transactions)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for affiliate_transactions", "error", err)
		} else {
			stdlog.Printf("Error querying table schema: %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk, notnullVal int
		var name, dataType string
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info", "error", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info", "error", err)
		}
		return
	}

	for _, col := range []string{"attribution_type", "item_rate"} {
		if columnExists[col] {
			continue
		}
		if _, err := DB.Exec("ALTER TABLE affiliate_transactions ADD COLUMN " + col + " TEXT"); err != nil {
			if logger.L != nil {
				logger.L.Error("Error adding column to affiliate_transactions", "column", col, "error", err)
			}
		} else if logger.L != nil {
			logger.L.Info("Added column to affiliate_transactions", "column", col)
		}
	}
}
