package migrations

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the sales database schema and backfills columns added after
// the original release. Older databases in the field may lack those
// columns, so each one is added only when PRAGMA table_info misses it.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sales (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            bill_number TEXT NOT NULL UNIQUE,
            bill_number_numeric INTEGER,
            customer_name TEXT DEFAULT '',
            customer_phone TEXT DEFAULT '',
            customer_address TEXT DEFAULT '',
            sale_date TEXT NOT NULL,
            sale_time TEXT NOT NULL,
            total_items INTEGER NOT NULL DEFAULT 0,
            subtotal REAL NOT NULL DEFAULT 0,
            discount REAL NOT NULL DEFAULT 0,
            discount_type TEXT DEFAULT 'Amount',
            tax REAL NOT NULL DEFAULT 0,
            tax_rate REAL NOT NULL DEFAULT 0,
            grand_total REAL NOT NULL DEFAULT 0,
            payment_method TEXT DEFAULT 'Cash',
            payment_status TEXT DEFAULT 'Paid',
            notes TEXT DEFAULT '',
            return_fee_type TEXT DEFAULT '',
            return_fee_amount REAL NOT NULL DEFAULT 0,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS sale_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            sale_id INTEGER NOT NULL,
            bill_number TEXT NOT NULL,
            item_id TEXT NOT NULL,
            display_name TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            unit_price REAL NOT NULL,
            total_price REAL NOT NULL,
            unit_cost REAL NOT NULL DEFAULT 0,
            total_cost REAL NOT NULL DEFAULT 0,
            profit REAL NOT NULL DEFAULT 0,
            profit_percentage REAL NOT NULL DEFAULT 0,
            inventory_type TEXT DEFAULT '',
            database_source TEXT DEFAULT '',
            FOREIGN KEY(sale_id) REFERENCES sales(id)
        );`,
		`CREATE TABLE IF NOT EXISTS returns (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            return_number TEXT NOT NULL UNIQUE,
            sale_id INTEGER NOT NULL,
            bill_number TEXT NOT NULL,
            customer_name TEXT DEFAULT '',
            return_date TEXT NOT NULL,
            return_time TEXT NOT NULL,
            total_items INTEGER NOT NULL DEFAULT 0,
            total_refund REAL NOT NULL DEFAULT 0,
            restocking_fee REAL NOT NULL DEFAULT 0,
            refund_method TEXT DEFAULT 'Cash',
            reason TEXT DEFAULT '',
            notes TEXT DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY(sale_id) REFERENCES sales(id)
        );`,
		`CREATE TABLE IF NOT EXISTS return_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            return_id INTEGER NOT NULL,
            sale_id INTEGER NOT NULL,
            item_id TEXT NOT NULL,
            display_name TEXT NOT NULL,
            quantity INTEGER NOT NULL,
            unit_price REAL NOT NULL,
            refund_per_unit REAL NOT NULL,
            total_refund REAL NOT NULL,
            condition TEXT DEFAULT 'Good',
            inventory_type TEXT DEFAULT '',
            database_source TEXT DEFAULT '',
            FOREIGN KEY(return_id) REFERENCES returns(id),
            FOREIGN KEY(sale_id) REFERENCES sales(id)
        );`,
		`CREATE INDEX IF NOT EXISTS idx_sales_bill_number ON sales(bill_number);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales(sale_date);`,
		`CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales(customer_name);`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_sale_id ON sale_items(sale_id);`,
		`CREATE INDEX IF NOT EXISTS idx_return_items_sale ON return_items(sale_id, item_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	backfill := []struct {
		table, column, definition string
	}{
		{"sales", "customer_phone", "TEXT DEFAULT ''"},
		{"sales", "customer_address", "TEXT DEFAULT ''"},
		{"sales", "sale_time", "TEXT DEFAULT ''"},
		{"sales", "discount_type", "TEXT DEFAULT 'Amount'"},
		{"sales", "tax_rate", "REAL DEFAULT 0"},
		{"sales", "payment_method", "TEXT DEFAULT 'Cash'"},
		{"sales", "payment_status", "TEXT DEFAULT 'Paid'"},
		{"sales", "notes", "TEXT DEFAULT ''"},
		{"sales", "return_fee_type", "TEXT DEFAULT ''"},
		{"sales", "return_fee_amount", "REAL DEFAULT 0"},
		{"sales", "updated_at", "DATETIME"},
		{"sale_items", "unit_cost", "REAL DEFAULT 0"},
		{"sale_items", "total_cost", "REAL DEFAULT 0"},
		{"sale_items", "profit", "REAL DEFAULT 0"},
		{"sale_items", "profit_percentage", "REAL DEFAULT 0"},
		{"sale_items", "inventory_type", "TEXT DEFAULT ''"},
		{"sale_items", "database_source", "TEXT DEFAULT ''"},
	}

	for _, col := range backfill {
		if err := addColumnIfMissing(db, col.table, col.column, col.definition); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}

func addColumnIfMissing(db *sqlx.DB, table, column, definition string) error {
	rows, err := db.Queryx(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		cols := map[string]interface{}{}
		if err := rows.MapScan(cols); err != nil {
			return err
		}
		if name, ok := cols["name"].(string); ok && name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}
