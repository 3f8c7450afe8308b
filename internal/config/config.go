package config

import (
	"os"
	"path/filepath"
)

// Config holds application configuration values.
type Config struct {
	DataDir        string
	SalesDBPath    string
	GeneralDBPath  string
	BearingsDBPath string
	SealsDBPath    string
	SettingsPath   string
	InvoiceDir     string
}

// Load reads configuration from environment variables with reasonable defaults.
// All paths default to living under the data directory.
func Load() Config {
	dataDir := os.Getenv("POS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}

	cfg := Config{
		DataDir:        dataDir,
		SalesDBPath:    os.Getenv("POS_SALES_DB"),
		GeneralDBPath:  os.Getenv("POS_INVENTORY_DB"),
		BearingsDBPath: os.Getenv("POS_BEARINGS_DB"),
		SealsDBPath:    os.Getenv("POS_SEALS_DB"),
		SettingsPath:   os.Getenv("POS_SETTINGS_FILE"),
		InvoiceDir:     os.Getenv("POS_INVOICE_DIR"),
	}

	if cfg.SalesDBPath == "" {
		cfg.SalesDBPath = filepath.Join(dataDir, "sales.db")
	}
	if cfg.GeneralDBPath == "" {
		cfg.GeneralDBPath = filepath.Join(dataDir, "inventory.db")
	}
	if cfg.BearingsDBPath == "" {
		cfg.BearingsDBPath = filepath.Join(dataDir, "bearings_inventory.db")
	}
	if cfg.SealsDBPath == "" {
		cfg.SealsDBPath = filepath.Join(dataDir, "seals.db")
	}
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = filepath.Join(dataDir, "sales_settings.json")
	}
	if cfg.InvoiceDir == "" {
		cfg.InvoiceDir = filepath.Join(dataDir, "invoices")
	}

	return cfg
}
