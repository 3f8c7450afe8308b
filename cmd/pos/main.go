package main

import (
	"context"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"tooltrek/pos/internal/config"
	"tooltrek/pos/internal/database"
	"tooltrek/pos/internal/inventory"
	"tooltrek/pos/internal/invoice"
	"tooltrek/pos/internal/migrations"
	"tooltrek/pos/internal/returns"
	"tooltrek/pos/internal/sales"
	"tooltrek/pos/internal/settings"
	"tooltrek/pos/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	salesDB := database.Connect(cfg.SalesDBPath)
	defer salesDB.Close()
	migrations.Run(salesDB)

	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("settings: %v", err)
	}

	// Inventory stores belong to other programs; a missing one just
	// narrows the catalog.
	var sources []inventory.Source
	if db, err := database.Open(cfg.GeneralDBPath); err != nil {
		log.Printf("general inventory unavailable: %v", err)
	} else {
		defer db.Close()
		sources = append(sources, inventory.NewGeneralSource(db))
	}
	if db, err := database.Open(cfg.BearingsDBPath); err != nil {
		log.Printf("bearings inventory unavailable: %v", err)
	} else {
		defer db.Close()
		sources = append(sources, inventory.NewBearingsSource(db))
	}
	if db, err := database.Open(cfg.SealsDBPath); err != nil {
		log.Printf("seals inventory unavailable: %v", err)
	} else {
		defer db.Close()
		sources = append(sources, inventory.NewSealsSource(db))
	}
	catalog := inventory.NewCatalog(sources...)

	model := tui.NewModel(context.Background(), tui.Options{
		Sales:      sales.New(salesDB, catalog),
		Returns:    returns.New(salesDB, catalog),
		Catalog:    catalog,
		Settings:   store,
		Renderer:   invoice.NewRenderer(invoice.DefaultConfig()),
		InvoiceDir: cfg.InvoiceDir,
		ExportDir:  filepath.Join(cfg.DataDir, "exports"),
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
