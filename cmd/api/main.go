package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ricardofs/confere/internal/config"
	"github.com/ricardofs/confere/internal/database"
	confereHttp "github.com/ricardofs/confere/internal/http"
	importHandler "github.com/ricardofs/confere/internal/http/importstmt"
	invoiceHandler "github.com/ricardofs/confere/internal/http/invoice"
	reconHandler "github.com/ricardofs/confere/internal/http/recon"
	stmtHandler "github.com/ricardofs/confere/internal/http/statement"
	"github.com/ricardofs/confere/internal/importer"
	"github.com/ricardofs/confere/internal/invoice"
	invoiceStore "github.com/ricardofs/confere/internal/invoice/store"
	"github.com/ricardofs/confere/internal/recon"
	reconStore "github.com/ricardofs/confere/internal/recon/store"
	"github.com/ricardofs/confere/internal/statement"
	stmtStore "github.com/ricardofs/confere/internal/statement/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		statementService = statement.NewService(stmtStore.New(db))
		invoiceService   = invoice.NewService(invoiceStore.New(db))
		importService    = importer.NewService()
		reconService     = recon.NewService(reconStore.New(db), cfg.Report.Workers)
	)

	var (
		statementH = stmtHandler.NewHandler(statementService)
		invoiceH   = invoiceHandler.NewHandler(invoiceService)
		importH    = importHandler.NewHandler(importService, statementService)
		reconH     = reconHandler.NewHandler(reconService)
	)

	router := confereHttp.New(statementH, invoiceH, importH, reconH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
