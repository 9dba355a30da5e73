package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/config"
	"github.com/yourusername/whatsapp-coffee-bot/internal/infrastructure/excel"
	"github.com/yourusername/whatsapp-coffee-bot/internal/infrastructure/sheets"
	"github.com/yourusername/whatsapp-coffee-bot/internal/usecase"
)

// Volcado de un catálogo .xlsx a la hoja CatalogoWhatsApp.
//
//	go run ./cmd/import -archivo catalogo.xlsx
func main() {
	archivo := flag.String("archivo", "", "ruta del catálogo .xlsx")
	flag.Parse()

	if *archivo == "" {
		fmt.Fprintln(os.Stderr, "uso: import -archivo <catalogo.xlsx>")
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(*archivo, logger); err != nil {
		logger.Fatal("la importación falló", zap.Error(err))
	}
}

func run(archivo string, logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := sheets.NewClient(ctx, cfg.SpreadsheetID, cfg.CredentialsPath, cfg.SheetsTimeout, logger)
	if err != nil {
		return err
	}

	importer := excel.NewCatalogImporter(logger)
	admin := usecase.NewAdminUseCase(importer, client, cfg.CatalogSheet, logger)

	count, err := admin.ImportCatalog(ctx, archivo)
	if err != nil {
		return err
	}

	logger.Info("catálogo actualizado", zap.Int("productos", count))
	return nil
}
