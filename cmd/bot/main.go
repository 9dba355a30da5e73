package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/whatsapp-coffee-bot/config"
	"github.com/yourusername/whatsapp-coffee-bot/internal/delivery/whatsapp"
	"github.com/yourusername/whatsapp-coffee-bot/internal/infrastructure/sheets"
	"github.com/yourusername/whatsapp-coffee-bot/internal/infrastructure/storage"
	"github.com/yourusername/whatsapp-coffee-bot/internal/usecase"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("el bot terminó con error", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := sheets.NewClient(ctx, cfg.SpreadsheetID, cfg.CredentialsPath, cfg.SheetsTimeout, logger)
	if err != nil {
		return err
	}

	catalogRepo := sheets.NewCatalogRepository(client, cfg.CatalogSheet, cfg.Timezone, logger)
	orderRepo := sheets.NewOrderRepository(client, cfg.OrdersSheet, cfg.Timezone, logger)
	sessionRepo := storage.NewMemorySessionRepository()

	orderStore, err := storage.NewSQLiteOrderStore(cfg.OrderDBPath)
	if err != nil {
		return err
	}
	defer orderStore.Close()

	catalogUC := usecase.NewCatalogUseCase(catalogRepo, logger)
	menuUC := usecase.NewMenuUseCase(cfg.Timezone, logger)
	orderUC := usecase.NewOrderUseCase(sessionRepo, orderRepo, catalogRepo, orderStore, logger)

	handler := whatsapp.NewHandler(catalogUC, menuUC, orderUC, sessionRepo, cfg.BusinessName, logger)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bot escuchando", zap.String("addr", cfg.HTTPAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
