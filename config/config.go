package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config configuración de la aplicación
type Config struct {
	SpreadsheetID   string
	CredentialsPath string
	CatalogSheet    string
	OrdersSheet     string
	OrderDBPath     string
	BusinessName    string
	HTTPAddr        string
	SheetsTimeout   time.Duration
	Timezone        *time.Location
}

// Load cargar la configuración desde variables de entorno
func Load() (*Config, error) {
	// Cargar .env si existe
	_ = godotenv.Load()

	config := &Config{
		SpreadsheetID:   os.Getenv("GOOGLE_SPREADSHEET_ID"),
		CredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),
		CatalogSheet:    "CatalogoWhatsApp",
		OrdersSheet:     "PedidosWhatsApp",
		OrderDBPath:     "data/pedidos.db",
		BusinessName:    "Café Peruano",
		HTTPAddr:        ":3000",
		SheetsTimeout:   15 * time.Second,
	}

	if config.CredentialsPath == "" {
		config.CredentialsPath = "credentials.json"
	}

	if dbPath := os.Getenv("ORDER_DB_PATH"); dbPath != "" {
		config.OrderDBPath = dbPath
	}

	if name := os.Getenv("BUSINESS_NAME"); name != "" {
		config.BusinessName = name
	}

	if port := os.Getenv("PORT"); port != "" {
		config.HTTPAddr = ":" + port
	}

	tzName := os.Getenv("TIMEZONE")
	if tzName == "" {
		tzName = "America/Lima"
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE inválida %q: %w", tzName, err)
	}
	config.Timezone = loc

	// Validación
	if config.SpreadsheetID == "" {
		return nil, fmt.Errorf("falta la variable de entorno GOOGLE_SPREADSHEET_ID")
	}

	return config, nil
}
