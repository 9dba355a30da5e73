package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
)

type sqliteOrderStore struct {
	db *sql.DB
}

// NewSQLiteOrderStore espejo local de pedidos y clientes en SQLite
func NewSQLiteOrderStore(dbPath string) (repository.OrderStore, error) {
	if dbPath == "" {
		return nil, errors.New("la ruta de la base de datos no puede estar vacía")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("no se pudo crear la carpeta de la base: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("no se pudo abrir sqlite: %w", err)
	}

	if err := createOrderSchema(db); err != nil {
		return nil, err
	}

	return &sqliteOrderStore{db: db}, nil
}

func createOrderSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id TEXT PRIMARY KEY,
	phone TEXT NOT NULL,
	product TEXT,
	quantity_kg TEXT,
	total TEXT,
	status TEXT,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_phone ON orders (phone);
CREATE TABLE IF NOT EXISTS clients (
	phone TEXT PRIMARY KEY,
	business TEXT,
	contact TEXT,
	address TEXT
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("no se pudo crear el esquema: %w", err)
	}
	return nil
}

// SaveOrder guardar la copia local de un pedido confirmado
func (s *sqliteOrderStore) SaveOrder(ctx context.Context, order entity.Order) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO orders
(id, phone, product, quantity_kg, total, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.Phone, order.ProductName,
		order.QuantityKg.String(), order.Total.String(),
		order.Status, order.CreatedAt)
	return err
}

// CountByPhone cantidad de pedidos registrados del teléfono
func (s *sqliteOrderStore) CountByPhone(ctx context.Context, phone string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE phone = ?`, phone).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SaveClient guardar los datos de entrega de un cliente
func (s *sqliteOrderStore) SaveClient(ctx context.Context, client entity.ClientData) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO clients
(phone, business, contact, address) VALUES (?, ?, ?, ?)`,
		client.Phone, client.Business, client.Contact, client.Address)
	return err
}

// GetClient datos del cliente; nil si no se conoce
func (s *sqliteOrderStore) GetClient(ctx context.Context, phone string) (*entity.ClientData, error) {
	var client entity.ClientData
	err := s.db.QueryRowContext(ctx,
		`SELECT phone, business, contact, address FROM clients WHERE phone = ?`, phone).
		Scan(&client.Phone, &client.Business, &client.Contact, &client.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Close cerrar la base
func (s *sqliteOrderStore) Close() error {
	return s.db.Close()
}
