package repository

import (
	"context"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
)

// SessionRepository estado conversacional por teléfono
type SessionRepository interface {
	// Get sesión del teléfono, creándola si no existe
	Get(ctx context.Context, phone string) (*entity.UserSession, error)

	// Save guardar la sesión
	Save(ctx context.Context, session *entity.UserSession) error

	// Delete descartar la sesión
	Delete(ctx context.Context, phone string) error
}
