package storage

import (
	"context"
	"sync"
	"time"

	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/entity"
	"github.com/yourusername/whatsapp-coffee-bot/internal/domain/repository"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.UserSession // key: teléfono normalizado
}

// NewMemorySessionRepository sesiones conversacionales en memoria
func NewMemorySessionRepository() repository.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]*entity.UserSession),
	}
}

// Get sesión del teléfono, creándola si no existe
func (m *memorySessionRepository) Get(ctx context.Context, phone string) (*entity.UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[phone]; ok {
		return session, nil
	}

	session := &entity.UserSession{
		Phone:     phone,
		Step:      "inicio",
		UpdatedAt: time.Now(),
	}
	m.sessions[phone] = session
	return session, nil
}

// Save guardar la sesión
func (m *memorySessionRepository) Save(ctx context.Context, session *entity.UserSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.UpdatedAt = time.Now()
	m.sessions[session.Phone] = session
	return nil
}

// Delete descartar la sesión
func (m *memorySessionRepository) Delete(ctx context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, phone)
	return nil
}
