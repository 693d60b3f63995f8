package storage

import (
	"context"
	"sync"

	"crack-meter/internal/domain/entity"
	"crack-meter/internal/domain/port"
)

// MemorySessionRepository in-memory хранилище сессий бота.
// Сессии живут до перезапуска процесса.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[int64]*entity.Session
}

// NewMemorySessionRepository создаёт новое in-memory хранилище
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[int64]*entity.Session),
	}
}

// Get возвращает копию сессии по ID, создаёт новую если не найдена
func (r *MemorySessionRepository) Get(ctx context.Context, userID, chatID int64) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, exists := r.sessions[userID]
	if !exists {
		s = entity.NewSession(userID, chatID)
		r.sessions[userID] = s
	}
	s.ChatID = chatID

	copied := *s
	return &copied, nil
}

// Save сохраняет сессию
func (r *MemorySessionRepository) Save(ctx context.Context, session *entity.Session) error {
	copied := *session

	r.mu.Lock()
	r.sessions[session.UserID] = &copied
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние сессии
func (r *MemorySessionRepository) UpdateState(ctx context.Context, userID int64, state entity.SessionState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, exists := r.sessions[userID]; exists {
		s.SetState(state)
	}

	return nil
}

// Проверка реализации интерфейса
var _ port.SessionRepository = (*MemorySessionRepository)(nil)
