package storage

import (
	"context"
	"sync"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
)

// userKey: пользователь в конкретном чате
type userKey struct {
	userID int64
	chatID int64
}

// MemoryUserRepository in-memory хранилище пользователей
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[userKey]entity.User
}

// NewMemoryUserRepository создаёт новое in-memory хранилище
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[userKey]entity.User),
	}
}

// Get возвращает копию пользователя, создаёт нового если не найден
func (r *MemoryUserRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	key := userKey{userID: userID, chatID: chatID}

	r.mu.RLock()
	user, exists := r.users[key]
	r.mu.RUnlock()
	if exists {
		return &user, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Пока ждали блокировку, пользователя мог создать другой апдейт.
	if user, exists := r.users[key]; exists {
		return &user, nil
	}
	newUser := entity.NewUser(userID, chatID)
	r.users[key] = *newUser

	return newUser, nil
}

// Save сохраняет пользователя
func (r *MemoryUserRepository) Save(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	r.users[userKey{userID: user.ID, chatID: user.ChatID}] = *user
	r.mu.Unlock()

	return nil
}

// UpdateState обновляет состояние, создавая пользователя при необходимости
func (r *MemoryUserRepository) UpdateState(ctx context.Context, userID, chatID int64, state entity.UserState) error {
	key := userKey{userID: userID, chatID: chatID}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[key]
	if !exists {
		user = *entity.NewUser(userID, chatID)
	}
	user.SetState(state)
	r.users[key] = user

	return nil
}

// Проверка реализации интерфейса
var _ port.UserRepository = (*MemoryUserRepository)(nil)
