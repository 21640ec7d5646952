package port

import (
	"context"

	"crop-doctor/internal/domain/entity"
)

// UserRepository хранит состояние диалога с пользователем
type UserRepository interface {
	// Get возвращает пользователя чата, создаёт нового если не найден
	Get(ctx context.Context, userID, chatID int64) (*entity.User, error)

	// Save сохраняет пользователя целиком
	Save(ctx context.Context, user *entity.User) error

	// UpdateState меняет только состояние диалога
	UpdateState(ctx context.Context, userID, chatID int64, state entity.UserState) error
}
