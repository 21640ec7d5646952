package port

import (
	"context"

	"crop-doctor/internal/domain/entity"
)

// Identifier распознаёт растение и болезнь по фото
type Identifier interface {
	// Name возвращает имя провайдера
	Name() string

	// Identify анализирует изображение; entity.ErrNoResult, если ничего не найдено
	Identify(ctx context.Context, imageData []byte) (*entity.Identification, error)

	// Close освобождает ресурсы
	Close() error
}
