package port

import (
	"context"

	"crop-doctor/internal/domain/entity"
)

// SummaryProvider ищет короткую справку по имени.
// (nil, nil) означает "не найдено", ошибка означает сбой сети или сервиса.
type SummaryProvider interface {
	Lookup(ctx context.Context, term string) (*entity.Summary, error)
}
