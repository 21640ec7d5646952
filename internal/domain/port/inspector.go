package port

import "context"

// LeafInspector проверяет пригодность фото до отправки классификатору.
type LeafInspector interface {
	// Inspect возвращает ошибку, обёрнутую в entity.ErrPoorImage, если фото не годится
	Inspect(ctx context.Context, imageData []byte) error
}
