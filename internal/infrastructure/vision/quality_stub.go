//go:build !gocv
// +build !gocv

package vision

import (
	"context"

	"crop-doctor/internal/domain/port"
)

// Enabled сообщает, собрана ли проверка качества с OpenCV.
const Enabled = false

// NewLeafQualityGate создаёт проверку-заглушку (без OpenCV).
func NewLeafQualityGate() *LeafQualityGate {
	return &LeafQualityGate{MinImageSide: DefaultMinImageSide}
}

// Inspect без тега gocv пропускает любое фото: решение остаётся за классификатором.
func (g *LeafQualityGate) Inspect(ctx context.Context, imageData []byte) error {
	_ = ctx
	_ = imageData
	return nil
}

var _ port.LeafInspector = (*LeafQualityGate)(nil)
