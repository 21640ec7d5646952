//go:build !tflite
// +build !tflite

package localmodel

import (
	"context"
	"errors"

	"crop-doctor/internal/domain/entity"
)

// ErrDisabled: сборка без тега tflite.
var ErrDisabled = errors.New("tflite build tag is not enabled")

// Classifier: заглушка локальной модели (без TensorFlow Lite).
type Classifier struct{}

// NewClassifier возвращает ошибку, если сборка без тега tflite.
func NewClassifier(modelPath, labelsPath string, threads int) (*Classifier, error) {
	_ = modelPath
	_ = labelsPath
	_ = threads
	return nil, ErrDisabled
}

// Name возвращает имя провайдера.
func (c *Classifier) Name() string {
	return ProviderName
}

// Identify возвращает ошибку, если сборка без тега tflite.
func (c *Classifier) Identify(ctx context.Context, imageData []byte) (*entity.Identification, error) {
	_ = ctx
	_ = imageData
	return nil, ErrDisabled
}

// Close ничего не делает.
func (c *Classifier) Close() error {
	return nil
}
