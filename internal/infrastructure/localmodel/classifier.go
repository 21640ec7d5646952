//go:build tflite
// +build tflite

package localmodel

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/mattn/go-tflite"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/infrastructure/imaging"
)

// Classifier: локальная TFLite-модель классификации листьев.
// Интерпретатор не потокобезопасен, поэтому вызовы сериализуются.
type Classifier struct {
	mu          sync.Mutex
	model       *tflite.Model
	options     *tflite.InterpreterOptions
	interpreter *tflite.Interpreter
	labels      []string
}

// NewClassifier загружает модель и метки.
func NewClassifier(modelPath, labelsPath string, threads int) (*Classifier, error) {
	labels, err := LoadLabels(labelsPath)
	if err != nil {
		return nil, err
	}

	model := tflite.NewModelFromFile(modelPath)
	if model == nil {
		return nil, fmt.Errorf("load model %s", modelPath)
	}

	options := tflite.NewInterpreterOptions()
	if threads > 0 {
		options.SetNumThread(threads)
	}

	interpreter := tflite.NewInterpreter(model, options)
	if interpreter == nil {
		options.Delete()
		model.Delete()
		return nil, errors.New("create interpreter")
	}
	if status := interpreter.AllocateTensors(); status != tflite.OK {
		interpreter.Delete()
		options.Delete()
		model.Delete()
		return nil, fmt.Errorf("allocate tensors: status %d", status)
	}

	return &Classifier{
		model:       model,
		options:     options,
		interpreter: interpreter,
		labels:      labels,
	}, nil
}

// Name возвращает имя провайдера.
func (c *Classifier) Name() string {
	return ProviderName
}

// Identify прогоняет фото через модель и берёт метку с наибольшей оценкой.
func (c *Classifier) Identify(ctx context.Context, imageData []byte) (*entity.Identification, error) {
	img, err := imaging.Decode(imageData)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input := c.interpreter.GetInputTensor(0)
	height, width := input.Dim(1), input.Dim(2)
	fitted := imaging.Fit(img, uint(width), uint(height))

	switch input.Type() {
	case tflite.UInt8:
		fillUint8(input.UInt8s(), fitted)
	case tflite.Float32:
		fillFloat32(input.Float32s(), fitted)
	default:
		return nil, fmt.Errorf("unsupported input tensor type %v", input.Type())
	}

	if status := c.interpreter.Invoke(); status != tflite.OK {
		return nil, fmt.Errorf("invoke model: status %d", status)
	}

	scores, err := readScores(c.interpreter.GetOutputTensor(0))
	if err != nil {
		return nil, err
	}
	if len(scores) > len(c.labels) {
		scores = scores[:len(c.labels)]
	}

	best, score := argmax(scores)
	if best < 0 {
		return nil, entity.ErrNoResult
	}
	return ParseLabel(c.labels[best], score), nil
}

// Close освобождает интерпретатор и модель.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.interpreter != nil {
		c.interpreter.Delete()
		c.options.Delete()
		c.model.Delete()
		c.interpreter = nil
	}
	return nil
}

func fillUint8(dst []uint8, img image.Image) {
	b := img.Bounds()
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if i+2 >= len(dst) {
				return
			}
			dst[i], dst[i+1], dst[i+2] = uint8(r>>8), uint8(g>>8), uint8(bl>>8)
			i += 3
		}
	}
}

func fillFloat32(dst []float32, img image.Image) {
	b := img.Bounds()
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if i+2 >= len(dst) {
				return
			}
			dst[i] = float32(r>>8) / 255
			dst[i+1] = float32(g>>8) / 255
			dst[i+2] = float32(bl>>8) / 255
			i += 3
		}
	}
}

func readScores(output *tflite.Tensor) ([]float64, error) {
	switch output.Type() {
	case tflite.UInt8:
		raw := output.UInt8s()
		scores := make([]float64, len(raw))
		for i, v := range raw {
			scores[i] = float64(v) / 255
		}
		return scores, nil
	case tflite.Float32:
		raw := output.Float32s()
		scores := make([]float64, len(raw))
		for i, v := range raw {
			scores[i] = float64(v)
		}
		return scores, nil
	default:
		return nil, fmt.Errorf("unsupported output tensor type %v", output.Type())
	}
}
