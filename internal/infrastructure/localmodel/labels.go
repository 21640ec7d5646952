package localmodel

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"crop-doctor/internal/domain/entity"
)

// ProviderName: имя провайдера в ответах и метриках.
const ProviderName = "tflite"

// ErrNoLabels: файл меток пуст.
var ErrNoLabels = errors.New("labels file is empty")

// LoadLabels читает метки модели, по одной на строку.
func LoadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			labels = append(labels, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	return labels, nil
}

// ParseLabel разбирает метку вида "Tomato___Late_blight" на растение и болезнь.
// Болезнь "healthy" превращается в флаг Healthy.
func ParseLabel(label string, confidence float64) *entity.Identification {
	ident := &entity.Identification{Provider: ProviderName, Confidence: confidence}

	plant, disease, found := strings.Cut(label, "___")
	if !found {
		ident.DiseaseName = entity.QueryTerm(label)
		return ident
	}

	ident.PlantName = entity.QueryTerm(plant)
	disease = entity.QueryTerm(disease)
	if strings.EqualFold(disease, entity.HealthyLabel) {
		ident.Healthy = true
	} else {
		ident.DiseaseName = disease
	}
	return ident
}

// argmax возвращает индекс и значение наибольшей оценки.
func argmax(scores []float64) (int, float64) {
	best, bestScore := -1, 0.0
	for i, s := range scores {
		if best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, bestScore
}
