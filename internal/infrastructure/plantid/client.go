package plantid

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
	"crop-doctor/internal/infrastructure/imaging"
)

const (
	// ProviderName: имя провайдера в ответах и метриках.
	ProviderName = "plantid"

	// DefaultBaseURL: публичный API Plant.id.
	DefaultBaseURL = "https://plant.id"

	// DefaultMaxSide: большая сторона фото перед отправкой.
	DefaultMaxSide = 1024

	healthAssessmentPath = "/api/v3/health_assessment"
)

// ErrMissingAPIKey: ключ API не задан.
var ErrMissingAPIKey = errors.New("plant.id api key is required")

// Client отправляет фото в Plant.id health assessment.
type Client struct {
	http    *resty.Client
	apiKey  string
	maxSide uint
}

type assessmentRequest struct {
	Images        []string `json:"images"`
	SimilarImages bool     `json:"similar_images"`
}

type suggestion struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

type verdict struct {
	Probability float64 `json:"probability"`
	Binary      bool    `json:"binary"`
}

type assessmentResponse struct {
	Result struct {
		IsPlant   verdict `json:"is_plant"`
		IsHealthy verdict `json:"is_healthy"`
		Disease   struct {
			Suggestions []suggestion `json:"suggestions"`
		} `json:"disease"`
		Classification struct {
			Suggestions []suggestion `json:"suggestions"`
		} `json:"classification"`
	} `json:"result"`
}

// NewClient создаёт клиента. maxSide == 0 заменяется на DefaultMaxSide.
func NewClient(baseURL, apiKey string, timeout time.Duration, maxSide uint) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxSide == 0 {
		maxSide = DefaultMaxSide
	}

	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		apiKey:  apiKey,
		maxSide: maxSide,
	}, nil
}

// Name возвращает имя провайдера.
func (c *Client) Name() string {
	return ProviderName
}

// Identify отправляет фото и разбирает верхние подсказки.
func (c *Client) Identify(ctx context.Context, imageData []byte) (*entity.Identification, error) {
	prepared, err := imaging.Downscale(imageData, c.maxSide)
	if err != nil {
		return nil, fmt.Errorf("prepare image: %w", err)
	}

	body := assessmentRequest{
		Images: []string{"data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(prepared)},
	}

	var out assessmentResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Api-Key", c.apiKey).
		SetBody(body).
		SetResult(&out).
		Post(healthAssessmentPath)
	if err != nil {
		return nil, fmt.Errorf("request health assessment: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("request health assessment: unexpected status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return parseAssessment(&out)
}

// Close ничего не держит.
func (c *Client) Close() error {
	return nil
}

func parseAssessment(out *assessmentResponse) (*entity.Identification, error) {
	res := out.Result
	ident := &entity.Identification{Provider: ProviderName}

	if plant, ok := top(res.Classification.Suggestions); ok {
		ident.PlantName = plant.Name
	}

	disease, hasDisease := top(res.Disease.Suggestions)
	switch {
	case res.IsHealthy.Binary:
		ident.Healthy = true
		ident.Confidence = clamp(res.IsHealthy.Probability)
	case hasDisease:
		ident.DiseaseName = disease.Name
		ident.Confidence = clamp(disease.Probability)
	default:
		return nil, entity.ErrNoResult
	}

	return ident, nil
}

// top берёт подсказку с наибольшей вероятностью.
func top(suggestions []suggestion) (suggestion, bool) {
	var best suggestion
	found := false
	for _, s := range suggestions {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		if !found || s.Probability > best.Probability {
			best, found = s, true
		}
	}
	return best, found
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

var _ port.Identifier = (*Client)(nil)
