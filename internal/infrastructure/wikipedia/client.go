package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
)

const (
	// DefaultBaseURL: английская Википедия.
	DefaultBaseURL = "https://en.wikipedia.org"

	userAgent   = "CropDoctor/1.0"
	summaryPath = "/api/rest_v1/page/summary/{title}"

	pageTypeDisambiguation = "disambiguation"
)

// Client ходит в REST API Википедии за краткой справкой.
type Client struct {
	http *resty.Client
}

type summaryResponse struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// NewClient создаёт клиента. Пустой baseURL заменяется на DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept", "application/json"),
	}
}

// Lookup возвращает справку по названию статьи.
// 404 и страницы неоднозначности означают "не найдено" и дают (nil, nil).
func (c *Client) Lookup(ctx context.Context, term string) (*entity.Summary, error) {
	title := strings.ReplaceAll(strings.TrimSpace(term), " ", "_")
	if title == "" {
		return nil, nil
	}

	var out summaryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("title", title).
		SetResult(&out).
		Get(summaryPath)
	if err != nil {
		return nil, fmt.Errorf("request summary %q: %w", title, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, nil
	case !resp.IsSuccess():
		return nil, fmt.Errorf("request summary %q: unexpected status %d", title, resp.StatusCode())
	}

	if out.Type == pageTypeDisambiguation || strings.TrimSpace(out.Extract) == "" {
		return nil, nil
	}

	return &entity.Summary{
		Title:   out.Title,
		Extract: out.Extract,
		URL:     out.ContentURLs.Desktop.Page,
	}, nil
}

var _ port.SummaryProvider = (*Client)(nil)
