package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
	"crop-doctor/internal/metrics"
)

// DefaultSummaryTimeout ограничивает один запрос справки.
const DefaultSummaryTimeout = 6 * time.Second

// Хвосты, которые классификаторы дописывают к названию болезни.
var trailingPhrases = []string{" disease", " infection", " symptoms"}

// DescriptionResolver ищет описание по упорядоченному списку запросов.
type DescriptionResolver struct {
	provider port.SummaryProvider
	timeout  time.Duration
}

// NewDescriptionResolver создаёт резолвер. timeout <= 0 заменяется на DefaultSummaryTimeout.
func NewDescriptionResolver(provider port.SummaryProvider, timeout time.Duration) *DescriptionResolver {
	if timeout <= 0 {
		timeout = DefaultSummaryTimeout
	}
	return &DescriptionResolver{provider: provider, timeout: timeout}
}

// ResolveDescription возвращает текст описания или entity.NoDescription.
func (r *DescriptionResolver) ResolveDescription(ctx context.Context, name string) string {
	return r.Describe(ctx, name).Text
}

// Describe перебирает кандидатов и возвращает первую непустую справку.
// Ошибки провайдера не выходят наружу: всё, что не нашлось, превращается в заглушку.
func (r *DescriptionResolver) Describe(ctx context.Context, name string) entity.Description {
	if r.provider == nil {
		return entity.NoDescriptionFor(name)
	}

	for _, term := range CandidateTerms(name) {
		if ctx.Err() != nil {
			break
		}

		summary, err := r.lookup(ctx, term)
		if err != nil {
			metrics.SummaryLookup(metrics.OutcomeError)
			slog.Debug("Summary lookup failed", "term", term, "error", err)
			continue
		}
		if summary == nil || strings.TrimSpace(summary.Extract) == "" {
			metrics.SummaryLookup(metrics.OutcomeNotFound)
			continue
		}

		metrics.SummaryLookup(metrics.OutcomeFound)
		return entity.Description{
			Name:  name,
			Term:  term,
			Title: summary.Title,
			Text:  strings.TrimSpace(summary.Extract),
			URL:   summary.URL,
			Found: true,
		}
	}

	return entity.NoDescriptionFor(name)
}

// lookup делает один запрос со своим таймаутом и превращает панику провайдера в ошибку.
func (r *DescriptionResolver) lookup(ctx context.Context, term string) (summary *entity.Summary, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			summary, err = nil, fmt.Errorf("summary provider panic: %v", p)
		}
	}()

	return r.provider.Lookup(ctx, term)
}

// CandidateTerms строит запросы в порядке попыток:
// имя, имя + " disease", имя без известного хвоста (или без первого слова), первое слово.
// Пустые и повторяющиеся варианты отбрасываются.
func CandidateTerms(name string) []string {
	base := entity.QueryTerm(name)
	if base == "" {
		return nil
	}
	fields := strings.Fields(base)

	stripped := stripTrailingPhrase(base)
	if stripped == base && len(fields) > 1 {
		stripped = strings.Join(fields[1:], " ")
	}

	raw := []string{base, base + " disease", stripped, fields[0]}
	terms := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	return terms
}

func stripTrailingPhrase(s string) string {
	for _, p := range trailingPhrases {
		if len(s) > len(p) && strings.EqualFold(s[len(s)-len(p):], p) {
			return strings.TrimSpace(s[:len(s)-len(p)])
		}
	}
	return s
}
