package app

import (
	"strings"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
	"crop-doctor/internal/metrics"
)

// RemedyResolver подбирает средство по метке классификатора.
type RemedyResolver struct {
	source port.RemedySource
}

// NewRemedyResolver создаёт резолвер поверх источника таблицы.
func NewRemedyResolver(source port.RemedySource) *RemedyResolver {
	return &RemedyResolver{source: source}
}

// ResolveRemedy возвращает текст средства или entity.NoRemedy.
func (r *RemedyResolver) ResolveRemedy(label string) string {
	return r.Resolve(label).Remedy
}

// Resolve проходит каскад: точное совпадение, подстрока, категория, заглушка.
// При нескольких подходящих ключах побеждает первый в порядке таблицы, а не самый длинный.
func (r *RemedyResolver) Resolve(label string) entity.RemedyResolution {
	res := r.resolve(label)
	metrics.RemedyResolved(string(res.Stage))
	return res
}

func (r *RemedyResolver) resolve(label string) entity.RemedyResolution {
	none := entity.RemedyResolution{Label: label, Stage: entity.StageNone, Remedy: entity.NoRemedy}

	key := entity.NormalizeLabel(label)
	if key == "" || r.source == nil {
		return none
	}
	table := r.source.Current()
	if table == nil {
		return none
	}

	if e, ok := table.Lookup(key); ok {
		return entity.RemedyResolution{Label: label, Key: e.Key, Stage: entity.StageExact, Remedy: e.Remedy}
	}

	for e := range table.Entries() {
		if strings.Contains(key, e.Key) {
			return entity.RemedyResolution{Label: label, Key: e.Key, Stage: entity.StageSubstring, Remedy: e.Remedy}
		}
	}

	for c := range table.Categories() {
		for _, kw := range c.Keywords {
			if strings.Contains(key, kw) {
				return entity.RemedyResolution{Label: label, Key: c.Name, Stage: entity.StageCategory, Remedy: c.Remedy}
			}
		}
	}

	return none
}
