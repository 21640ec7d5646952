package entity

import (
	"fmt"
	"iter"
	"strings"
)

const (
	// NoRemedy возвращается, когда ни один шаг поиска средства не сработал.
	NoRemedy = "no curated remedy available."

	// NoDescription возвращается, когда справочник ничего не нашёл.
	NoDescription = "no information available"
)

// RemedyStage: шаг каскада, на котором нашлось средство.
type RemedyStage string

const (
	StageExact     RemedyStage = "exact"     // Точное совпадение ключа
	StageSubstring RemedyStage = "substring" // Ключ входит в метку
	StageCategory  RemedyStage = "category"  // Сработало ключевое слово категории
	StageNone      RemedyStage = "none"      // Ничего не найдено
)

// RemedyEntry: запись курируемой таблицы.
type RemedyEntry struct {
	Key    string // нормализованное имя
	Name   string // имя в том виде, как оно записано в источнике
	Remedy string
}

// CategoryRule: общий совет для целой категории проблем.
type CategoryRule struct {
	Name     string
	Keywords []string // нормализованные ключевые слова
	Remedy   string
}

// RemedyTable: неизменяемая таблица средств.
// Порядок записей совпадает с порядком в источнике и важен для поиска по подстроке.
type RemedyTable struct {
	entries    []RemedyEntry
	index      map[string]int
	categories []CategoryRule
}

// NewRemedyTable собирает таблицу, нормализуя ключи.
// Ошибкой считаются пустые имена и тексты, а также ключи, совпавшие после нормализации.
func NewRemedyTable(entries []RemedyEntry, categories []CategoryRule) (*RemedyTable, error) {
	t := &RemedyTable{
		entries:    make([]RemedyEntry, 0, len(entries)),
		index:      make(map[string]int, len(entries)),
		categories: make([]CategoryRule, 0, len(categories)),
	}

	for i, e := range entries {
		key := NormalizeLabel(e.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: entry %d has empty name", ErrInvalidTable, i)
		}
		remedy := strings.TrimSpace(e.Remedy)
		if remedy == "" {
			return nil, fmt.Errorf("%w: entry %q has empty remedy", ErrInvalidTable, e.Name)
		}
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate entry %q", ErrInvalidTable, e.Name)
		}
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, RemedyEntry{Key: key, Name: strings.TrimSpace(e.Name), Remedy: remedy})
	}

	for _, c := range categories {
		remedy := strings.TrimSpace(c.Remedy)
		if remedy == "" {
			return nil, fmt.Errorf("%w: category %q has empty remedy", ErrInvalidTable, c.Name)
		}
		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw = NormalizeLabel(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: category %q has no keywords", ErrInvalidTable, c.Name)
		}
		t.categories = append(t.categories, CategoryRule{Name: c.Name, Keywords: keywords, Remedy: remedy})
	}

	return t, nil
}

// Lookup ищет запись по уже нормализованному ключу.
func (t *RemedyTable) Lookup(key string) (RemedyEntry, bool) {
	i, ok := t.index[key]
	if !ok {
		return RemedyEntry{}, false
	}
	return t.entries[i], true
}

// Entries перебирает записи в порядке источника.
func (t *RemedyTable) Entries() iter.Seq[RemedyEntry] {
	return func(yield func(RemedyEntry) bool) {
		for _, e := range t.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Categories перебирает правила категорий в порядке источника.
func (t *RemedyTable) Categories() iter.Seq[CategoryRule] {
	return func(yield func(CategoryRule) bool) {
		for _, c := range t.categories {
			if !yield(c) {
				return
			}
		}
	}
}

// Len возвращает число записей (без категорий).
func (t *RemedyTable) Len() int {
	return len(t.entries)
}

// RemedyResolution: результат поиска средства по метке.
type RemedyResolution struct {
	Label  string      `json:"label"`
	Key    string      `json:"key,omitempty"` // ключ записи или имя категории
	Stage  RemedyStage `json:"stage"`
	Remedy string      `json:"remedy"`
}

// Found сообщает, нашлось ли что-то кроме заглушки.
func (r RemedyResolution) Found() bool {
	return r.Stage != StageNone
}
