package storage

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
)

//go:embed remedies.yaml
var defaultTableYAML []byte

//go:embed remedies.schema.json
var tableSchemaJSON string

var tableSchema = jsonschema.MustCompileString("remedies.schema.json", tableSchemaJSON)

type tableFile struct {
	Version    int            `yaml:"version"`
	Remedies   []remedyItem   `yaml:"remedies"`
	Categories []categoryItem `yaml:"categories"`
}

type remedyItem struct {
	Name   string `yaml:"name"`
	Remedy string `yaml:"remedy"`
}

type categoryItem struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Remedy   string   `yaml:"remedy"`
}

var (
	defaultTable = sync.OnceValues(func() (*entity.RemedyTable, error) {
		return ParseRemedyTable(defaultTableYAML)
	})

	defaultCategories = sync.OnceValue(func() []categoryItem {
		var f tableFile
		if err := yaml.Unmarshal(defaultTableYAML, &f); err != nil {
			panic(fmt.Sprintf("storage: embedded remedy table is broken: %v", err))
		}
		return f.Categories
	})
)

// DefaultRemedyTable возвращает встроенную таблицу средств.
func DefaultRemedyTable() (*entity.RemedyTable, error) {
	return defaultTable()
}

// LoadRemedyTable читает и проверяет YAML-таблицу с диска.
func LoadRemedyTable(path string) (*entity.RemedyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read remedy table: %w", err)
	}

	table, err := ParseRemedyTable(data)
	if err != nil {
		return nil, fmt.Errorf("parse remedy table %s: %w", path, err)
	}
	return table, nil
}

// ParseRemedyTable проверяет YAML по схеме и собирает таблицу.
// Если в файле нет categories, берутся встроенные категории.
func ParseRemedyTable(data []byte) (*entity.RemedyTable, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid YAML: %w", entity.ErrInvalidTable, err)
	}
	if err := tableSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidTable, err)
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", entity.ErrInvalidTable, err)
	}
	if file.Categories == nil {
		file.Categories = defaultCategories()
	}

	entries := make([]entity.RemedyEntry, 0, len(file.Remedies))
	for _, r := range file.Remedies {
		entries = append(entries, entity.RemedyEntry{Name: r.Name, Remedy: r.Remedy})
	}
	categories := make([]entity.CategoryRule, 0, len(file.Categories))
	for _, c := range file.Categories {
		categories = append(categories, entity.CategoryRule{Name: c.Name, Keywords: c.Keywords, Remedy: c.Remedy})
	}

	return entity.NewRemedyTable(entries, categories)
}

// StaticRemedySource отдаёт одну таблицу, загруженную при старте.
type StaticRemedySource struct {
	table *entity.RemedyTable
}

// NewStaticRemedySource оборачивает готовую таблицу.
func NewStaticRemedySource(table *entity.RemedyTable) *StaticRemedySource {
	return &StaticRemedySource{table: table}
}

// Current возвращает таблицу.
func (s *StaticRemedySource) Current() *entity.RemedyTable {
	return s.table
}

var _ port.RemedySource = (*StaticRemedySource)(nil)
