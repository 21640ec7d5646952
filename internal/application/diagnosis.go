package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
	"crop-doctor/internal/metrics"
)

// DefaultIdentifyTimeout ограничивает вызов классификатора.
const DefaultIdentifyTimeout = 30 * time.Second

// DiagnosisService связывает классификатор с поиском средства и описания.
type DiagnosisService struct {
	identifier      port.Identifier
	inspector       port.LeafInspector
	remedies        *RemedyResolver
	descriptions    *DescriptionResolver
	identifyTimeout time.Duration
	now             func() time.Time
}

// NewDiagnosisService создаёт сервис. identifier и inspector могут быть nil.
func NewDiagnosisService(
	identifier port.Identifier,
	inspector port.LeafInspector,
	remedies *RemedyResolver,
	descriptions *DescriptionResolver,
	identifyTimeout time.Duration,
) *DiagnosisService {
	if identifyTimeout <= 0 {
		identifyTimeout = DefaultIdentifyTimeout
	}
	return &DiagnosisService{
		identifier:      identifier,
		inspector:       inspector,
		remedies:        remedies,
		descriptions:    descriptions,
		identifyTimeout: identifyTimeout,
		now:             time.Now,
	}
}

// Resolve подбирает средство и описание для одной метки.
// Обе части считаются независимо и всегда заполнены.
func (s *DiagnosisService) Resolve(ctx context.Context, label string) *entity.Resolution {
	return &entity.Resolution{
		Label:       label,
		Remedy:      s.remedies.Resolve(label),
		Description: s.descriptions.Describe(ctx, label),
	}
}

// Diagnose проверяет фото, отдаёт его классификатору и собирает ответ.
func (s *DiagnosisService) Diagnose(ctx context.Context, photo []byte) (*entity.Diagnosis, error) {
	if s.identifier == nil {
		return nil, ErrIdentifierNotConfigured
	}
	provider := s.identifier.Name()

	if s.inspector != nil {
		if err := s.inspector.Inspect(ctx, photo); err != nil {
			metrics.Diagnosed(provider, "rejected")
			return nil, fmt.Errorf("inspect photo: %w", err)
		}
	}

	ident, err := s.identify(ctx, photo)
	if err != nil {
		outcome := "error"
		if errors.Is(err, entity.ErrNoResult) {
			outcome = "no_result"
		}
		metrics.Diagnosed(provider, outcome)
		return nil, err
	}

	diag := &entity.Diagnosis{
		ID:             uuid.NewString(),
		CreatedAt:      s.now(),
		Identification: *ident,
		Remedy:         s.remedyFor(ident),
		Disease:        entity.NoDescriptionFor(ident.DiseaseName),
		Plant:          entity.NoDescriptionFor(ident.PlantName),
	}

	var wg sync.WaitGroup
	if ident.DiseaseName != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			diag.Disease = s.descriptions.Describe(ctx, ident.DiseaseName)
		}()
	}
	if ident.PlantName != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			diag.Plant = s.descriptions.Describe(ctx, ident.PlantName)
		}()
	}
	wg.Wait()

	metrics.Diagnosed(provider, "ok")
	slog.Info("Photo diagnosed",
		"id", diag.ID,
		"provider", provider,
		"plant", ident.PlantName,
		"disease", ident.DiseaseName,
		"confidence", ident.Confidence,
		"remedy_stage", diag.Remedy.Stage,
	)
	return diag, nil
}

func (s *DiagnosisService) identify(ctx context.Context, photo []byte) (*entity.Identification, error) {
	ctx, cancel := context.WithTimeout(ctx, s.identifyTimeout)
	defer cancel()

	ident, err := s.identifier.Identify(ctx, photo)
	if err != nil {
		return nil, fmt.Errorf("identify photo: %w", err)
	}
	if ident == nil {
		return nil, fmt.Errorf("identify photo: %w", entity.ErrNoResult)
	}
	if ident.Provider == "" {
		ident.Provider = s.identifier.Name()
	}
	return ident, nil
}

// remedyFor ищет средство по болезни, а если не нашлось, то по названию растения.
func (s *DiagnosisService) remedyFor(ident *entity.Identification) entity.RemedyResolution {
	res := s.remedies.Resolve(ident.Label())
	if res.Found() || ident.PlantName == "" || ident.PlantName == ident.Label() {
		return res
	}
	return s.remedies.Resolve(ident.PlantName)
}
