package main

import (
	"errors"
	"fmt"
	"log/slog"

	"crop-doctor/config"
	"crop-doctor/internal/container"
	"crop-doctor/internal/domain/port"
	"crop-doctor/internal/infrastructure/localmodel"
	"crop-doctor/internal/infrastructure/plantid"
	"crop-doctor/internal/infrastructure/storage"
	"crop-doctor/internal/infrastructure/vision"
	"crop-doctor/internal/infrastructure/wikipedia"
	"crop-doctor/internal/logger"
)

// application хранит собранные зависимости и то, что нужно закрыть при выходе.
type application struct {
	cfg      *config.Config
	services *container.Container
	closers  []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Failed to release resource", "error", err)
		}
	}
}

// buildApp читает конфиг, настраивает логгер и собирает контейнер.
// withIdentifier=false пропускает классификатор: он не нужен командам remedy и describe.
func buildApp(withIdentifier bool) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Env,
		logger.WithLogToFile(cfg.LogToFile),
		logger.WithLogFile(cfg.LogFile),
	))

	a := &application{cfg: cfg}

	remedies, err := a.remedySource()
	if err != nil {
		a.Close()
		return nil, err
	}

	deps := container.Deps{
		Users:           storage.NewMemoryUserRepository(),
		Remedies:        remedies,
		Summaries:       wikipedia.NewClient(cfg.WikipediaURL, cfg.SummaryTimeout),
		SummaryTimeout:  cfg.SummaryTimeout,
		IdentifyTimeout: cfg.IdentifyTimeout,
	}

	if withIdentifier {
		identifier, err := a.identifier()
		if err != nil {
			a.Close()
			return nil, err
		}
		if identifier != nil {
			deps.Identifier = identifier
			a.closers = append(a.closers, identifier.Close)
		}

		if vision.Enabled {
			deps.Inspector = vision.NewLeafQualityGate()
		}
	}

	a.services = container.New(deps)
	return a, nil
}

// remedySource возвращает встроенную таблицу, таблицу из файла или наблюдатель за файлом.
func (a *application) remedySource() (port.RemedySource, error) {
	path := a.cfg.RemedyTablePath

	if path == "" {
		table, err := storage.DefaultRemedyTable()
		if err != nil {
			return nil, fmt.Errorf("load built-in remedy table: %w", err)
		}
		slog.Debug("Using built-in remedy table", "entries", table.Len())
		return storage.NewStaticRemedySource(table), nil
	}

	if a.cfg.WatchRemedyTable {
		w, err := storage.NewRemedyWatcher(path, nil)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, w.Close)
		slog.Info("Watching remedy table", "path", path, "entries", w.Current().Len())
		return w, nil
	}

	table, err := storage.LoadRemedyTable(path)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded remedy table", "path", path, "entries", table.Len())
	return storage.NewStaticRemedySource(table), nil
}

// identifier создаёт выбранный классификатор. nil без ошибки означает, что диагностика по фото выключена.
func (a *application) identifier() (port.Identifier, error) {
	cfg := a.cfg

	switch cfg.Identifier {
	case config.IdentifierPlantID:
		client, err := plantid.NewClient(cfg.PlantIDURL, cfg.PlantIDAPIKey, cfg.IdentifyTimeout, cfg.MaxImageSide)
		if errors.Is(err, plantid.ErrMissingAPIKey) {
			slog.Warn("Plant.id API key is not set, photo diagnosis is disabled", "env", config.EnvPlantIDAPIKey)
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("create plant.id client: %w", err)
		}
		return client, nil

	case config.IdentifierTFLite:
		classifier, err := localmodel.NewClassifier(cfg.TFLiteModelPath, cfg.TFLiteLabelsPath, cfg.TFLiteThreads)
		if err != nil {
			return nil, fmt.Errorf("create tflite classifier: %w", err)
		}
		return classifier, nil

	default:
		slog.Info("Photo diagnosis is disabled", "identifier", cfg.Identifier)
		return nil, nil
	}
}
