package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"crop-doctor/internal/env"
)

// Переменные окружения.
const (
	EnvTelegramToken    = "TELEGRAM_TOKEN"
	EnvHTTPAddr         = "HTTP_ADDR"
	EnvIdentifier       = "IDENTIFIER"
	EnvPlantIDAPIKey    = "PLANTID_API_KEY"
	EnvPlantIDURL       = "PLANTID_URL"
	EnvWikipediaURL     = "WIKIPEDIA_URL"
	EnvSummaryTimeout   = "SUMMARY_TIMEOUT"
	EnvIdentifyTimeout  = "IDENTIFY_TIMEOUT"
	EnvRemedyTablePath  = "REMEDY_TABLE_PATH"
	EnvWatchRemedyTable = "WATCH_REMEDY_TABLE"
	EnvTFLiteModelPath  = "TFLITE_MODEL_PATH"
	EnvTFLiteLabelsPath = "TFLITE_LABELS_PATH"
	EnvTFLiteThreads    = "TFLITE_THREADS"
	EnvMaxImageSide     = "MAX_IMAGE_SIDE"
	EnvUploadMaxBytes   = "UPLOAD_MAX_BYTES"
	EnvLogToFile        = "LOG_TO_FILE"
	EnvLogFile          = "LOG_FILE"
)

// Провайдеры классификации.
const (
	IdentifierPlantID = "plantid"
	IdentifierTFLite  = "tflite"
	IdentifierNone    = "none"
)

type Config struct {
	Env           env.Environment
	TelegramToken string
	HTTPAddr      string

	Identifier       string
	PlantIDAPIKey    string
	PlantIDURL       string
	TFLiteModelPath  string
	TFLiteLabelsPath string
	TFLiteThreads    int
	MaxImageSide     uint

	WikipediaURL    string
	SummaryTimeout  time.Duration
	IdentifyTimeout time.Duration

	RemedyTablePath  string
	WatchRemedyTable bool

	UploadMaxBytes int64
	LogToFile      bool
	LogFile        string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		Env:              env.FromEnv(),
		TelegramToken:    os.Getenv(EnvTelegramToken),
		HTTPAddr:         getenv(EnvHTTPAddr, ":8080"),
		Identifier:       strings.ToLower(getenv(EnvIdentifier, IdentifierPlantID)),
		PlantIDAPIKey:    os.Getenv(EnvPlantIDAPIKey),
		PlantIDURL:       getenv(EnvPlantIDURL, "https://plant.id"),
		TFLiteModelPath:  os.Getenv(EnvTFLiteModelPath),
		TFLiteLabelsPath: os.Getenv(EnvTFLiteLabelsPath),
		WikipediaURL:     getenv(EnvWikipediaURL, "https://en.wikipedia.org"),
		RemedyTablePath:  os.Getenv(EnvRemedyTablePath),
		LogFile:          getenv(EnvLogFile, "logs/crop-doctor.log"),
	}

	var err error
	if cfg.SummaryTimeout, err = durationEnv(EnvSummaryTimeout, 6*time.Second); err != nil {
		return nil, err
	}
	if cfg.IdentifyTimeout, err = durationEnv(EnvIdentifyTimeout, 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.WatchRemedyTable, err = boolEnv(EnvWatchRemedyTable, false); err != nil {
		return nil, err
	}
	if cfg.LogToFile, err = boolEnv(EnvLogToFile, false); err != nil {
		return nil, err
	}
	if cfg.TFLiteThreads, err = intEnv(EnvTFLiteThreads, 2); err != nil {
		return nil, err
	}
	side, err := intEnv(EnvMaxImageSide, 1024)
	if err != nil {
		return nil, err
	}
	cfg.MaxImageSide = uint(side)
	maxBytes, err := intEnv(EnvUploadMaxBytes, 10<<20)
	if err != nil {
		return nil, err
	}
	cfg.UploadMaxBytes = int64(maxBytes)

	switch cfg.Identifier {
	case IdentifierPlantID, IdentifierTFLite, IdentifierNone:
	default:
		return nil, fmt.Errorf("%s: unknown identifier %q", EnvIdentifier, cfg.Identifier)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, d)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %d", key, n)
	}
	return n, nil
}
