package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"crop-doctor/internal/env"
)

const defaultLogFile = "logs/crop-doctor.log"

type options struct {
	level     slog.Leveler
	logToFile bool
	logFile   string
	console   io.Writer
}

// Option настраивает логгер.
type Option func(*options)

// WithLogToFile включает дублирование логов в файл с ротацией.
func WithLogToFile(enabled bool) Option {
	return func(o *options) { o.logToFile = enabled }
}

// WithLogFile задаёт путь к файлу логов.
func WithLogFile(path string) Option {
	return func(o *options) {
		if path != "" {
			o.logFile = path
		}
	}
}

// WithLevel переопределяет уровень логирования.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) { o.level = level }
}

// WithConsole подменяет вывод в консоль (используется в тестах).
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// New создаёт логгер: цветной tint в development, JSON в production,
// и JSON-файл через lumberjack, если он включён.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := &options{
		level:   slog.LevelDebug,
		logFile: defaultLogFile,
		console: os.Stderr,
	}
	if environment.IsProduction() {
		o.level = slog.LevelInfo
	}
	for _, opt := range opts {
		opt(o)
	}

	var console slog.Handler
	if environment.IsProduction() {
		console = slog.NewJSONHandler(o.console, &slog.HandlerOptions{Level: o.level})
	} else {
		console = tint.NewHandler(o.console, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
		})
	}

	if !o.logToFile {
		return slog.New(console)
	}

	file := &lumberjack.Logger{
		Filename:   o.logFile,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
	return slog.New(fanout{
		console,
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: o.level}),
	})
}
