package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crop-doctor/internal/container"
)

// DefaultUploadMaxBytes ограничивает размер загружаемого фото.
const DefaultUploadMaxBytes int64 = 10 << 20

const shutdownTimeout = 10 * time.Second

// Server: HTTP API поверх сервисов контейнера.
type Server struct {
	addr   string
	engine *gin.Engine
}

// Options настраивают сервер.
type Options struct {
	Addr           string
	UploadMaxBytes int64
	Release        bool // gin.ReleaseMode
}

// New создаёт сервер и регистрирует маршруты.
func New(services *container.Container, opts Options) *Server {
	if opts.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.UploadMaxBytes <= 0 {
		opts.UploadMaxBytes = DefaultUploadMaxBytes
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	h := NewHandler(services, opts.UploadMaxBytes)

	engine.GET("/healthz", h.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	api.POST("/diagnose", h.Diagnose)
	api.GET("/remedy", h.Remedy)
	api.GET("/description", h.Description)
	api.GET("/resolve", h.Resolve)

	return &Server{addr: opts.Addr, engine: engine}
}

// Handler возвращает http.Handler, удобно для httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run слушает адрес до отмены ctx и затем аккуратно гасит соединения.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
