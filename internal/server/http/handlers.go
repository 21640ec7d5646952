package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	app "crop-doctor/internal/application"
	"crop-doctor/internal/container"
	"crop-doctor/internal/domain/entity"
)

// Handler обрабатывает запросы к API.
type Handler struct {
	services       *container.Container
	uploadMaxBytes int64
}

// NewHandler создаёт обработчики поверх контейнера.
func NewHandler(services *container.Container, uploadMaxBytes int64) *Handler {
	return &Handler{services: services, uploadMaxBytes: uploadMaxBytes}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Remedy: GET /api/remedy?label=
func (h *Handler) Remedy(c *gin.Context) {
	label, ok := requiredQuery(c, "label")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.services.RemedyResolver.Resolve(label))
}

// Description: GET /api/description?name=
func (h *Handler) Description(c *gin.Context) {
	name, ok := requiredQuery(c, "name")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.services.Descriptions.Describe(c.Request.Context(), name))
}

// Resolve: GET /api/resolve?label=, средство и описание одним ответом.
func (h *Handler) Resolve(c *gin.Context) {
	label, ok := requiredQuery(c, "label")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.services.DiagnosisService.Resolve(c.Request.Context(), label))
}

// Diagnose: POST /api/diagnose, multipart-поле "image".
func (h *Handler) Diagnose(c *gin.Context) {
	if c.Request.ContentLength > h.uploadMaxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "image is too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "image is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "no image uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "cannot open uploaded image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "cannot read uploaded image"})
		return
	}

	diag, err := h.services.DiagnosisService.Diagnose(c.Request.Context(), data)
	if err != nil {
		status, msg := diagnosisError(err)
		if status >= http.StatusInternalServerError {
			slog.Error("Diagnosis failed", "error", err)
		}
		c.JSON(status, errorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, diag)
}

func requiredQuery(c *gin.Context, key string) (string, bool) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "query parameter " + key + " is required"})
		return "", false
	}
	return v, true
}

func diagnosisError(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrPoorImage):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, entity.ErrNoResult):
		return http.StatusNotFound, "nothing identified on the image"
	case errors.Is(err, app.ErrIdentifierNotConfigured):
		return http.StatusServiceUnavailable, "photo identification is not configured"
	default:
		return http.StatusBadGateway, "identification failed"
	}
}
