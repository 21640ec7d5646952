package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"crop-doctor/internal/container"
	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
	"crop-doctor/internal/infrastructure/storage"
)

type mockSummaries struct {
	mock.Mock
}

func (m *mockSummaries) Lookup(ctx context.Context, term string) (*entity.Summary, error) {
	args := m.Called(ctx, term)
	if s, ok := args.Get(0).(*entity.Summary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockIdentifier struct {
	mock.Mock
}

func (m *mockIdentifier) Name() string { return "mock" }

func (m *mockIdentifier) Identify(ctx context.Context, imageData []byte) (*entity.Identification, error) {
	args := m.Called(ctx, imageData)
	if ident, ok := args.Get(0).(*entity.Identification); ok {
		return ident, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIdentifier) Close() error { return nil }

func newTestServer(t *testing.T, summaries port.SummaryProvider, identifier port.Identifier, maxBytes int64) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	table, err := storage.DefaultRemedyTable()
	require.NoError(t, err)

	c := container.New(container.Deps{
		Users:      storage.NewMemoryUserRepository(),
		Remedies:   storage.NewStaticRemedySource(table),
		Summaries:  summaries,
		Identifier: identifier,
	})
	return New(c, Options{UploadMaxBytes: maxBytes}).Handler()
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func uploadRequest(t *testing.T, field string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "leaf.jpg")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/diagnose", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, nil, nil, 0)

	rec := doGet(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRemedy(t *testing.T) {
	h := newTestServer(t, nil, nil, 0)

	tests := []struct {
		label string
		stage entity.RemedyStage
	}{
		{"Late blight", entity.StageExact},
		{"Tomato___Late_blight", entity.StageSubstring},
		{"Some fungal thing", entity.StageCategory},
		{"xyzzy", entity.StageNone},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			rec := doGet(t, h, "/api/remedy?label="+url.QueryEscape(tt.label))
			require.Equal(t, http.StatusOK, rec.Code)

			var res entity.RemedyResolution
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			require.Equal(t, tt.label, res.Label)
			require.Equal(t, tt.stage, res.Stage)
			require.NotEmpty(t, res.Remedy)
		})
	}
}

func TestRemedy_MissingLabel(t *testing.T) {
	h := newTestServer(t, nil, nil, 0)

	rec := doGet(t, h, "/api/remedy?label=%20")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "label")
}

func TestDescription(t *testing.T) {
	summaries := new(mockSummaries)
	summaries.On("Lookup", mock.Anything, "Rust").Return(nil, errors.New("timeout"))
	summaries.On("Lookup", mock.Anything, "Rust disease").
		Return(&entity.Summary{Title: "Rust (fungus)", Extract: "Rusts are plant diseases.", URL: "https://example.org/Rust"}, nil)

	h := newTestServer(t, summaries, nil, 0)

	rec := doGet(t, h, "/api/description?name=Rust")
	require.Equal(t, http.StatusOK, rec.Code)

	var desc entity.Description
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &desc))
	require.True(t, desc.Found)
	require.Equal(t, "Rust disease", desc.Term)
	require.Equal(t, "Rusts are plant diseases.", desc.Text)
	summaries.AssertExpectations(t)
}

func TestResolve_NoProvider(t *testing.T) {
	h := newTestServer(t, nil, nil, 0)

	rec := doGet(t, h, "/api/resolve?label=Rust")
	require.Equal(t, http.StatusOK, rec.Code)

	var res entity.Resolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, entity.StageExact, res.Remedy.Stage)
	require.Equal(t, entity.NoDescription, res.Description.Text)
}

func TestDiagnose(t *testing.T) {
	photo := []byte("jpeg bytes")
	identifier := new(mockIdentifier)
	identifier.On("Identify", mock.Anything, photo).
		Return(&entity.Identification{PlantName: "Tomato", DiseaseName: "Late blight", Confidence: 0.9}, nil)

	h := newTestServer(t, nil, identifier, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "image", photo))
	require.Equal(t, http.StatusOK, rec.Code)

	var diag entity.Diagnosis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &diag))
	assert.NotEmpty(t, diag.ID)
	assert.Equal(t, "mock", diag.Identification.Provider)
	assert.Equal(t, entity.StageExact, diag.Remedy.Stage)
	assert.Contains(t, diag.Remedy.Remedy, "copper")
	identifier.AssertExpectations(t)
}

func TestDiagnose_Errors(t *testing.T) {
	tests := []struct {
		name       string
		identifier port.Identifier
		err        error
		field      string
		status     int
	}{
		{name: "missing field", identifier: new(mockIdentifier), field: "file", status: http.StatusBadRequest},
		{name: "not configured", field: "image", status: http.StatusServiceUnavailable},
		{name: "no result", identifier: new(mockIdentifier), err: entity.ErrNoResult, field: "image", status: http.StatusNotFound},
		{name: "poor image", identifier: new(mockIdentifier), err: fmt.Errorf("%w: too dark", entity.ErrPoorImage), field: "image", status: http.StatusUnprocessableEntity},
		{name: "upstream", identifier: new(mockIdentifier), err: errors.New("503"), field: "image", status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m, ok := tt.identifier.(*mockIdentifier); ok {
				m.On("Identify", mock.Anything, mock.Anything).Return(nil, tt.err).Maybe()
			}

			h := newTestServer(t, nil, tt.identifier, 0)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, uploadRequest(t, tt.field, []byte("jpeg")))
			require.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDiagnose_TooLarge(t *testing.T) {
	h := newTestServer(t, nil, new(mockIdentifier), 16)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, uploadRequest(t, "image", bytes.Repeat([]byte("x"), 1024)))
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
