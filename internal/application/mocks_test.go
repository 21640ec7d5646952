package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"crop-doctor/internal/domain/entity"
)

type MockSummaryProvider struct {
	mock.Mock
}

func (m *MockSummaryProvider) Lookup(ctx context.Context, term string) (*entity.Summary, error) {
	args := m.Called(ctx, term)
	if s, ok := args.Get(0).(*entity.Summary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockIdentifier struct {
	mock.Mock
}

func (m *MockIdentifier) Name() string {
	return "mock"
}

func (m *MockIdentifier) Identify(ctx context.Context, imageData []byte) (*entity.Identification, error) {
	args := m.Called(ctx, imageData)
	if ident, ok := args.Get(0).(*entity.Identification); ok {
		return ident, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockIdentifier) Close() error {
	return m.Called().Error(0)
}

type MockInspector struct {
	mock.Mock
}

func (m *MockInspector) Inspect(ctx context.Context, imageData []byte) error {
	return m.Called(ctx, imageData).Error(0)
}
