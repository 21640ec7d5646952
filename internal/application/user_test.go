package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/infrastructure/storage"
)

func TestUserService_BeginCheckAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginCheck(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.StartProcessing(ctx, 2, 20)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

func TestUserService_FinishRemembersDiagnosis(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.StartProcessing(ctx, 3, 30)
	require.NoError(t, err)

	diag := &entity.Diagnosis{Identification: entity.Identification{PlantName: "Tomato", DiseaseName: "Early blight"}}
	user, err := svc.Finish(ctx, 3, 30, diag)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
	require.Equal(t, "Early blight", user.LastLabel())

	user, err = svc.Finish(ctx, 3, 30, nil)
	require.NoError(t, err)
	require.Equal(t, "Tomato", user.LastPlant)
}
