package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crop-doctor/internal/env"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // без .env
	for _, key := range []string{
		env.Variable, EnvTelegramToken, EnvHTTPAddr, EnvIdentifier, EnvSummaryTimeout,
		EnvIdentifyTimeout, EnvWatchRemedyTable, EnvMaxImageSide, EnvUploadMaxBytes,
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, env.Development, cfg.Env)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, IdentifierPlantID, cfg.Identifier)
	require.Equal(t, 6*time.Second, cfg.SummaryTimeout)
	require.Equal(t, 30*time.Second, cfg.IdentifyTimeout)
	require.Equal(t, uint(1024), cfg.MaxImageSide)
	require.Equal(t, int64(10<<20), cfg.UploadMaxBytes)
	require.False(t, cfg.WatchRemedyTable)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(env.Variable, "production")
	t.Setenv(EnvIdentifier, "TFLite")
	t.Setenv(EnvSummaryTimeout, "2s")
	t.Setenv(EnvWatchRemedyTable, "true")
	t.Setenv(EnvMaxImageSide, "512")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, env.Production, cfg.Env)
	require.Equal(t, IdentifierTFLite, cfg.Identifier)
	require.Equal(t, 2*time.Second, cfg.SummaryTimeout)
	require.True(t, cfg.WatchRemedyTable)
	require.Equal(t, uint(512), cfg.MaxImageSide)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	cases := map[string]string{
		EnvSummaryTimeout:   "soon",
		EnvIdentifyTimeout:  "-1s",
		EnvWatchRemedyTable: "maybe",
		EnvMaxImageSide:     "-5",
		EnvIdentifier:       "oracle",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			require.ErrorContains(t, err, key)
		})
	}
}
