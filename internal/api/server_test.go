package api

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/shelfmarkapp/shelfmark-server/internal/auth"
	"github.com/shelfmarkapp/shelfmark-server/internal/config"
	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	domainerrors "github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/service"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
	"github.com/shelfmarkapp/shelfmark-server/internal/validation"
)

// testEnvelope mirrors APIEnvelope with typed data for test decoding.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// fakeSearcher serves canned catalog results without hitting the network.
type fakeSearcher struct {
	results []domain.BookEntry
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, _ string) ([]domain.BookEntry, error) {
	return f.results, f.err
}

func (f *fakeSearcher) GetVolume(_ context.Context, volumeID string) (*domain.BookEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.results {
		if f.results[i].ID == volumeID {
			return &f.results[i], nil
		}
	}
	return nil, domainerrors.NotFound("volume not found")
}

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api      humatest.TestAPI
	searcher *fakeSearcher
	cleanup  func()
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "shelfmark-api-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	st, err := store.New(dbPath, nil)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Name:         "Shelfmark Test",
			Port:         "0",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Auth: config.AuthConfig{
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 30 * 24 * time.Hour,
		},
	}

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	cfg.Auth.AccessTokenKey = authKey

	tokenService, err := auth.NewTokenService(
		authKey,
		cfg.Auth.AccessTokenDuration,
		cfg.Auth.RefreshTokenDuration,
	)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	searcher := &fakeSearcher{}

	sessionService := service.NewSessionService(st, tokenService, logger)
	authService := service.NewAuthService(st, tokenService, sessionService, validation.New(), logger)

	services := &Services{
		Auth:    authService,
		Session: sessionService,
		Library: service.NewLibraryService(st, logger),
		Catalog: service.NewCatalogService(searcher, logger),
	}

	s := NewServer(cfg, st, services, logger)

	testAPI := humatest.Wrap(t, s.api)

	cleanup := func() {
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:   s,
		api:      testAPI,
		searcher: searcher,
		cleanup:  cleanup,
	}
}
