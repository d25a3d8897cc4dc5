package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	domainerrors "github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata/googlebooks"
)

// BookSearcher is the upstream catalog the service queries.
// Satisfied by *googlebooks.Client; faked in tests.
type BookSearcher interface {
	Search(ctx context.Context, query string) ([]domain.BookEntry, error)
	GetVolume(ctx context.Context, volumeID string) (*domain.BookEntry, error)
}

// CatalogService searches the external book catalog.
type CatalogService struct {
	client BookSearcher
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(client BookSearcher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		client: client,
		logger: logger,
	}
}

// Search queries the catalog for books matching the query.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.BookEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domainerrors.Validation("search query is required")
	}

	results, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, domainerrors.Persistence("catalog search failed", err)
	}

	return results, nil
}

// GetBook fetches a single book from the catalog by its volume ID.
func (s *CatalogService) GetBook(ctx context.Context, volumeID string) (*domain.BookEntry, error) {
	if volumeID == "" {
		return nil, domainerrors.Validation("book ID is required")
	}

	book, err := s.client.GetVolume(ctx, volumeID)
	if err != nil {
		if errors.Is(err, googlebooks.ErrVolumeNotFound) {
			return nil, domainerrors.NotFound(fmt.Sprintf("book %s not found", volumeID))
		}
		return nil, domainerrors.Persistence("catalog lookup failed", err)
	}

	return book, nil
}
