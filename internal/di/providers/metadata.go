package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfmarkapp/shelfmark-server/internal/config"
	"github.com/shelfmarkapp/shelfmark-server/internal/logger"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata/googlebooks"
)

// ProvideGoogleBooksClient provides the Google Books volumes API client.
func ProvideGoogleBooksClient(i do.Injector) (*googlebooks.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := googlebooks.NewClient(googlebooks.Config{
		BaseURL:           cfg.GoogleBooks.BaseURL,
		APIKey:            cfg.GoogleBooks.APIKey,
		MaxResults:        cfg.GoogleBooks.MaxResults,
		RequestsPerSecond: cfg.GoogleBooks.RequestsPerSecond,
	}, log.Logger)

	if cfg.GoogleBooks.APIKey == "" {
		log.Info("Google Books client running without API key (reduced quota)")
	}

	return client, nil
}
