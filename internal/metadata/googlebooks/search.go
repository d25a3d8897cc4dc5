package googlebooks

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
)

// unknownAuthor is used when a volume carries no author metadata.
const unknownAuthor = "Unknown Author"

// ErrVolumeNotFound is returned when a volume ID does not exist upstream.
var ErrVolumeNotFound = errors.New("volume not found")

// Search queries the volumes API and maps results to book entries.
// Only print books are returned (no magazines).
func (c *Client) Search(ctx context.Context, query string) ([]domain.BookEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("empty search query")
	}

	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	params.Set("printType", "books")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	searchURL := c.baseURL + "/volumes?" + params.Encode()

	c.logger.Debug("searching Google Books",
		"query", query,
		"max_results", c.maxResults,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp)
	}

	var volumesResp volumesResponse
	if err := json.UnmarshalRead(resp.Body, &volumesResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("Google Books search results",
		"query", query,
		"total", volumesResp.TotalItems,
		"returned", len(volumesResp.Items),
	)

	results := make([]domain.BookEntry, 0, len(volumesResp.Items))
	for i := range volumesResp.Items {
		results = append(results, mapVolume(&volumesResp.Items[i]))
	}

	return results, nil
}

// GetVolume fetches a single volume by ID.
// Returns ErrVolumeNotFound if the ID does not exist.
func (c *Client) GetVolume(ctx context.Context, volumeID string) (*domain.BookEntry, error) {
	if volumeID == "" {
		return nil, errors.New("empty volume ID")
	}

	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	volumeURL := c.baseURL + "/volumes/" + url.PathEscape(volumeID)
	if c.apiKey != "" {
		volumeURL += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, volumeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("volume request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrVolumeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp)
	}

	var vol volume
	if err := json.UnmarshalRead(resp.Body, &vol); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	entry := mapVolume(&vol)
	return &entry, nil
}

// upstreamError decodes Google's error envelope, falling back to the
// bare status code.
func (c *Client) upstreamError(resp *http.Response) error {
	var apiErr apiError
	if err := json.UnmarshalRead(resp.Body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("google books: %s (status %d)", apiErr.Error.Message, resp.StatusCode)
	}
	return fmt.Errorf("google books: status %d", resp.StatusCode)
}

// mapVolume converts a raw volume into a book entry.
func mapVolume(v *volume) domain.BookEntry {
	info := &v.VolumeInfo

	authors := info.Authors
	if len(authors) == 0 {
		authors = []string{unknownAuthor}
	}

	return domain.BookEntry{
		ID:            v.ID,
		Title:         info.Title,
		Authors:       authors,
		Description:   info.Description,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Tags:          info.Categories,
		Thumbnail:     secureThumbnail(info.ImageLinks.Thumbnail),
		Language:      info.Language,
		PreviewLink:   info.PreviewLink,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
	}
}

// secureThumbnail upgrades Google's http thumbnail links to https so
// they load on pages served over TLS.
func secureThumbnail(link string) string {
	if strings.HasPrefix(link, "http://") {
		return "https://" + strings.TrimPrefix(link, "http://")
	}
	return link
}
