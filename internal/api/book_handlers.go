package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/search",
		Summary:     "Search books",
		Description: "Searches the book catalog by title, author or keyword",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUserBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/user",
		Summary:     "List user books",
		Description: "Returns the authenticated user's read list, to-read list and reading statistics",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUserBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToReadList",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/to-read",
		Summary:     "Add book to to-read list",
		Description: "Adds a book to the authenticated user's to-read list",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddToReadList)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToReadBooks",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/read",
		Summary:     "Mark book as read",
		Description: "Adds a book to the authenticated user's read list and updates reading statistics",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddToReadBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromToReadList",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/to-read/{bookId}",
		Summary:     "Remove book from to-read list",
		Description: "Removes a book from the authenticated user's to-read list",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFromToReadList)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromReadBooks",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/read/{bookId}",
		Summary:     "Remove book from read list",
		Description: "Removes a book from the authenticated user's read list and rolls back its statistics",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFromReadBooks)
}

// === DTOs ===

// BookRequest is the denormalized book payload clients send when shelving a
// book, typically copied from a search result.
type BookRequest struct {
	ID            string   `json:"id" minLength:"1" maxLength:"100" validate:"required,max=100" doc:"Catalog volume ID"`
	Title         string   `json:"title" minLength:"1" maxLength:"500" validate:"required,max=500" doc:"Book title"`
	Authors       []string `json:"authors,omitempty" doc:"Author names"`
	Description   string   `json:"description,omitempty" doc:"Book description"`
	PublishedDate string   `json:"published_date,omitempty" validate:"omitempty,max=50" doc:"Publication date"`
	PageCount     int      `json:"page_count,omitempty" validate:"omitempty,min=0" doc:"Number of pages"`
	Tags          []string `json:"tags,omitempty" doc:"Genre tags"`
	Thumbnail     string   `json:"thumbnail,omitempty" validate:"omitempty,max=2048" doc:"Cover thumbnail URL"`
	Language      string   `json:"language,omitempty" validate:"omitempty,max=10" doc:"Language code"`
	PreviewLink   string   `json:"preview_link,omitempty" validate:"omitempty,max=2048" doc:"Catalog preview URL"`
	AverageRating float64  `json:"average_rating,omitempty" doc:"Catalog average rating"`
	RatingsCount  int      `json:"ratings_count,omitempty" doc:"Catalog ratings count"`
}

// BookInput wraps a book payload for Huma.
type BookInput struct {
	Body BookRequest
}

// BookIDInput carries a book ID path parameter.
type BookIDInput struct {
	BookID string `path:"bookId" maxLength:"100" doc:"Catalog volume ID"`
}

// BookResponse is a shelved or searched book in API responses.
type BookResponse struct {
	ID            string    `json:"id" doc:"Catalog volume ID"`
	Title         string    `json:"title" doc:"Book title"`
	Authors       []string  `json:"authors,omitempty" doc:"Author names"`
	Description   string    `json:"description,omitempty" doc:"Book description"`
	PublishedDate string    `json:"published_date,omitempty" doc:"Publication date"`
	PageCount     int       `json:"page_count,omitempty" doc:"Number of pages"`
	Tags          []string  `json:"tags,omitempty" doc:"Genre tags"`
	Thumbnail     string    `json:"thumbnail,omitempty" doc:"Cover thumbnail URL"`
	Language      string    `json:"language,omitempty" doc:"Language code"`
	PreviewLink   string    `json:"preview_link,omitempty" doc:"Catalog preview URL"`
	AverageRating float64   `json:"average_rating,omitempty" doc:"Catalog average rating"`
	RatingsCount  int       `json:"ratings_count,omitempty" doc:"Catalog ratings count"`
	DateAdded     time.Time `json:"date_added,omitzero" doc:"When the book was shelved"`
}

// ReadingStatsResponse contains a user's derived reading statistics.
type ReadingStatsResponse struct {
	TotalBooksRead int      `json:"total_books_read" doc:"Books marked as read"`
	TotalPagesRead int      `json:"total_pages_read" doc:"Pages across read books"`
	AverageRating  float64  `json:"average_rating" doc:"Average rating placeholder"`
	ReadingTime    int      `json:"reading_time" doc:"Reading time placeholder"`
	FavoriteGenres []string `json:"favorite_genres" doc:"Up to five favorite genres"`
	CurrentStreak  int      `json:"current_streak" doc:"Current streak placeholder"`
	LongestStreak  int      `json:"longest_streak" doc:"Longest streak placeholder"`
}

// LibraryResponse is the user's full library state after a list operation.
type LibraryResponse struct {
	Message     string               `json:"message,omitempty" doc:"Operation result message"`
	BooksRead   []BookResponse       `json:"books_read" doc:"Read list"`
	BooksToRead []BookResponse       `json:"books_to_read" doc:"To-read list"`
	Stats       ReadingStatsResponse `json:"reading_stats" doc:"Reading statistics"`
}

// LibraryOutput wraps the library response for Huma.
type LibraryOutput struct {
	Body LibraryResponse
}

// SearchBooksInput carries catalog search query parameters.
type SearchBooksInput struct {
	Query string `query:"q" maxLength:"500" doc:"Search query"`
}

// SearchBooksResponse contains catalog search results.
type SearchBooksResponse struct {
	Books []BookResponse `json:"books" doc:"Matching books"`
	Total int            `json:"total" doc:"Number of results returned"`
}

// SearchBooksOutput wraps the search response for Huma.
type SearchBooksOutput struct {
	Body SearchBooksResponse
}

// === Handlers ===

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchBooksInput) (*SearchBooksOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	results, err := s.services.Catalog.Search(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	books := make([]BookResponse, 0, len(results))
	for _, entry := range results {
		books = append(books, mapBookResponse(entry))
	}

	return &SearchBooksOutput{
		Body: SearchBooksResponse{
			Books: books,
			Total: len(books),
		},
	}, nil
}

func (s *Server) handleListUserBooks(ctx context.Context, _ *struct{}) (*LibraryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	books, err := s.services.Library.ListUserBooks(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &LibraryOutput{
		Body: mapLibraryResponse("", books.ReadBooks, books.ToReadBooks, books.Stats),
	}, nil
}

func (s *Server) handleAddToReadList(ctx context.Context, input *BookInput) (*LibraryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Library.AddToReadList(ctx, userID, mapBookEntry(input.Body))
	if err != nil {
		return nil, err
	}

	return &LibraryOutput{
		Body: mapLibraryResponse("Book added to to-read list", user.ReadBooks, user.ToReadBooks, user.Stats),
	}, nil
}

func (s *Server) handleAddToReadBooks(ctx context.Context, input *BookInput) (*LibraryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Library.AddToReadBooks(ctx, userID, mapBookEntry(input.Body))
	if err != nil {
		return nil, err
	}

	return &LibraryOutput{
		Body: mapLibraryResponse("Book marked as read", user.ReadBooks, user.ToReadBooks, user.Stats),
	}, nil
}

func (s *Server) handleRemoveFromToReadList(ctx context.Context, input *BookIDInput) (*LibraryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Library.RemoveFromToReadList(ctx, userID, input.BookID)
	if err != nil {
		return nil, err
	}

	return &LibraryOutput{
		Body: mapLibraryResponse("Book removed from to-read list", user.ReadBooks, user.ToReadBooks, user.Stats),
	}, nil
}

func (s *Server) handleRemoveFromReadBooks(ctx context.Context, input *BookIDInput) (*LibraryOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Library.RemoveFromReadBooks(ctx, userID, input.BookID)
	if err != nil {
		return nil, err
	}

	return &LibraryOutput{
		Body: mapLibraryResponse("Book removed from read list", user.ReadBooks, user.ToReadBooks, user.Stats),
	}, nil
}

// === Helpers ===

func mapBookEntry(req BookRequest) domain.BookEntry {
	return domain.BookEntry{
		ID:            req.ID,
		Title:         req.Title,
		Authors:       req.Authors,
		Description:   req.Description,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Tags:          req.Tags,
		Thumbnail:     req.Thumbnail,
		Language:      req.Language,
		PreviewLink:   req.PreviewLink,
		AverageRating: req.AverageRating,
		RatingsCount:  req.RatingsCount,
	}
}

func mapBookResponse(entry domain.BookEntry) BookResponse {
	return BookResponse{
		ID:            entry.ID,
		Title:         entry.Title,
		Authors:       entry.Authors,
		Description:   entry.Description,
		PublishedDate: entry.PublishedDate,
		PageCount:     entry.PageCount,
		Tags:          entry.Tags,
		Thumbnail:     entry.Thumbnail,
		Language:      entry.Language,
		PreviewLink:   entry.PreviewLink,
		AverageRating: entry.AverageRating,
		RatingsCount:  entry.RatingsCount,
		DateAdded:     entry.DateAdded,
	}
}

func mapBookList(list domain.BookList) []BookResponse {
	books := make([]BookResponse, 0, len(list))
	for _, entry := range list {
		books = append(books, mapBookResponse(entry))
	}
	return books
}

func mapLibraryResponse(message string, read, toRead domain.BookList, stats domain.ReadingStats) LibraryResponse {
	return LibraryResponse{
		Message:     message,
		BooksRead:   mapBookList(read),
		BooksToRead: mapBookList(toRead),
		Stats: ReadingStatsResponse{
			TotalBooksRead: stats.TotalBooksRead,
			TotalPagesRead: stats.TotalPagesRead,
			AverageRating:  stats.AverageRating,
			ReadingTime:    stats.ReadingTime,
			FavoriteGenres: stats.FavoriteGenres,
			CurrentStreak:  stats.CurrentStreak,
			LongestStreak:  stats.LongestStreak,
		},
	}
}
