// Copyright (c) 2026 BoiBritto. All rights reserved.

package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/core/genre"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/validate"
	"github.com/boibritto/boibritto-api/pkg/uuidv7"
)

// # Cross-Domain Contracts

// ChapterLister supplies the chapter summaries embedded in a book detail
// response, without this package importing the chapter domain.
type ChapterLister interface {

	/*
		SummariesForBook returns content-free chapter summaries for a book,
		ordered by chapter number. When includePrivate is false only public
		chapters are returned.
	*/
	SummariesForBook(context context.Context, bookID string, includePrivate bool) ([]*content.ChapterSummary, error)
}

// # Service Layer

// Service orchestrates book lifecycle, the book side of the visibility
// cascade, and the like toggle.
type Service struct {
	books    BookRepository
	chapters ChapterLister
	logger   *slog.Logger
}

// NewService constructs a new book [Service].
func NewService(books BookRepository, logger *slog.Logger) *Service {
	return &Service{
		books:  books,
		logger: logger,
	}
}

// WithChapterLister attaches the chapter summary source used by
// [Service.Get]. A nil lister leaves the chapters section empty.
func (service *Service) WithChapterLister(chapters ChapterLister) *Service {
	service.chapters = chapters
	return service
}

// # Listing

/*
List returns books matching the filter.

Description: Private books only ever surface under the "me" scope; the
repository folds the rule into the query itself.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - limit: int
  - offset: int

Returns:
  - []*Book: Matching books, newest first
  - int: Total matching books
*/
func (service *Service) List(context context.Context, filter ListFilter, limit, offset int) ([]*Book, int, error) {
	if filter.Scope.Kind == content.ScopeMine && filter.Scope.OwnerID == "" {
		return nil, 0, apperr.Unauthorized("Authentication required to list your own books")
	}
	return service.books.List(context, filter, limit, offset)
}

// # Lifecycle

// CreateInput carries the fields of a book creation request.
type CreateInput struct {
	Title      string   `json:"title"`
	Synopsis   string   `json:"synopsis"`
	Genres     []string `json:"genres"`
	Visibility string   `json:"visibility"`
	CoverImage string   `json:"cover_image"`
}

/*
Create validates and persists a new book owned by the requester.

Description: New books always start incomplete; completion is only
reachable once at least one chapter exists.

Parameters:
  - context: context.Context
  - authorID: string (Requester account)
  - input: CreateInput

Returns:
  - *Book: The created book
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, authorID string, input CreateInput) (*Book, error) {
	visibility := content.Visibility(input.Visibility)
	if input.Visibility == "" {
		visibility = content.VisibilityPrivate
	}

	title := strings.TrimSpace(input.Title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title)
	validator.MaxLen(FieldTitle, title, MaxTitleLen)
	validator.MaxLen(FieldSynopsis, input.Synopsis, MaxSynopsisLen)
	validator.Custom(FieldGenres, len(input.Genres) > MaxGenres, "Too many genres")
	if bad := genre.Invalid(input.Genres); bad != "" {
		validator.Custom(FieldGenres, true, "Unknown genre: "+bad)
	}
	validator.Custom(FieldVisibility, !visibility.Valid() || visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	book := &Book{
		ID:         uuidv7.New(),
		AuthorID:   authorID,
		Title:      title,
		Synopsis:   strings.TrimSpace(input.Synopsis),
		Genres:     input.Genres,
		Visibility: visibility,
		CoverImage: strings.TrimSpace(input.CoverImage),
	}
	if book.Genres == nil {
		book.Genres = []string{}
	}

	if err := service.books.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("author_id", authorID),
	)

	return book, nil
}

/*
Get returns a book detail with the chapters the requester may see.

Description: The owner sees every chapter; everyone else sees only
public chapters of a public book. Private books are hidden from
non-owners with 403.

Parameters:
  - context: context.Context
  - id: string
  - requesterID: string (empty for anonymous-equivalent requests)

Returns:
  - *Detail: Book plus visible chapter summaries
  - error: apperr.NotFound or apperr.Forbidden
*/
func (service *Service) Get(context context.Context, id, requesterID string) (*Detail, error) {
	book, err := service.books.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !content.CanAccess(book.Visibility, book.AuthorID, requesterID) {
		return nil, apperr.Forbidden("You do not have access to this book")
	}

	detail := &Detail{Book: book}
	if service.chapters != nil {
		includePrivate := book.AuthorID == requesterID
		if detail.Chapters, err = service.chapters.SummariesForBook(context, id, includePrivate); err != nil {
			return nil, err
		}
	}

	return detail, nil
}

// UpdateInput carries the mutable fields of a book PATCH request.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Title       *string   `json:"title"`
	Synopsis    *string   `json:"synopsis"`
	Genres      *[]string `json:"genres"`
	Visibility  *string   `json:"visibility"`
	CoverImage  *string   `json:"cover_image"`
	IsCompleted *bool     `json:"is_completed"`
}

/*
Update applies a partial update to a book owned by the requester.

Description: Enforces the book side of the visibility cascade. A book may
not go private while any of its chapters is still public, and it may not
be marked completed while it has no chapters.

Parameters:
  - context: context.Context
  - id: string
  - requesterID: string
  - input: UpdateInput

Returns:
  - *Book: The updated book
  - error: apperr.Forbidden (not owner), validation, or cascade errors
*/
func (service *Service) Update(context context.Context, id, requesterID string, input UpdateInput) (*Book, error) {
	book, err := service.books.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if book.AuthorID != requesterID {
		return nil, apperr.Forbidden("Only the author can update this book")
	}

	if input.Title != nil {
		book.Title = strings.TrimSpace(*input.Title)
	}
	if input.Synopsis != nil {
		book.Synopsis = strings.TrimSpace(*input.Synopsis)
	}
	if input.Genres != nil {
		book.Genres = *input.Genres
		if book.Genres == nil {
			book.Genres = []string{}
		}
	}
	if input.CoverImage != nil {
		book.CoverImage = strings.TrimSpace(*input.CoverImage)
	}
	if input.Visibility != nil {
		book.Visibility = content.Visibility(*input.Visibility)
	}
	if input.IsCompleted != nil {
		book.IsCompleted = *input.IsCompleted
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, book.Title)
	validator.MaxLen(FieldTitle, book.Title, MaxTitleLen)
	validator.MaxLen(FieldSynopsis, book.Synopsis, MaxSynopsisLen)
	validator.Custom(FieldGenres, len(book.Genres) > MaxGenres, "Too many genres")
	if bad := genre.Invalid(book.Genres); bad != "" {
		validator.Custom(FieldGenres, true, "Unknown genre: "+bad)
	}
	validator.Custom(FieldVisibility, !book.Visibility.Valid() || book.Visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Cascade guard: no private book may shelter public chapters.
	if input.Visibility != nil && book.Visibility == content.VisibilityPrivate {
		hasPublic, err := service.books.HasPublicChapters(context, id)
		if err != nil {
			return nil, err
		}
		if hasPublic {
			return nil, apperr.ValidationError("Cannot make the book private while it has public chapters")
		}
	}

	// Completion requires at least one chapter.
	if input.IsCompleted != nil && book.IsCompleted {
		count, err := service.books.CountChapters(context, id)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.ValidationError("Cannot mark a book without chapters as completed")
		}
	}

	if err := service.books.Update(context, book); err != nil {
		return nil, err
	}

	return book, nil
}

/*
Delete removes a book owned by the requester together with all of its
chapters.

Returns:
  - int: Number of chapters removed alongside the book
  - error: apperr.Forbidden if the requester is not the author
*/
func (service *Service) Delete(context context.Context, id, requesterID string) (int, error) {
	book, err := service.books.FindByID(context, id)
	if err != nil {
		return 0, err
	}
	if book.AuthorID != requesterID {
		return 0, apperr.Forbidden("Only the author can delete this book")
	}

	deleted, err := service.books.DeleteWithChapters(context, id)
	if err != nil {
		return 0, err
	}

	service.logger.Info("book_deleted",
		slog.String("book_id", id),
		slog.Int("chapters_deleted", deleted),
	)

	return deleted, nil
}

// # Like Toggle

/*
ToggleLike flips the requester's like on a public book.

Description: Removal is attempted first; when no membership existed the
like is added instead. Each branch is a single atomic statement, so
concurrent toggles settle on a consistent final state.

Parameters:
  - context: context.Context
  - id: string (Book)
  - requesterID: string

Returns:
  - *content.LikeResult: New liked state and fresh like count
  - error: apperr.Forbidden for private books, apperr.ValidationError for
    the author's own book
*/
func (service *Service) ToggleLike(context context.Context, id, requesterID string) (*content.LikeResult, error) {
	book, err := service.books.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if book.Visibility != content.VisibilityPublic {
		return nil, apperr.Forbidden("Only public books can be liked")
	}
	if book.AuthorID == requesterID {
		return nil, apperr.ValidationError("You cannot like your own book")
	}

	removed, err := service.books.RemoveLike(context, id, requesterID)
	if err != nil {
		return nil, err
	}

	liked := false
	if !removed {
		if _, err := service.books.AddLike(context, id, requesterID); err != nil {
			return nil, err
		}
		liked = true
	}

	count, err := service.books.CountLikes(context, id)
	if err != nil {
		return nil, err
	}

	return &content.LikeResult{Liked: liked, LikeCount: count}, nil
}
