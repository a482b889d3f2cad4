// Copyright (c) 2026 BoiBritto. All rights reserved.

package chapter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/boibritto/boibritto-api/internal/core/book"
	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/validate"
	"github.com/boibritto/boibritto-api/pkg/uuidv7"
)

// # Cross-Domain Contracts

// ParentBooks is the slice of the book repository this service needs to
// enforce the visibility cascade against the parent book.
type ParentBooks interface {
	FindByID(context context.Context, id string) (*book.Book, error)
}

// # Service Layer

// Service orchestrates chapter lifecycle, the chapter side of the
// visibility cascade, and the like toggle.
type Service struct {
	chapters ChapterRepository
	books    ParentBooks
	logger   *slog.Logger
}

// NewService constructs a new chapter [Service].
func NewService(chapters ChapterRepository, books ParentBooks, logger *slog.Logger) *Service {
	return &Service{
		chapters: chapters,
		books:    books,
		logger:   logger,
	}
}

// SummariesForBook implements [book.ChapterLister] so book details can
// embed chapter summaries without the book domain importing this one.
func (service *Service) SummariesForBook(context context.Context, bookID string, includePrivate bool) ([]*content.ChapterSummary, error) {
	return service.chapters.ListByBook(context, bookID, !includePrivate)
}

// # Listing

/*
ListForBook returns the chapter summaries of a book the requester may see.

Description: The parent book's access gate applies first; a private book
hides its entire chapter list from non-authors. Authors additionally see
their private chapters.

Parameters:
  - context: context.Context
  - bookID: string
  - requesterID: string

Returns:
  - []*content.ChapterSummary: Ordered chapter summaries, content excluded
  - error: apperr.NotFound (book) or apperr.Forbidden
*/
func (service *Service) ListForBook(context context.Context, bookID, requesterID string) ([]*content.ChapterSummary, error) {
	parent, err := service.books.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}
	if !content.CanAccess(parent.Visibility, parent.AuthorID, requesterID) {
		return nil, apperr.Forbidden("You do not have access to this book")
	}

	publicOnly := parent.AuthorID != requesterID
	return service.chapters.ListByBook(context, bookID, publicOnly)
}

// # Lifecycle

// CreateInput carries the fields of a chapter creation request.
type CreateInput struct {
	ChapterNumber int    `json:"chapter_number"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Visibility    string `json:"visibility"`
}

/*
Create validates and persists a new chapter under a book.

Description: Only the book's author may add chapters. A public chapter
requires the parent book to already be public. The word count is derived
from the content; any client-supplied value is ignored.

Parameters:
  - context: context.Context
  - bookID: string (Parent book)
  - requesterID: string
  - input: CreateInput

Returns:
  - *Chapter: The created chapter
  - error: apperr.Forbidden, validation, or apperr.Conflict (number taken)
*/
func (service *Service) Create(context context.Context, bookID, requesterID string, input CreateInput) (*Chapter, error) {
	parent, err := service.books.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}
	if parent.AuthorID != requesterID {
		return nil, apperr.Forbidden("Only the book's author can add chapters")
	}

	visibility := content.Visibility(input.Visibility)
	if input.Visibility == "" {
		visibility = content.VisibilityPrivate
	}

	title := strings.TrimSpace(input.Title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title)
	validator.MaxLen(FieldTitle, title, MaxTitleLen)
	validator.MaxLen(FieldContent, input.Content, MaxContentLen)
	validator.Custom(FieldChapterNumber, input.ChapterNumber < 1, "Chapter number must be at least 1")
	validator.Custom(FieldVisibility, !visibility.Valid() || visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Cascade guard: no public chapter may sit under a non-public book.
	if visibility == content.VisibilityPublic && parent.Visibility != content.VisibilityPublic {
		return nil, apperr.ValidationError("Cannot publish a chapter while the book is private")
	}

	chapter := &Chapter{
		ID:            uuidv7.New(),
		BookID:        bookID,
		AuthorID:      requesterID,
		ChapterNumber: input.ChapterNumber,
		Title:         title,
		Content:       input.Content,
		WordCount:     CountWords(input.Content),
		Visibility:    visibility,
	}

	if err := service.chapters.Create(context, chapter); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("book_id", bookID),
		slog.Int("chapter_number", chapter.ChapterNumber),
	)

	return chapter, nil
}

/*
Get returns a full chapter including its content.

Description: Authors always see their chapters. Everyone else only sees
public chapters; the cascade invariant guarantees those sit under public
books.

Returns:
  - *Chapter: Hydrated entity with content
  - error: apperr.NotFound or apperr.Forbidden
*/
func (service *Service) Get(context context.Context, id, requesterID string) (*Chapter, error) {
	chapter, err := service.chapters.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !content.CanAccess(chapter.Visibility, chapter.AuthorID, requesterID) {
		return nil, apperr.Forbidden("You do not have access to this chapter")
	}

	return chapter, nil
}

// UpdateInput carries the mutable fields of a chapter PATCH request.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	ChapterNumber *int    `json:"chapter_number"`
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Visibility    *string `json:"visibility"`
}

/*
Update applies a partial update to a chapter owned by the requester.

Description: Changing the content recomputes the word count. The cascade
guard runs whenever the resulting visibility is public, not only when the
visibility field itself changed, so a stale row can never slip through.

Parameters:
  - context: context.Context
  - id: string
  - requesterID: string
  - input: UpdateInput

Returns:
  - *Chapter: The updated chapter
  - error: apperr.Forbidden, validation, or apperr.Conflict (number taken)
*/
func (service *Service) Update(context context.Context, id, requesterID string, input UpdateInput) (*Chapter, error) {
	chapter, err := service.chapters.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if chapter.AuthorID != requesterID {
		return nil, apperr.Forbidden("Only the author can update this chapter")
	}

	if input.ChapterNumber != nil {
		chapter.ChapterNumber = *input.ChapterNumber
	}
	if input.Title != nil {
		chapter.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		chapter.Content = *input.Content
		chapter.WordCount = CountWords(*input.Content)
	}
	if input.Visibility != nil {
		chapter.Visibility = content.Visibility(*input.Visibility)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title)
	validator.MaxLen(FieldTitle, chapter.Title, MaxTitleLen)
	validator.MaxLen(FieldContent, chapter.Content, MaxContentLen)
	validator.Custom(FieldChapterNumber, chapter.ChapterNumber < 1, "Chapter number must be at least 1")
	validator.Custom(FieldVisibility, !chapter.Visibility.Valid() || chapter.Visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if chapter.Visibility == content.VisibilityPublic {
		parent, err := service.books.FindByID(context, chapter.BookID)
		if err != nil {
			return nil, err
		}
		if parent.Visibility != content.VisibilityPublic {
			return nil, apperr.ValidationError("Cannot publish a chapter while the book is private")
		}
	}

	if err := service.chapters.Update(context, chapter); err != nil {
		return nil, err
	}

	return chapter, nil
}

/*
Delete removes a chapter owned by the requester.

Returns:
  - error: apperr.Forbidden if the requester is not the author
*/
func (service *Service) Delete(context context.Context, id, requesterID string) error {
	chapter, err := service.chapters.FindByID(context, id)
	if err != nil {
		return err
	}
	if chapter.AuthorID != requesterID {
		return apperr.Forbidden("Only the author can delete this chapter")
	}

	if err := service.chapters.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted",
		slog.String("chapter_id", id),
		slog.String("book_id", chapter.BookID),
	)

	return nil
}

// # Like Toggle

/*
ToggleLike flips the requester's like on a public chapter.

Parameters:
  - context: context.Context
  - id: string (Chapter)
  - requesterID: string

Returns:
  - *content.LikeResult: New liked state and fresh like count
  - error: apperr.Forbidden for private chapters, apperr.ValidationError for
    the author's own work
*/
func (service *Service) ToggleLike(context context.Context, id, requesterID string) (*content.LikeResult, error) {
	chapter, err := service.chapters.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if chapter.Visibility != content.VisibilityPublic {
		return nil, apperr.Forbidden("Only public chapters can be liked")
	}
	if chapter.AuthorID == requesterID {
		return nil, apperr.ValidationError("You cannot like your own chapter")
	}

	removed, err := service.chapters.RemoveLike(context, id, requesterID)
	if err != nil {
		return nil, err
	}

	liked := false
	if !removed {
		if _, err := service.chapters.AddLike(context, id, requesterID); err != nil {
			return nil, err
		}
		liked = true
	}

	count, err := service.chapters.CountLikes(context, id)
	if err != nil {
		return nil, err
	}

	return &content.LikeResult{Liked: liked, LikeCount: count}, nil
}
