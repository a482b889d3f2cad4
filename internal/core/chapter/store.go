// Copyright (c) 2026 BoiBritto. All rights reserved.

package chapter

import (
	"context"

	"github.com/boibritto/boibritto-api/internal/core/content"
)

// # Chapter Data Access

// ChapterRepository defines the data access contract for chapters and
// their like memberships.
type ChapterRepository interface {

	/*
		ListByBook returns content-free summaries of a book's chapters,
		ordered by chapter number. When publicOnly is true private
		chapters are filtered out.

		Parameters:
		  - context: context.Context
		  - bookID: string
		  - publicOnly: bool

		Returns:
		  - []*content.ChapterSummary: Ordered chapter summaries including like counts
		  - error: Storage failures
	*/
	ListByBook(context context.Context, bookID string, publicOnly bool) ([]*content.ChapterSummary, error)

	/*
		FindByID returns the full chapter including its content and like
		count.

		Returns:
		  - *Chapter: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		Create persists a new chapter.

		Returns:
		  - error: apperr.Conflict when the chapter number is already
		    taken within the book
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		Update persists the mutable fields of an existing chapter.

		Returns:
		  - error: apperr.NotFound or apperr.Conflict (number taken)
	*/
	Update(context context.Context, chapter *Chapter) error

	/*
		Delete removes a chapter.

		Returns:
		  - error: apperr.NotFound if the chapter is missing
	*/
	Delete(context context.Context, id string) error

	/*
		AddLike inserts the user into the chapter's like set.

		Returns:
		  - bool: true if the membership was added
	*/
	AddLike(context context.Context, chapterID, userID string) (bool, error)

	/*
		RemoveLike removes the user from the chapter's like set.

		Returns:
		  - bool: true if a membership was removed
	*/
	RemoveLike(context context.Context, chapterID, userID string) (bool, error)

	/*
		CountLikes returns the size of the chapter's like set.
	*/
	CountLikes(context context.Context, chapterID string) (int, error)
}
