// Copyright (c) 2026 BoiBritto. All rights reserved.

package book

import "context"

// # Book Data Access

// BookRepository defines the data access contract for books and their
// like memberships.
type BookRepository interface {

	/*
		List returns books matching the filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter (Owner scope, search, genre, completion)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Book: Hydrated books including like counts
		  - int: Total matching books
		  - error: Storage failures
	*/
	List(context context.Context, filter ListFilter, limit, offset int) ([]*Book, int, error)

	/*
		FindByID returns the book with the given ID, including its like count.

		Returns:
		  - *Book: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		Create persists a new book.
	*/
	Create(context context.Context, book *Book) error

	/*
		Update persists the mutable fields of an existing book.

		Returns:
		  - error: apperr.NotFound if targeting a missing row
	*/
	Update(context context.Context, book *Book) error

	/*
		DeleteWithChapters removes a book and all of its chapters in a
		single transaction.

		Returns:
		  - int: Number of chapters removed alongside the book
		  - error: apperr.NotFound if the book is missing
	*/
	DeleteWithChapters(context context.Context, id string) (int, error)

	/*
		CountChapters returns the number of chapters under a book.
	*/
	CountChapters(context context.Context, bookID string) (int, error)

	/*
		HasPublicChapters reports whether any chapter of the book is
		currently public. Used to guard the public->private transition.
	*/
	HasPublicChapters(context context.Context, bookID string) (bool, error)

	// # Like Membership
	//
	// Both mutations are single atomic statements; there is no
	// read-then-write window for concurrent toggles to race through.

	/*
		AddLike inserts the user into the book's like set.

		Returns:
		  - bool: true if the membership was added, false if it already existed
	*/
	AddLike(context context.Context, bookID, userID string) (bool, error)

	/*
		RemoveLike removes the user from the book's like set.

		Returns:
		  - bool: true if a membership was removed
	*/
	RemoveLike(context context.Context, bookID, userID string) (bool, error)

	/*
		CountLikes returns the size of the book's like set.
	*/
	CountLikes(context context.Context, bookID string) (int, error)
}
