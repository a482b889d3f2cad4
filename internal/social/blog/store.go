// Copyright (c) 2026 BoiBritto. All rights reserved.

package blog

import "context"

// # Blog Data Access

// BlogRepository defines the data access contract for blogs and their
// like memberships.
type BlogRepository interface {

	/*
		List returns blogs matching the filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter (Owner scope, genre, search)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Blog: Hydrated blogs including like counts
		  - int: Total matching blogs
		  - error: Storage failures
	*/
	List(context context.Context, filter ListFilter, limit, offset int) ([]*Blog, int, error)

	/*
		RecentByOwner returns the owner's newest blogs regardless of
		visibility, capped at limit. Feeds the profile overview.
	*/
	RecentByOwner(context context.Context, ownerID string, limit int) ([]*Blog, error)

	/*
		FindByID returns the blog with the given ID, including its like count.

		Returns:
		  - *Blog: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Blog, error)

	/*
		Create persists a new blog.
	*/
	Create(context context.Context, blog *Blog) error

	/*
		Update persists the mutable fields of an existing blog.

		Returns:
		  - error: apperr.NotFound if targeting a missing row
	*/
	Update(context context.Context, blog *Blog) error

	/*
		Delete removes a blog.

		Returns:
		  - error: apperr.NotFound if the blog is missing
	*/
	Delete(context context.Context, id string) error

	/*
		AddLike inserts the user into the blog's like set.

		Returns:
		  - bool: true if the membership was added
	*/
	AddLike(context context.Context, blogID, userID string) (bool, error)

	/*
		RemoveLike removes the user from the blog's like set.

		Returns:
		  - bool: true if a membership was removed
	*/
	RemoveLike(context context.Context, blogID, userID string) (bool, error)

	/*
		CountLikes returns the size of the blog's like set.
	*/
	CountLikes(context context.Context, blogID string) (int, error)
}
