// Copyright (c) 2026 BoiBritto. All rights reserved.

package discussion

import "context"

// # Discussion Data Access

// DiscussionRepository defines the data access contract for discussions.
type DiscussionRepository interface {

	/*
		List returns discussions matching the filter, newest first.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter (Owner scope, genre, search)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Discussion: Matching discussions
		  - int: Total matching discussions
		  - error: Storage failures
	*/
	List(context context.Context, filter ListFilter, limit, offset int) ([]*Discussion, int, error)

	/*
		FindByID returns the discussion with the given ID.

		Returns:
		  - *Discussion: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Discussion, error)

	/*
		Create persists a new discussion.
	*/
	Create(context context.Context, discussion *Discussion) error

	/*
		Update persists the mutable fields of an existing discussion.

		Returns:
		  - error: apperr.NotFound if targeting a missing row
	*/
	Update(context context.Context, discussion *Discussion) error

	/*
		DeleteWithComments removes a discussion and all of its comments in
		a single transaction.

		Returns:
		  - int: Number of comments removed alongside the discussion
		  - error: apperr.NotFound if the discussion is missing
	*/
	DeleteWithComments(context context.Context, id string) (int, error)
}
