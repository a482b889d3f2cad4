// Copyright (c) 2026 BoiBritto. All rights reserved.

package comment

import "context"

// # Comment Data Access

// CommentRepository defines the data access contract for comments.
type CommentRepository interface {

	/*
		ListByDiscussion returns all comments of a discussion ordered
		chronologically ascending, the order [BuildTree] expects.

		Returns:
		  - []*Comment: Flat, ordered comment list
		  - error: Storage failures
	*/
	ListByDiscussion(context context.Context, discussionID string) ([]*Comment, error)

	/*
		FindByID returns the comment with the given ID.

		Returns:
		  - *Comment: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Create persists a new comment.
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Update persists the mutable fields of an existing comment.

		Returns:
		  - error: apperr.NotFound if targeting a missing row
	*/
	Update(context context.Context, comment *Comment) error

	/*
		DeleteWithReplies removes a comment and any replies attached to it
		in a single transaction. For a reply this is just the reply itself.

		Returns:
		  - int: Total comments removed, the comment included
		  - error: apperr.NotFound if the comment is missing
	*/
	DeleteWithReplies(context context.Context, id string) (int, error)
}
