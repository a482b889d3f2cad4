// Copyright (c) 2026 BoiBritto. All rights reserved.

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/validate"
	"github.com/boibritto/boibritto-api/internal/social/discussion"
	"github.com/boibritto/boibritto-api/pkg/uuidv7"
)

// # Cross-Domain Contracts

// ParentDiscussions is the slice of the discussion repository this service
// needs: resolving the thread a comment belongs to.
type ParentDiscussions interface {
	FindByID(context context.Context, id string) (*discussion.Discussion, error)
}

// # Service Layer

// Service orchestrates comment lifecycle and the two-tier depth rule.
type Service struct {
	comments    CommentRepository
	discussions ParentDiscussions
	logger      *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(comments CommentRepository, discussions ParentDiscussions, logger *slog.Logger) *Service {
	return &Service{
		comments:    comments,
		discussions: discussions,
		logger:      logger,
	}
}

// # Thread Reading

/*
Tree returns the two-tier comment tree of a discussion.

Description: Applies the discussion's access gate first, then builds the
tree from a single chronologically ordered query. Both levels come back
oldest-first.

Parameters:
  - context: context.Context
  - discussionID: string
  - requesterID: string

Returns:
  - []*Node: Top-level comments each carrying their replies
  - error: apperr.NotFound (discussion) or apperr.Forbidden
*/
func (service *Service) Tree(context context.Context, discussionID, requesterID string) ([]*Node, error) {
	parent, err := service.discussions.FindByID(context, discussionID)
	if err != nil {
		return nil, err
	}
	if !content.CanAccess(parent.Visibility, parent.AuthorID, requesterID) {
		return nil, apperr.Forbidden("You do not have access to this discussion")
	}

	comments, err := service.comments.ListByDiscussion(context, discussionID)
	if err != nil {
		return nil, err
	}

	return BuildTree(comments), nil
}

// # Lifecycle

// CreateInput carries the fields of a comment creation request.
type CreateInput struct {
	ParentID     *string `json:"parent_id"`
	Content      string  `json:"content"`
	SpoilerAlert bool    `json:"spoiler_alert"`
}

/*
Create validates and persists a new comment on a discussion.

Description: Enforces the depth rule with one parent lookup: a reply's
parent must be a top-level comment of the same discussion. Replying to a
reply is rejected before anything is written.

Parameters:
  - context: context.Context
  - discussionID: string
  - authorID: string
  - input: CreateInput

Returns:
  - *Comment: The created comment
  - error: Validation, apperr.NotFound, or apperr.Forbidden errors
*/
func (service *Service) Create(context context.Context, discussionID, authorID string, input CreateInput) (*Comment, error) {
	parent, err := service.discussions.FindByID(context, discussionID)
	if err != nil {
		return nil, err
	}
	if !content.CanAccess(parent.Visibility, parent.AuthorID, authorID) {
		return nil, apperr.Forbidden("You do not have access to this discussion")
	}

	body := strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.Required(FieldContent, body)
	validator.MaxLen(FieldContent, body, MaxContentLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parentComment, err := service.comments.FindByID(context, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parentComment.DiscussionID != discussionID {
			return nil, apperr.ValidationError("Parent comment belongs to a different discussion")
		}
		if parentComment.ParentID != nil {
			return nil, apperr.ValidationError("Comments can only be one level deep")
		}
	}

	comment := &Comment{
		ID:           uuidv7.New(),
		DiscussionID: discussionID,
		AuthorID:     authorID,
		ParentID:     input.ParentID,
		Content:      body,
		SpoilerAlert: input.SpoilerAlert,
	}

	if err := service.comments.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("discussion_id", discussionID),
		slog.Bool("is_reply", comment.ParentID != nil),
	)

	return comment, nil
}

// UpdateInput carries the mutable fields of a comment PATCH request.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Content      *string `json:"content"`
	SpoilerAlert *bool   `json:"spoiler_alert"`
}

/*
Update applies a partial update to a comment owned by the requester.

Description: The parent reference is immutable; a comment can never move
between threads or change depth after creation.

Returns:
  - *Comment: The updated comment
  - error: apperr.Forbidden (not owner) or validation errors
*/
func (service *Service) Update(context context.Context, id, requesterID string, input UpdateInput) (*Comment, error) {
	comment, err := service.comments.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != requesterID {
		return nil, apperr.Forbidden("Only the author can update this comment")
	}

	if input.Content != nil {
		comment.Content = strings.TrimSpace(*input.Content)
	}
	if input.SpoilerAlert != nil {
		comment.SpoilerAlert = *input.SpoilerAlert
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, comment.Content)
	validator.MaxLen(FieldContent, comment.Content, MaxContentLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.comments.Update(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
Delete removes a comment owned by the requester.

Description: Deleting a top-level comment takes its replies with it in one
transaction; deleting a reply removes only the reply.

Returns:
  - int: Total comments removed, the comment included
  - error: apperr.Forbidden if the requester is not the author
*/
func (service *Service) Delete(context context.Context, id, requesterID string) (int, error) {
	comment, err := service.comments.FindByID(context, id)
	if err != nil {
		return 0, err
	}
	if comment.AuthorID != requesterID {
		return 0, apperr.Forbidden("Only the author can delete this comment")
	}

	deleted, err := service.comments.DeleteWithReplies(context, id)
	if err != nil {
		return 0, err
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", id),
		slog.Int("total_deleted", deleted),
	)

	return deleted, nil
}
