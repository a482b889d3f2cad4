// Copyright (c) 2026 BoiBritto. All rights reserved.

package discussion

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

// # Service Layer

// Service orchestrates discussion lifecycle and access control.
type Service struct {
	discussions DiscussionRepository
	logger      *slog.Logger
}

// NewService constructs a new discussion [Service].
func NewService(discussions DiscussionRepository, logger *slog.Logger) *Service {
	return &Service{
		discussions: discussions,
		logger:      logger,
	}
}

// # Listing

/*
List returns discussions matching the filter.
*/
func (service *Service) List(context context.Context, filter ListFilter, limit, offset int) ([]*Discussion, int, error) {
	if filter.Scope.Kind == content.ScopeMine && filter.Scope.OwnerID == "" {
		return nil, 0, apperr.Unauthorized("Authentication required to list your own discussions")
	}
	return service.discussions.List(context, filter, limit, offset)
}

// # Lifecycle

// CreateInput carries the fields of a discussion creation request.
type CreateInput struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Genres       []string `json:"genres"`
	SpoilerAlert bool     `json:"spoiler_alert"`
}

/*
Create validates and persists a new public discussion.

Description: Discussions are always created public; the input carries no
visibility field. The "friends" state exists in the data model but is not
reachable through this endpoint.

Parameters:
  - context: context.Context
  - authorID: string (Requester account)
  - input: CreateInput

Returns:
  - *Discussion: The created discussion
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, authorID string, input CreateInput) (*Discussion, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title)
	validator.MaxLen(FieldTitle, title, MaxTitleLen)
	validator.Required(FieldContent, body)
	validator.MaxLen(FieldContent, body, MaxContentLen)
	validator.Custom(FieldGenres, len(input.Genres) > MaxGenres, "Too many genres")
	if bad := genre.Invalid(input.Genres); bad != "" {
		validator.Custom(FieldGenres, true, "Unknown genre: "+bad)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	discussion := &Discussion{
		ID:           uuidv7.New(),
		AuthorID:     authorID,
		Title:        title,
		Content:      body,
		Genres:       input.Genres,
		Visibility:   content.VisibilityPublic,
		SpoilerAlert: input.SpoilerAlert,
	}
	if discussion.Genres == nil {
		discussion.Genres = []string{}
	}

	if err := service.discussions.Create(context, discussion); err != nil {
		return nil, err
	}

	service.logger.Info("discussion_created",
		slog.String("discussion_id", discussion.ID),
		slog.String("author_id", authorID),
	)

	return discussion, nil
}

/*
Get returns a discussion the requester may see.

Returns:
  - *Discussion: Hydrated entity
  - error: apperr.NotFound or apperr.Forbidden (non-public, not the author)
*/
func (service *Service) Get(context context.Context, id, requesterID string) (*Discussion, error) {
	discussion, err := service.discussions.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !content.CanAccess(discussion.Visibility, discussion.AuthorID, requesterID) {
		return nil, apperr.Forbidden("You do not have access to this discussion")
	}

	return discussion, nil
}

// UpdateInput carries the mutable fields of a discussion PATCH request.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Title        *string   `json:"title"`
	Content      *string   `json:"content"`
	Genres       *[]string `json:"genres"`
	SpoilerAlert *bool     `json:"spoiler_alert"`
}

/*
Update applies a partial update to a discussion owned by the requester.

Returns:
  - *Discussion: The updated discussion
  - error: apperr.Forbidden (not owner) or validation errors
*/
func (service *Service) Update(context context.Context, id, requesterID string, input UpdateInput) (*Discussion, error) {
	discussion, err := service.discussions.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if discussion.AuthorID != requesterID {
		return nil, apperr.Forbidden("Only the author can update this discussion")
	}

	if input.Title != nil {
		discussion.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		discussion.Content = strings.TrimSpace(*input.Content)
	}
	if input.Genres != nil {
		discussion.Genres = *input.Genres
		if discussion.Genres == nil {
			discussion.Genres = []string{}
		}
	}
	if input.SpoilerAlert != nil {
		discussion.SpoilerAlert = *input.SpoilerAlert
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, discussion.Title)
	validator.MaxLen(FieldTitle, discussion.Title, MaxTitleLen)
	validator.Required(FieldContent, discussion.Content)
	validator.MaxLen(FieldContent, discussion.Content, MaxContentLen)
	validator.Custom(FieldGenres, len(discussion.Genres) > MaxGenres, "Too many genres")
	if bad := genre.Invalid(discussion.Genres); bad != "" {
		validator.Custom(FieldGenres, true, "Unknown genre: "+bad)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.discussions.Update(context, discussion); err != nil {
		return nil, err
	}

	return discussion, nil
}

/*
Delete removes a discussion owned by the requester together with all of
its comments.

Returns:
  - int: Number of comments removed alongside the discussion
  - error: apperr.Forbidden if the requester is not the author
*/
func (service *Service) Delete(context context.Context, id, requesterID string) (int, error) {
	discussion, err := service.discussions.FindByID(context, id)
	if err != nil {
		return 0, err
	}
	if discussion.AuthorID != requesterID {
		return 0, apperr.Forbidden("Only the author can delete this discussion")
	}

	deleted, err := service.discussions.DeleteWithComments(context, id)
	if err != nil {
		return 0, err
	}

	service.logger.Info("discussion_deleted",
		slog.String("discussion_id", id),
		slog.Int("comments_deleted", deleted),
	)

	return deleted, nil
}
