// Copyright (c) 2026 BoiBritto. All rights reserved.

package blog

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

// Service orchestrates blog lifecycle, access control, and the like toggle.
type Service struct {
	blogs  BlogRepository
	logger *slog.Logger
}

// NewService constructs a new blog [Service].
func NewService(blogs BlogRepository, logger *slog.Logger) *Service {
	return &Service{
		blogs:  blogs,
		logger: logger,
	}
}

// RecentByOwner implements the profile overview source contract: the
// owner's newest blogs regardless of visibility.
func (service *Service) RecentByOwner(context context.Context, ownerID string, limit int) ([]*Blog, error) {
	return service.blogs.RecentByOwner(context, ownerID, limit)
}

// # Listing

/*
List returns blogs matching the filter.
*/
func (service *Service) List(context context.Context, filter ListFilter, limit, offset int) ([]*Blog, int, error) {
	if filter.Scope.Kind == content.ScopeMine && filter.Scope.OwnerID == "" {
		return nil, 0, apperr.Unauthorized("Authentication required to list your own blogs")
	}
	return service.blogs.List(context, filter, limit, offset)
}

// # Lifecycle

// CreateInput carries the fields of a blog creation request.
type CreateInput struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Genres       []string `json:"genres"`
	Visibility   string   `json:"visibility"`
	SpoilerAlert bool     `json:"spoiler_alert"`
}

/*
Create validates and persists a new blog owned by the requester.

Parameters:
  - context: context.Context
  - authorID: string (Requester account)
  - input: CreateInput

Returns:
  - *Blog: The created blog
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, authorID string, input CreateInput) (*Blog, error) {
	visibility := content.Visibility(input.Visibility)
	if input.Visibility == "" {
		visibility = content.VisibilityPrivate
	}

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
	validator.Custom(FieldVisibility, !visibility.Valid() || visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	blog := &Blog{
		ID:           uuidv7.New(),
		AuthorID:     authorID,
		Title:        title,
		Content:      body,
		Genres:       input.Genres,
		Visibility:   visibility,
		SpoilerAlert: input.SpoilerAlert,
	}
	if blog.Genres == nil {
		blog.Genres = []string{}
	}

	if err := service.blogs.Create(context, blog); err != nil {
		return nil, err
	}

	service.logger.Info("blog_created",
		slog.String("blog_id", blog.ID),
		slog.String("author_id", authorID),
	)

	return blog, nil
}

/*
Get returns a blog the requester may see.

Returns:
  - *Blog: Hydrated entity
  - error: apperr.NotFound or apperr.Forbidden (private, not the author)
*/
func (service *Service) Get(context context.Context, id, requesterID string) (*Blog, error) {
	blog, err := service.blogs.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !content.CanAccess(blog.Visibility, blog.AuthorID, requesterID) {
		return nil, apperr.Forbidden("You do not have access to this blog")
	}

	return blog, nil
}

// UpdateInput carries the mutable fields of a blog PATCH request.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Title        *string   `json:"title"`
	Content      *string   `json:"content"`
	Genres       *[]string `json:"genres"`
	Visibility   *string   `json:"visibility"`
	SpoilerAlert *bool     `json:"spoiler_alert"`
}

/*
Update applies a partial update to a blog owned by the requester.

Returns:
  - *Blog: The updated blog
  - error: apperr.Forbidden (not owner) or validation errors
*/
func (service *Service) Update(context context.Context, id, requesterID string, input UpdateInput) (*Blog, error) {
	blog, err := service.blogs.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if blog.AuthorID != requesterID {
		return nil, apperr.Forbidden("Only the author can update this blog")
	}

	if input.Title != nil {
		blog.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		blog.Content = strings.TrimSpace(*input.Content)
	}
	if input.Genres != nil {
		blog.Genres = *input.Genres
		if blog.Genres == nil {
			blog.Genres = []string{}
		}
	}
	if input.Visibility != nil {
		blog.Visibility = content.Visibility(*input.Visibility)
	}
	if input.SpoilerAlert != nil {
		blog.SpoilerAlert = *input.SpoilerAlert
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, blog.Title)
	validator.MaxLen(FieldTitle, blog.Title, MaxTitleLen)
	validator.Required(FieldContent, blog.Content)
	validator.MaxLen(FieldContent, blog.Content, MaxContentLen)
	validator.Custom(FieldGenres, len(blog.Genres) > MaxGenres, "Too many genres")
	if bad := genre.Invalid(blog.Genres); bad != "" {
		validator.Custom(FieldGenres, true, "Unknown genre: "+bad)
	}
	validator.Custom(FieldVisibility, !blog.Visibility.Valid() || blog.Visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.blogs.Update(context, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

/*
Delete removes a blog owned by the requester.

Returns:
  - error: apperr.Forbidden if the requester is not the author
*/
func (service *Service) Delete(context context.Context, id, requesterID string) error {
	blog, err := service.blogs.FindByID(context, id)
	if err != nil {
		return err
	}
	if blog.AuthorID != requesterID {
		return apperr.Forbidden("Only the author can delete this blog")
	}

	if err := service.blogs.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("blog_deleted", slog.String("blog_id", id))

	return nil
}

// # Like Toggle

/*
ToggleLike flips the requester's like on a public blog.

Returns:
  - *content.LikeResult: New liked state and fresh like count
  - error: apperr.Forbidden for private blogs, apperr.ValidationError for
    the author's own post
*/
func (service *Service) ToggleLike(context context.Context, id, requesterID string) (*content.LikeResult, error) {
	blog, err := service.blogs.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if blog.Visibility != content.VisibilityPublic {
		return nil, apperr.Forbidden("Only public blogs can be liked")
	}
	if blog.AuthorID == requesterID {
		return nil, apperr.ValidationError("You cannot like your own blog")
	}

	removed, err := service.blogs.RemoveLike(context, id, requesterID)
	if err != nil {
		return nil, err
	}

	liked := false
	if !removed {
		if _, err := service.blogs.AddLike(context, id, requesterID); err != nil {
			return nil, err
		}
		liked = true
	}

	count, err := service.blogs.CountLikes(context, id)
	if err != nil {
		return nil, err
	}

	return &content.LikeResult{Liked: liked, LikeCount: count}, nil
}
