// Copyright (c) 2026 BoiBritto. All rights reserved.

package collection

import (
	"context"
	"log/slog"
	"strings"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/core/genre"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/validate"
	"github.com/boibritto/boibritto-api/pkg/slice"
	"github.com/boibritto/boibritto-api/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates collection lifecycle and volume membership.
type Service struct {
	collections CollectionRepository
	logger      *slog.Logger
}

// NewService constructs a new collection [Service].
func NewService(collections CollectionRepository, logger *slog.Logger) *Service {
	return &Service{
		collections: collections,
		logger:      logger,
	}
}

// RecentByOwner implements the profile overview source contract.
func (service *Service) RecentByOwner(context context.Context, ownerID string, limit int) ([]*Collection, error) {
	return service.collections.RecentByOwner(context, ownerID, limit)
}

// # Listing

/*
List returns collections matching the filter.
*/
func (service *Service) List(context context.Context, filter ListFilter, limit, offset int) ([]*Collection, int, error) {
	if filter.Scope.Kind == content.ScopeMine && filter.Scope.OwnerID == "" {
		return nil, 0, apperr.Unauthorized("Authentication required to list your own collections")
	}
	return service.collections.List(context, filter, limit, offset)
}

// # Lifecycle

// CreateInput carries the fields of a collection creation request.
type CreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Visibility  string   `json:"visibility"`
	Volumes     []string `json:"books"`
}

/*
Create validates and persists a new collection owned by the requester.

Description: The initial volume list is deduplicated; volume IDs are
opaque Google Books identifiers and are not resolved server-side.

Parameters:
  - context: context.Context
  - ownerID: string (Requester account)
  - input: CreateInput

Returns:
  - *Collection: The created collection with its volumes
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Collection, error) {
	visibility := content.Visibility(input.Visibility)
	if input.Visibility == "" {
		visibility = content.VisibilityPrivate
	}

	title := strings.TrimSpace(input.Title)
	volumes := dedupeVolumes(input.Volumes)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title)
	validator.MaxLen(FieldTitle, title, MaxTitleLen)
	validator.MaxLen(FieldDescription, input.Description, MaxDescriptionLen)
	validator.Custom(FieldGenres, len(input.Genres) > MaxGenres, "Too many genres")
	if bad := genre.Invalid(input.Genres); bad != "" {
		validator.Custom(FieldGenres, true, "Unknown genre: "+bad)
	}
	validator.Custom(FieldVisibility, !visibility.Valid() || visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	validator.Custom(FieldVolumeID, len(volumes) > MaxVolumes, "Too many volumes")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	collection := &Collection{
		ID:          uuidv7.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Genres:      input.Genres,
		Visibility:  visibility,
		Volumes:     make([]Item, 0, len(volumes)),
	}
	if collection.Genres == nil {
		collection.Genres = []string{}
	}
	for _, volumeID := range volumes {
		collection.Volumes = append(collection.Volumes, Item{VolumeID: volumeID})
	}

	if err := service.collections.Create(context, collection); err != nil {
		return nil, err
	}

	service.logger.Info("collection_created",
		slog.String("collection_id", collection.ID),
		slog.String("owner_id", ownerID),
		slog.Int("volumes", len(collection.Volumes)),
	)

	return collection, nil
}

/*
Get returns a collection the requester may see.

Returns:
  - *Collection: Hydrated entity with volumes
  - error: apperr.NotFound or apperr.Forbidden (private, not the owner)
*/
func (service *Service) Get(context context.Context, id, requesterID string) (*Collection, error) {
	collection, err := service.collections.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !content.CanAccess(collection.Visibility, collection.OwnerID, requesterID) {
		return nil, apperr.Forbidden("You do not have access to this collection")
	}

	return collection, nil
}

// UpdateInput carries the mutable fields of a collection PATCH request.
// Nil pointers mean "leave unchanged". Volume membership changes go
// through the dedicated item endpoints instead.
type UpdateInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Genres      *[]string `json:"genres"`
	Visibility  *string   `json:"visibility"`
}

/*
Update applies a partial update to a collection owned by the requester.

Returns:
  - *Collection: The updated collection
  - error: apperr.Forbidden (not owner) or validation errors
*/
func (service *Service) Update(context context.Context, id, requesterID string, input UpdateInput) (*Collection, error) {
	collection, err := service.collections.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if collection.OwnerID != requesterID {
		return nil, apperr.Forbidden("Only the owner can update this collection")
	}

	if input.Title != nil {
		collection.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		collection.Description = strings.TrimSpace(*input.Description)
	}
	if input.Genres != nil {
		collection.Genres = *input.Genres
		if collection.Genres == nil {
			collection.Genres = []string{}
		}
	}
	if input.Visibility != nil {
		collection.Visibility = content.Visibility(*input.Visibility)
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, collection.Title)
	validator.MaxLen(FieldTitle, collection.Title, MaxTitleLen)
	validator.MaxLen(FieldDescription, collection.Description, MaxDescriptionLen)
	validator.Custom(FieldGenres, len(collection.Genres) > MaxGenres, "Too many genres")
	if bad := genre.Invalid(collection.Genres); bad != "" {
		validator.Custom(FieldGenres, true, "Unknown genre: "+bad)
	}
	validator.Custom(FieldVisibility, !collection.Visibility.Valid() || collection.Visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.collections.Update(context, collection); err != nil {
		return nil, err
	}

	return collection, nil
}

/*
Delete removes a collection owned by the requester.

Returns:
  - error: apperr.Forbidden if the requester is not the owner
*/
func (service *Service) Delete(context context.Context, id, requesterID string) error {
	collection, err := service.collections.FindByID(context, id)
	if err != nil {
		return err
	}
	if collection.OwnerID != requesterID {
		return apperr.Forbidden("Only the owner can delete this collection")
	}

	if err := service.collections.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("collection_deleted", slog.String("collection_id", id))

	return nil
}

// # Volume Membership

/*
AddVolume adds a Google Books volume to a collection owned by the requester.

Returns:
  - *Collection: The collection after the addition
  - error: apperr.Forbidden, validation (cap reached), or apperr.Conflict
    (volume already present)
*/
func (service *Service) AddVolume(context context.Context, id, requesterID, volumeID string) (*Collection, error) {
	collection, err := service.collections.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if collection.OwnerID != requesterID {
		return nil, apperr.Forbidden("Only the owner can modify this collection")
	}

	volumeID = strings.TrimSpace(volumeID)
	validator := &validate.Validator{}
	validator.Required(FieldVolumeID, volumeID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	count, err := service.collections.CountVolumes(context, id)
	if err != nil {
		return nil, err
	}
	if count >= MaxVolumes {
		return nil, apperr.ValidationError("Collection is full")
	}

	added, err := service.collections.AddVolume(context, id, volumeID)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, apperr.Conflict("Volume is already in this collection")
	}

	return service.collections.FindByID(context, id)
}

/*
RemoveVolume removes a Google Books volume from a collection owned by the
requester.

Returns:
  - *Collection: The collection after the removal
  - error: apperr.Forbidden or apperr.NotFound (volume not in collection)
*/
func (service *Service) RemoveVolume(context context.Context, id, requesterID, volumeID string) (*Collection, error) {
	collection, err := service.collections.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if collection.OwnerID != requesterID {
		return nil, apperr.Forbidden("Only the owner can modify this collection")
	}

	removed, err := service.collections.RemoveVolume(context, id, volumeID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperr.NotFound("Volume")
	}

	return service.collections.FindByID(context, id)
}

// # Internal Helpers

// dedupeVolumes trims and deduplicates volume IDs, preserving order.
func dedupeVolumes(volumeIDs []string) []string {
	seen := make(map[string]struct{}, len(volumeIDs))
	return slice.Filter(slice.Map(volumeIDs, strings.TrimSpace), func(id string) bool {
		if id == "" {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
		return true
	})
}
