// Copyright (c) 2026 BoiBritto. All rights reserved.

package reading

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/validate"
	"github.com/boibritto/boibritto-api/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the reading tracker lifecycle.
type Service struct {
	entries ReadingRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a new reading tracker [Service].
func NewService(entries ReadingRepository, logger *slog.Logger) *Service {
	return &Service{
		entries: entries,
		logger:  logger,
		now:     time.Now,
	}
}

// RecentByOwner implements the profile overview source contract: the
// owner's newest reading entries regardless of visibility.
func (service *Service) RecentByOwner(context context.Context, ownerID string, limit int) ([]*Entry, error) {
	return service.entries.RecentByOwner(context, ownerID, limit)
}

// # Listing

/*
List returns reading entries matching the filter.
*/
func (service *Service) List(context context.Context, filter ListFilter, limit, offset int) ([]*Entry, int, error) {
	if filter.Scope.Kind == content.ScopeMine && filter.Scope.OwnerID == "" {
		return nil, 0, apperr.Unauthorized("Authentication required to list your own reading entries")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperr.ValidationError("Status must be interested, reading or completed")
	}
	return service.entries.List(context, filter, limit, offset)
}

// # Lifecycle

// CreateInput carries the fields of a tracking request.
type CreateInput struct {
	VolumeID   string `json:"volume_id"`
	Status     string `json:"status"`
	Visibility string `json:"visibility"`
}

/*
Create validates and persists a new reading entry for the requester.

The status defaults to interested. Lifecycle timestamps are stamped
server-side: StartedAt when the entry begins at reading or completed,
CompletedAt when it begins at completed.

Returns:
  - *Entry: The created entry
  - error: apperr.Conflict when the volume is already tracked
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Entry, error) {
	volumeID := strings.TrimSpace(input.VolumeID)

	status := Status(input.Status)
	if input.Status == "" {
		status = StatusInterested
	}

	visibility := content.Visibility(input.Visibility)
	if input.Visibility == "" {
		visibility = content.VisibilityPrivate
	}

	validator := &validate.Validator{}
	validator.Required(FieldVolumeID, volumeID)
	validator.Custom(FieldStatus, !status.Valid(), "Status must be interested, reading or completed")
	validator.Custom(FieldVisibility, !visibility.Valid() || visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:         uuidv7.New(),
		OwnerID:    ownerID,
		VolumeID:   volumeID,
		Status:     status,
		Visibility: visibility,
	}
	service.stampLifecycle(entry)

	if err := service.entries.Create(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("reading_entry_created",
		slog.String("entry_id", entry.ID),
		slog.String("owner_id", ownerID),
		slog.String("status", string(entry.Status)),
	)

	return entry, nil
}

/*
Get returns a reading entry the requester may see.

Returns:
  - *Entry: Hydrated entity
  - error: apperr.NotFound or apperr.Forbidden (private, not the owner)
*/
func (service *Service) Get(context context.Context, id, requesterID string) (*Entry, error) {
	entry, err := service.entries.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !content.CanAccess(entry.Visibility, entry.OwnerID, requesterID) {
		return nil, apperr.Forbidden("You do not have access to this reading entry")
	}

	return entry, nil
}

// UpdateInput carries the mutable fields of a reading entry PATCH request.
// Nil pointers mean "leave unchanged".
type UpdateInput struct {
	Status     *string `json:"status"`
	Visibility *string `json:"visibility"`
}

/*
Update applies a partial update to a reading entry owned by the requester.

Moving the status forward stamps the matching lifecycle timestamp if it
is not already set. Moving back to interested clears both.

Returns:
  - *Entry: The updated entry
  - error: apperr.Forbidden (not owner) or validation errors
*/
func (service *Service) Update(context context.Context, id, requesterID string, input UpdateInput) (*Entry, error) {
	entry, err := service.entries.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if entry.OwnerID != requesterID {
		return nil, apperr.Forbidden("Only the owner can update this reading entry")
	}

	if input.Status != nil {
		entry.Status = Status(*input.Status)
	}
	if input.Visibility != nil {
		entry.Visibility = content.Visibility(*input.Visibility)
	}

	validator := &validate.Validator{}
	validator.Custom(FieldStatus, !entry.Status.Valid(), "Status must be interested, reading or completed")
	validator.Custom(FieldVisibility, !entry.Visibility.Valid() || entry.Visibility == content.VisibilityFriends,
		"Visibility must be private or public")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	service.stampLifecycle(entry)

	if err := service.entries.Update(context, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

/*
Delete removes a reading entry owned by the requester.

Returns:
  - error: apperr.Forbidden if the requester is not the owner
*/
func (service *Service) Delete(context context.Context, id, requesterID string) error {
	entry, err := service.entries.FindByID(context, id)
	if err != nil {
		return err
	}
	if entry.OwnerID != requesterID {
		return apperr.Forbidden("Only the owner can delete this reading entry")
	}

	if err := service.entries.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("reading_entry_deleted", slog.String("entry_id", id))

	return nil
}

// stampLifecycle reconciles the lifecycle timestamps with the status.
func (service *Service) stampLifecycle(entry *Entry) {
	switch entry.Status {
	case StatusInterested:
		entry.StartedAt = nil
		entry.CompletedAt = nil
	case StatusReading:
		if entry.StartedAt == nil {
			now := service.now()
			entry.StartedAt = &now
		}
		entry.CompletedAt = nil
	case StatusCompleted:
		now := service.now()
		if entry.StartedAt == nil {
			entry.StartedAt = &now
		}
		if entry.CompletedAt == nil {
			entry.CompletedAt = &now
		}
	}
}
