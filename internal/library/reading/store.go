// Copyright (c) 2026 BoiBritto. All rights reserved.

package reading

import "context"

// # Reading Entry Data Access

// ReadingRepository defines the data access contract for reading entries.
type ReadingRepository interface {

	/*
		List returns reading entries matching the filter, newest first.

		Returns:
		  - []*Entry: Matching entries
		  - int: Total matching entries
		  - error: Storage failures
	*/
	List(context context.Context, filter ListFilter, limit, offset int) ([]*Entry, int, error)

	/*
		RecentByOwner returns the owner's newest entries regardless of
		visibility, capped at limit. Feeds the profile overview.
	*/
	RecentByOwner(context context.Context, ownerID string, limit int) ([]*Entry, error)

	/*
		FindByID returns the entry with the given ID.

		Returns:
		  - *Entry: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Entry, error)

	/*
		Create persists a new reading entry.

		Returns:
		  - error: apperr.Conflict when the owner already tracks the volume
	*/
	Create(context context.Context, entry *Entry) error

	/*
		Update persists the mutable fields of an existing entry.

		Returns:
		  - error: apperr.NotFound if targeting a missing row
	*/
	Update(context context.Context, entry *Entry) error

	/*
		Delete removes a reading entry.

		Returns:
		  - error: apperr.NotFound if the entry is missing
	*/
	Delete(context context.Context, id string) error
}
