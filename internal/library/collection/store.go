// Copyright (c) 2026 BoiBritto. All rights reserved.

package collection

import "context"

// # Collection Data Access

// CollectionRepository defines the data access contract for collections
// and their volume memberships.
type CollectionRepository interface {

	/*
		List returns collections matching the filter, newest first,
		volumes included.

		Returns:
		  - []*Collection: Matching collections
		  - int: Total matching collections
		  - error: Storage failures
	*/
	List(context context.Context, filter ListFilter, limit, offset int) ([]*Collection, int, error)

	/*
		RecentByOwner returns the owner's newest collections regardless of
		visibility, capped at limit. Feeds the profile overview.
	*/
	RecentByOwner(context context.Context, ownerID string, limit int) ([]*Collection, error)

	/*
		FindByID returns the collection with the given ID, volumes included.

		Returns:
		  - *Collection: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Collection, error)

	/*
		Create persists a new collection and its initial volumes.
	*/
	Create(context context.Context, collection *Collection) error

	/*
		Update persists the mutable fields of a collection (not its volumes).

		Returns:
		  - error: apperr.NotFound if targeting a missing row
	*/
	Update(context context.Context, collection *Collection) error

	/*
		Delete removes a collection and its volume memberships atomically.

		Returns:
		  - error: apperr.NotFound if the collection is missing
	*/
	Delete(context context.Context, id string) error

	/*
		AddVolume inserts a volume into the collection.

		Returns:
		  - bool: true if the volume was added, false if already present
	*/
	AddVolume(context context.Context, collectionID, volumeID string) (bool, error)

	/*
		RemoveVolume removes a volume from the collection.

		Returns:
		  - bool: true if a membership was removed
	*/
	RemoveVolume(context context.Context, collectionID, volumeID string) (bool, error)

	/*
		CountVolumes returns the number of volumes in the collection.
	*/
	CountVolumes(context context.Context, collectionID string) (int, error)
}
