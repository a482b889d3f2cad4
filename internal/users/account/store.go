// Copyright (c) 2026 BoiBritto. All rights reserved.

package account

import (
	"context"
	"time"
)

// # Account Data Access

// AccountRepository defines the data access contract for user accounts.
type AccountRepository interface {

	/*
		FindByID returns the account with the given local UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUID returns the account for an external identity subject.

		Parameters:
		  - context: context.Context
		  - uid: string (External identity subject)

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound if the subject never signed in
	*/
	FindByUID(context context.Context, uid string) (*User, error)

	/*
		FindByUsername returns the account with the given handle.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound if missing
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a new account row.

		Description: Fails with a Conflict error when the uid, username,
		or email collides with an existing account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate identity, storage failure otherwise
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateProfile persists the mutable profile fields (display name,
		bio, avatar, genres, username). Identity fields are never written.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.NotFound if the row is gone, Conflict on a
		    username collision
	*/
	UpdateProfile(context context.Context, user *User) error
}

// # Identity Cache

// IdentityCache is the volatile uid->account-id mapping consulted by the
// identity middleware on every authenticated request.
type IdentityCache interface {

	// Get returns the cached account UUID for a uid, or apperr.NotFound
	// when the entry is absent or expired.
	Get(context context.Context, uid string) (string, error)

	// Set stores the uid->account mapping with the given TTL.
	Set(context context.Context, uid, accountID string, ttl time.Duration) error

	// Invalidate removes the mapping, forcing the next request to hit
	// the primary store.
	Invalidate(context context.Context, uid string) error
}
