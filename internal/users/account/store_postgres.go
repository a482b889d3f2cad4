// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package account (Postgres) implements the storage layer for user identity.

# Schema Table Mapping
  - users.account: Master identity and profile data.
*/
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/database/schema"
	"github.com/boibritto/boibritto-api/internal/platform/dberr"
)

// usernameConstraint names the unique index on users.account(username),
// used to tell a handle collision apart from a duplicate uid or email.
const usernameConstraint = "account_username_key"

// # Repository Implementation

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for account storage.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// accountColumns is the canonical SELECT column list for users.account.
func accountColumns() string {
	t := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.UID, t.Username, t.Email, t.DisplayName,
		t.Bio, t.AvatarURL, t.Genres, t.CreatedAt, t.UpdatedAt,
	)
}

// scanAccount hydrates a [User] from a pgx row.
func scanAccount(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.UID,
		&user.Username,
		&user.Email,
		&user.DisplayName,
		&user.Bio,
		&user.AvatarURL,
		&user.Genres,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if user.Genres == nil {
		user.Genres = []string{}
	}
	return user, nil
}

/*
FindByID retrieves an account row by its local UUID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanAccount(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByUID retrieves an account row by its external identity subject.

Parameters:
  - context: context.Context
  - uid: string

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByUID(context context.Context, uid string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.UID)

	user, err := scanAccount(repository.pool.QueryRow(context, query, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_find_by_uid_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves an account row by its unique handle.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.Username)

	user, err := scanAccount(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
Create inserts a new account row.

Description: Relies on the unique indexes on uid, username, and email;
collisions surface to the caller as Conflict errors.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Conflict on duplicate identity, wrapped execution failure otherwise
*/
func (repository *PostgresAccountRepository) Create(context context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		t.Table, t.ID, t.UID, t.Username, t.Email, t.DisplayName, t.Bio, t.AvatarURL, t.Genres,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.UID,
		user.Username,
		user.Email,
		user.DisplayName,
		user.Bio,
		user.AvatarURL,
		user.Genres,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err, usernameConstraint) {
			return apperr.Conflict("Username is already taken")
		}
		return dberr.Wrap(err, "An account with this identity already exists")
	}

	return nil
}

/*
UpdateProfile modifies the mutable profile metadata of a user.

Description: Syncs username, display name, bio, avatar, and genre interests
while refreshing the updatedat timestamp. Identity columns are untouched.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.NotFound if the row is gone, Conflict on username collision
*/
func (repository *PostgresAccountRepository) UpdateProfile(context context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6`,
		t.Table, t.Username, t.DisplayName, t.Bio, t.AvatarURL, t.Genres, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		user.Username,
		user.DisplayName,
		user.Bio,
		user.AvatarURL,
		user.Genres,
		user.ID,
	)

	if err != nil {
		return dberr.Wrap(err, "Username is already taken")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
