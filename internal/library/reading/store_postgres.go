// Copyright (c) 2026 BoiBritto. All rights reserved.

package reading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boibritto/boibritto-api/internal/core/content"
	"github.com/boibritto/boibritto-api/internal/platform/apperr"
	"github.com/boibritto/boibritto-api/internal/platform/database/schema"
	"github.com/boibritto/boibritto-api/internal/platform/dberr"
)

// # PostgreSQL Repository

// volumeConflictMsg surfaces the unique (ownerid, volumeid) constraint.
const volumeConflictMsg = "This volume is already on your reading list"

// readingRepository implements the [ReadingRepository] interface using pgx.
type readingRepository struct {
	pool *pgxpool.Pool
}

// NewReadingRepository constructs a PostgreSQL backed reading entry store.
func NewReadingRepository(pool *pgxpool.Pool) ReadingRepository {
	return &readingRepository{pool: pool}
}

// entryColumns lists the entity columns in scan order for alias r.
func entryColumns() string {
	t := schema.LibraryReadingEntry
	return fmt.Sprintf("r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s",
		t.ID, t.OwnerID, t.VolumeID, t.Status, t.Visibility, t.StartedAt, t.CompletedAt, t.CreatedAt, t.UpdatedAt)
}

// scanEntry reads one row produced by [entryColumns].
func scanEntry(row pgx.Row, extra ...any) (*Entry, error) {
	var entry Entry
	dest := []any{
		&entry.ID,
		&entry.OwnerID,
		&entry.VolumeID,
		&entry.Status,
		&entry.Visibility,
		&entry.StartedAt,
		&entry.CompletedAt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &entry, nil
}

/*
List retrieves reading entries matching the filter, newest first.
*/
func (repository *readingRepository) List(context context.Context, filter ListFilter, limit, offset int) ([]*Entry, int, error) {
	t := schema.LibraryReadingEntry

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s r
		WHERE 1=1
	`, entryColumns(), t.Table))

	switch filter.Scope.Kind {
	case content.ScopeMine:
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s = $%d", t.OwnerID, argID))
		args = append(args, filter.Scope.OwnerID)
		argID++
	case content.ScopeUser:
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s = $%d AND r.%s = $%d", t.OwnerID, argID, t.Visibility, argID+1))
		args = append(args, filter.Scope.OwnerID, content.VisibilityPublic)
		argID += 2
	default:
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s = $%d", t.Visibility, argID))
		args = append(args, content.VisibilityPublic)
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND r.%s = $%d", t.Status, argID))
		args = append(args, filter.Status)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY r.%s DESC", t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list reading entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	var totalCount int

	for rows.Next() {
		entry, err := scanEntry(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan reading entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, totalCount, nil
}

/*
RecentByOwner returns the owner's newest entries, any visibility.
*/
func (repository *readingRepository) RecentByOwner(context context.Context, ownerID string, limit int) ([]*Entry, error) {
	t := schema.LibraryReadingEntry
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s r
		WHERE r.%s = $1
		ORDER BY r.%s DESC
		LIMIT $2`,
		entryColumns(), t.Table, t.OwnerID, t.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list recent reading entries: %w", err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan reading entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

/*
FindByID returns a single reading entry.
*/
func (repository *readingRepository) FindByID(context context.Context, id string) (*Entry, error) {
	t := schema.LibraryReadingEntry
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`, entryColumns(), t.Table, t.ID)

	entry, err := scanEntry(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Reading entry")
		}
		return nil, fmt.Errorf("postgres: failed to find reading entry by id: %w", err)
	}

	return entry, nil
}

/*
Create inserts a new reading entry row.
*/
func (repository *readingRepository) Create(context context.Context, entry *Entry) error {
	t := schema.LibraryReadingEntry
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s`,
		t.Table, t.ID, t.OwnerID, t.VolumeID, t.Status, t.Visibility, t.StartedAt, t.CompletedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		entry.ID,
		entry.OwnerID,
		entry.VolumeID,
		entry.Status,
		entry.Visibility,
		entry.StartedAt,
		entry.CompletedAt,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, volumeConflictMsg)
	}

	return nil
}

/*
Update persists the mutable fields of a reading entry.
*/
func (repository *readingRepository) Update(context context.Context, entry *Entry) error {
	t := schema.LibraryReadingEntry
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $5`,
		t.Table, t.Status, t.Visibility, t.StartedAt, t.CompletedAt, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		entry.Status,
		entry.Visibility,
		entry.StartedAt,
		entry.CompletedAt,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update reading entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Reading entry")
	}

	return nil
}

/*
Delete removes a reading entry row.
*/
func (repository *readingRepository) Delete(context context.Context, id string) error {
	t := schema.LibraryReadingEntry
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete reading entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Reading entry")
	}

	return nil
}
