// Copyright (c) 2026 BoiBritto. All rights reserved.

package collection

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

// collectionRepository implements the [CollectionRepository] interface using pgx.
type collectionRepository struct {
	pool *pgxpool.Pool
}

// NewCollectionRepository constructs a PostgreSQL backed collection store.
func NewCollectionRepository(pool *pgxpool.Pool) CollectionRepository {
	return &collectionRepository{pool: pool}
}

// loadVolumes fetches the items of the given collections in one query,
// grouped by collection id, insertion order preserved.
func (repository *collectionRepository) loadVolumes(context context.Context, collectionIDs []string) (map[string][]Item, error) {
	grouped := make(map[string][]Item, len(collectionIDs))
	if len(collectionIDs) == 0 {
		return grouped, nil
	}

	i := schema.LibraryCollectionItem
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s ASC`,
		i.CollectionID, i.VolumeID, i.AddedAt,
		i.Table, i.CollectionID, i.AddedAt,
	)

	rows, err := repository.pool.Query(context, query, collectionIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to load collection volumes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var collectionID string
		var item Item
		if err := rows.Scan(&collectionID, &item.VolumeID, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan collection volume: %w", err)
		}
		grouped[collectionID] = append(grouped[collectionID], item)
	}

	return grouped, nil
}

// attachVolumes hydrates each collection's Volumes slice from the map.
func attachVolumes(collections []*Collection, grouped map[string][]Item) {
	for _, c := range collections {
		if items, ok := grouped[c.ID]; ok {
			c.Volumes = items
		} else {
			c.Volumes = []Item{}
		}
	}
}

/*
List retrieves collections matching the filter, newest first.
*/
func (repository *collectionRepository) List(context context.Context, filter ListFilter, limit, offset int) ([]*Collection, int, error) {
	t := schema.LibraryCollection

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			COUNT(*) OVER() AS total_count
		FROM %s c
		WHERE 1=1
	`,
		t.ID, t.OwnerID, t.Title, t.Description, t.Genres, t.Visibility, t.CreatedAt, t.UpdatedAt,
		t.Table,
	))

	switch filter.Scope.Kind {
	case content.ScopeMine:
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", t.OwnerID, argID))
		args = append(args, filter.Scope.OwnerID)
		argID++
	case content.ScopeUser:
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d AND c.%s = $%d", t.OwnerID, argID, t.Visibility, argID+1))
		args = append(args, filter.Scope.OwnerID, content.VisibilityPublic)
		argID += 2
	default:
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", t.Visibility, argID))
		args = append(args, content.VisibilityPublic)
		argID++
	}

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(c.%s)", argID, t.Genres))
		args = append(args, filter.Genre)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s DESC", t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []*Collection
	var ids []string
	var totalCount int

	for rows.Next() {
		var collection Collection
		err := rows.Scan(
			&collection.ID,
			&collection.OwnerID,
			&collection.Title,
			&collection.Description,
			&collection.Genres,
			&collection.Visibility,
			&collection.CreatedAt,
			&collection.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan collection: %w", err)
		}
		if collection.Genres == nil {
			collection.Genres = []string{}
		}
		collections = append(collections, &collection)
		ids = append(ids, collection.ID)
	}
	rows.Close()

	grouped, err := repository.loadVolumes(context, ids)
	if err != nil {
		return nil, 0, err
	}
	attachVolumes(collections, grouped)

	return collections, totalCount, nil
}

/*
RecentByOwner returns the owner's newest collections, any visibility.
*/
func (repository *collectionRepository) RecentByOwner(context context.Context, ownerID string, limit int) ([]*Collection, error) {
	collections, _, err := repository.List(context,
		ListFilter{Scope: content.Scope{Kind: content.ScopeMine, OwnerID: ownerID}}, limit, 0)
	if err != nil {
		return nil, err
	}
	if collections == nil {
		collections = []*Collection{}
	}
	return collections, nil
}

/*
FindByID returns a single collection with its volumes.
*/
func (repository *collectionRepository) FindByID(context context.Context, id string) (*Collection, error) {
	t := schema.LibraryCollection
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		t.ID, t.OwnerID, t.Title, t.Description, t.Genres, t.Visibility, t.CreatedAt, t.UpdatedAt,
		t.Table, t.ID,
	)

	var collection Collection
	err := repository.pool.QueryRow(context, query, id).Scan(
		&collection.ID,
		&collection.OwnerID,
		&collection.Title,
		&collection.Description,
		&collection.Genres,
		&collection.Visibility,
		&collection.CreatedAt,
		&collection.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Collection")
		}
		return nil, fmt.Errorf("postgres: failed to find collection by id: %w", err)
	}

	if collection.Genres == nil {
		collection.Genres = []string{}
	}

	grouped, err := repository.loadVolumes(context, []string{id})
	if err != nil {
		return nil, err
	}
	attachVolumes([]*Collection{&collection}, grouped)

	return &collection, nil
}

/*
Create inserts a new collection row and its initial volumes atomically.
*/
func (repository *collectionRepository) Create(context context.Context, collection *Collection) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin create transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	t := schema.LibraryCollection
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		t.Table, t.ID, t.OwnerID, t.Title, t.Description, t.Genres, t.Visibility,
		t.CreatedAt, t.UpdatedAt,
	)

	err = tx.QueryRow(context, query,
		collection.ID,
		collection.OwnerID,
		collection.Title,
		collection.Description,
		collection.Genres,
		collection.Visibility,
	).Scan(&collection.CreatedAt, &collection.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "")
	}

	i := schema.LibraryCollectionItem
	for index := range collection.Volumes {
		err := tx.QueryRow(context,
			fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING RETURNING %s`,
				i.Table, i.CollectionID, i.VolumeID, i.AddedAt),
			collection.ID, collection.Volumes[index].VolumeID,
		).Scan(&collection.Volumes[index].AddedAt)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("postgres: failed to insert collection volume: %w", err)
		}
	}

	if err := tx.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	return nil
}

/*
Update persists the mutable fields of a collection row.
*/
func (repository *collectionRepository) Update(context context.Context, collection *Collection) error {
	t := schema.LibraryCollection
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $5`,
		t.Table, t.Title, t.Description, t.Genres, t.Visibility, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		collection.Title,
		collection.Description,
		collection.Genres,
		collection.Visibility,
		collection.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update collection: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Collection")
	}

	return nil
}

/*
Delete removes a collection and its volume memberships atomically.
*/
func (repository *collectionRepository) Delete(context context.Context, id string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	i := schema.LibraryCollectionItem
	if _, err := tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, i.Table, i.CollectionID), id); err != nil {
		return fmt.Errorf("postgres: failed to delete collection volumes: %w", err)
	}

	t := schema.LibraryCollection
	result, err := tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID), id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete collection: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Collection")
	}

	if err := tx.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return nil
}

// # Volume Membership

/*
AddVolume inserts a volume into the collection.
*/
func (repository *collectionRepository) AddVolume(context context.Context, collectionID, volumeID string) (bool, error) {
	i := schema.LibraryCollectionItem
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, i.Table, i.CollectionID, i.VolumeID)

	result, err := repository.pool.Exec(context, query, collectionID, volumeID)
	if err != nil {
		return false, dberr.Wrap(err, "")
	}
	return result.RowsAffected() > 0, nil
}

/*
RemoveVolume removes a volume from the collection.
*/
func (repository *collectionRepository) RemoveVolume(context context.Context, collectionID, volumeID string) (bool, error) {
	i := schema.LibraryCollectionItem
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, i.Table, i.CollectionID, i.VolumeID)

	result, err := repository.pool.Exec(context, query, collectionID, volumeID)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to remove collection volume: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

/*
CountVolumes returns the number of volumes in the collection.
*/
func (repository *collectionRepository) CountVolumes(context context.Context, collectionID string) (int, error) {
	i := schema.LibraryCollectionItem
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, i.Table, i.CollectionID)

	var count int
	if err := repository.pool.QueryRow(context, query, collectionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count collection volumes: %w", err)
	}
	return count, nil
}
