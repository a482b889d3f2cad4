// Copyright (c) 2026 BoiBritto. All rights reserved.

package discussion

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

// discussionRepository implements the [DiscussionRepository] interface using pgx.
type discussionRepository struct {
	pool *pgxpool.Pool
}

// NewDiscussionRepository constructs a PostgreSQL backed discussion store.
func NewDiscussionRepository(pool *pgxpool.Pool) DiscussionRepository {
	return &discussionRepository{pool: pool}
}

/*
List retrieves discussions matching the filter, newest first.
*/
func (repository *discussionRepository) List(context context.Context, filter ListFilter, limit, offset int) ([]*Discussion, int, error) {
	t := schema.SocialDiscussion

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			d.%s, d.%s, d.%s, d.%s, d.%s, d.%s, d.%s, d.%s, d.%s,
			COUNT(*) OVER() AS total_count
		FROM %s d
		WHERE 1=1
	`,
		t.ID, t.AuthorID, t.Title, t.Content, t.Genres,
		t.Visibility, t.SpoilerAlert, t.CreatedAt, t.UpdatedAt,
		t.Table,
	))

	switch filter.Scope.Kind {
	case content.ScopeMine:
		queryBuilder.WriteString(fmt.Sprintf(" AND d.%s = $%d", t.AuthorID, argID))
		args = append(args, filter.Scope.OwnerID)
		argID++
	case content.ScopeUser:
		queryBuilder.WriteString(fmt.Sprintf(" AND d.%s = $%d AND d.%s = $%d", t.AuthorID, argID, t.Visibility, argID+1))
		args = append(args, filter.Scope.OwnerID, content.VisibilityPublic)
		argID += 2
	default:
		queryBuilder.WriteString(fmt.Sprintf(" AND d.%s = $%d", t.Visibility, argID))
		args = append(args, content.VisibilityPublic)
		argID++
	}

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(d.%s)", argID, t.Genres))
		args = append(args, filter.Genre)
		argID++
	}

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND d.%s ILIKE $%d", t.Title, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY d.%s DESC", t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list discussions: %w", err)
	}
	defer rows.Close()

	var discussions []*Discussion
	var totalCount int

	for rows.Next() {
		var discussion Discussion
		err := rows.Scan(
			&discussion.ID,
			&discussion.AuthorID,
			&discussion.Title,
			&discussion.Content,
			&discussion.Genres,
			&discussion.Visibility,
			&discussion.SpoilerAlert,
			&discussion.CreatedAt,
			&discussion.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan discussion: %w", err)
		}
		if discussion.Genres == nil {
			discussion.Genres = []string{}
		}
		discussions = append(discussions, &discussion)
	}

	return discussions, totalCount, nil
}

/*
FindByID returns a single discussion.
*/
func (repository *discussionRepository) FindByID(context context.Context, id string) (*Discussion, error) {
	t := schema.SocialDiscussion
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		t.ID, t.AuthorID, t.Title, t.Content, t.Genres,
		t.Visibility, t.SpoilerAlert, t.CreatedAt, t.UpdatedAt,
		t.Table, t.ID,
	)

	var discussion Discussion
	err := repository.pool.QueryRow(context, query, id).Scan(
		&discussion.ID,
		&discussion.AuthorID,
		&discussion.Title,
		&discussion.Content,
		&discussion.Genres,
		&discussion.Visibility,
		&discussion.SpoilerAlert,
		&discussion.CreatedAt,
		&discussion.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Discussion")
		}
		return nil, fmt.Errorf("postgres: failed to find discussion by id: %w", err)
	}

	if discussion.Genres == nil {
		discussion.Genres = []string{}
	}
	return &discussion, nil
}

/*
Create inserts a new discussion row.
*/
func (repository *discussionRepository) Create(context context.Context, discussion *Discussion) error {
	t := schema.SocialDiscussion
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s`,
		t.Table, t.ID, t.AuthorID, t.Title, t.Content, t.Genres, t.Visibility, t.SpoilerAlert,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		discussion.ID,
		discussion.AuthorID,
		discussion.Title,
		discussion.Content,
		discussion.Genres,
		discussion.Visibility,
		discussion.SpoilerAlert,
	).Scan(&discussion.CreatedAt, &discussion.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
Update persists the mutable fields of a discussion.
*/
func (repository *discussionRepository) Update(context context.Context, discussion *Discussion) error {
	t := schema.SocialDiscussion
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6`,
		t.Table, t.Title, t.Content, t.Genres, t.Visibility, t.SpoilerAlert, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		discussion.Title,
		discussion.Content,
		discussion.Genres,
		discussion.Visibility,
		discussion.SpoilerAlert,
		discussion.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update discussion: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Discussion")
	}

	return nil
}

/*
DeleteWithComments removes a discussion and all of its comments atomically.

Returns:
  - int: Number of comments removed
  - error: apperr.NotFound if the discussion does not exist
*/
func (repository *discussionRepository) DeleteWithComments(context context.Context, id string) (int, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	c := schema.SocialComment
	commentResult, err := tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.DiscussionID), id)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to delete discussion comments: %w", err)
	}

	t := schema.SocialDiscussion
	discussionResult, err := tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID), id)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to delete discussion: %w", err)
	}

	if discussionResult.RowsAffected() == 0 {
		return 0, apperr.NotFound("Discussion")
	}

	if err := tx.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return int(commentResult.RowsAffected()), nil
}
