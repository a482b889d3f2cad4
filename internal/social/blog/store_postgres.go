// Copyright (c) 2026 BoiBritto. All rights reserved.

package blog

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

// blogRepository implements the [BlogRepository] interface using pgx.
type blogRepository struct {
	pool *pgxpool.Pool
}

// NewBlogRepository constructs a PostgreSQL backed blog store.
func NewBlogRepository(pool *pgxpool.Pool) BlogRepository {
	return &blogRepository{pool: pool}
}

// blogLikeCount counts the like set inline with the main row.
func blogLikeCount(alias string) string {
	return fmt.Sprintf("(SELECT COUNT(*) FROM %s l WHERE l.%s = %s.%s)",
		schema.SocialBlogLike.Table, schema.SocialBlogLike.BlogID, alias, schema.SocialBlog.ID)
}

// blogColumns lists the entity columns in scan order for alias b.
func blogColumns() string {
	t := schema.SocialBlog
	return fmt.Sprintf("b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s",
		t.ID, t.AuthorID, t.Title, t.Content, t.Genres, t.Visibility, t.SpoilerAlert, t.CreatedAt, t.UpdatedAt)
}

// scanBlog reads one row produced by [blogColumns] plus the like count.
func scanBlog(row pgx.Row, extra ...any) (*Blog, error) {
	var blog Blog
	dest := []any{
		&blog.ID,
		&blog.AuthorID,
		&blog.Title,
		&blog.Content,
		&blog.Genres,
		&blog.Visibility,
		&blog.SpoilerAlert,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&blog.LikeCount,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if blog.Genres == nil {
		blog.Genres = []string{}
	}
	return &blog, nil
}

/*
List retrieves blogs matching the filter, newest first.
*/
func (repository *blogRepository) List(context context.Context, filter ListFilter, limit, offset int) ([]*Blog, int, error) {
	t := schema.SocialBlog

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, %s AS like_count, COUNT(*) OVER() AS total_count
		FROM %s b
		WHERE 1=1
	`, blogColumns(), blogLikeCount("b"), t.Table))

	switch filter.Scope.Kind {
	case content.ScopeMine:
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", t.AuthorID, argID))
		args = append(args, filter.Scope.OwnerID)
		argID++
	case content.ScopeUser:
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d AND b.%s = $%d", t.AuthorID, argID, t.Visibility, argID+1))
		args = append(args, filter.Scope.OwnerID, content.VisibilityPublic)
		argID += 2
	default:
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", t.Visibility, argID))
		args = append(args, content.VisibilityPublic)
		argID++
	}

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(b.%s)", argID, t.Genres))
		args = append(args, filter.Genre)
		argID++
	}

	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s ILIKE $%d", t.Title, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY b.%s DESC", t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []*Blog
	var totalCount int

	for rows.Next() {
		blog, err := scanBlog(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}

	return blogs, totalCount, nil
}

/*
RecentByOwner returns the owner's newest blogs, any visibility.
*/
func (repository *blogRepository) RecentByOwner(context context.Context, ownerID string, limit int) ([]*Blog, error) {
	t := schema.SocialBlog
	query := fmt.Sprintf(`
		SELECT %s, %s AS like_count
		FROM %s b
		WHERE b.%s = $1
		ORDER BY b.%s DESC
		LIMIT $2`,
		blogColumns(), blogLikeCount("b"), t.Table, t.AuthorID, t.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list recent blogs: %w", err)
	}
	defer rows.Close()

	blogs := []*Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}

	return blogs, nil
}

/*
FindByID returns a single blog with its like count.
*/
func (repository *blogRepository) FindByID(context context.Context, id string) (*Blog, error) {
	t := schema.SocialBlog
	query := fmt.Sprintf(`
		SELECT %s, %s AS like_count
		FROM %s b
		WHERE b.%s = $1`,
		blogColumns(), blogLikeCount("b"), t.Table, t.ID,
	)

	blog, err := scanBlog(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Blog")
		}
		return nil, fmt.Errorf("postgres: failed to find blog by id: %w", err)
	}

	return blog, nil
}

/*
Create inserts a new blog row.
*/
func (repository *blogRepository) Create(context context.Context, blog *Blog) error {
	t := schema.SocialBlog
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s`,
		t.Table, t.ID, t.AuthorID, t.Title, t.Content, t.Genres, t.Visibility, t.SpoilerAlert,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		blog.ID,
		blog.AuthorID,
		blog.Title,
		blog.Content,
		blog.Genres,
		blog.Visibility,
		blog.SpoilerAlert,
	).Scan(&blog.CreatedAt, &blog.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
Update persists the mutable fields of a blog.
*/
func (repository *blogRepository) Update(context context.Context, blog *Blog) error {
	t := schema.SocialBlog
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6`,
		t.Table, t.Title, t.Content, t.Genres, t.Visibility, t.SpoilerAlert, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		blog.Title,
		blog.Content,
		blog.Genres,
		blog.Visibility,
		blog.SpoilerAlert,
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update blog: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Blog")
	}

	return nil
}

/*
Delete removes a blog row.
*/
func (repository *blogRepository) Delete(context context.Context, id string) error {
	t := schema.SocialBlog
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete blog: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Blog")
	}

	return nil
}

// # Like Membership

/*
AddLike inserts the user into the blog's like set.
*/
func (repository *blogRepository) AddLike(context context.Context, blogID, userID string) (bool, error) {
	l := schema.SocialBlogLike
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, l.Table, l.BlogID, l.UserID)

	result, err := repository.pool.Exec(context, query, blogID, userID)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to add blog like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

/*
RemoveLike removes the user from the blog's like set.
*/
func (repository *blogRepository) RemoveLike(context context.Context, blogID, userID string) (bool, error) {
	l := schema.SocialBlogLike
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, l.Table, l.BlogID, l.UserID)

	result, err := repository.pool.Exec(context, query, blogID, userID)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to remove blog like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

/*
CountLikes returns the size of the blog's like set.
*/
func (repository *blogRepository) CountLikes(context context.Context, blogID string) (int, error) {
	l := schema.SocialBlogLike
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, l.Table, l.BlogID)

	var count int
	if err := repository.pool.QueryRow(context, query, blogID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count blog likes: %w", err)
	}
	return count, nil
}
