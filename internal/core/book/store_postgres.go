// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package book (Postgres) implements the book storage layer.

It leans on PostgreSQL for the guarantees that matter here:
  - Window Functions: Total result counts without a second COUNT query.
  - Transactions: Book deletion removes the book and its chapters atomically.
  - Conflict Clauses: Like membership is a single idempotent statement.
*/
package book

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

// bookRepository implements the [BookRepository] interface using pgx.
type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository constructs a PostgreSQL backed book store.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

// likeCountSubquery counts the like set inline with the main row.
func likeCountSubquery(alias string) string {
	return fmt.Sprintf("(SELECT COUNT(*) FROM %s l WHERE l.%s = %s.%s)",
		schema.CoreBookLike.Table, schema.CoreBookLike.BookID, alias, schema.CoreBook.ID)
}

/*
List retrieves books matching the filter, newest first.

Description: The owner scope is folded into the WHERE clause so private
rows never leave the database for callers who may not see them.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - limit: int
  - offset: int

Returns:
  - []*Book: Slice of hydrated books
  - int: Total matching books
*/
func (repository *bookRepository) List(context context.Context, filter ListFilter, limit, offset int) ([]*Book, int, error) {
	t := schema.CoreBook

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
			%s AS like_count,
			COUNT(*) OVER() AS total_count
		FROM %s b
		WHERE 1=1
	`,
		t.ID, t.AuthorID, t.Title, t.Synopsis, t.Genres,
		t.Visibility, t.CoverImage, t.IsCompleted, t.CreatedAt, t.UpdatedAt,
		likeCountSubquery("b"),
		t.Table,
	))

	// Owner scope filter
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

	// Title search
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s ILIKE $%d", t.Title, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	// Genre overlap: any of the requested tags matches
	if len(filter.Genres) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s && $%d", t.Genres, argID))
		args = append(args, filter.Genres)
		argID++
	}

	// Completion state
	if filter.Completed != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = $%d", t.IsCompleted, argID))
		args = append(args, *filter.Completed)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY b.%s DESC", t.CreatedAt))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*Book
	var totalCount int

	for rows.Next() {
		var book Book
		err := rows.Scan(
			&book.ID,
			&book.AuthorID,
			&book.Title,
			&book.Synopsis,
			&book.Genres,
			&book.Visibility,
			&book.CoverImage,
			&book.IsCompleted,
			&book.CreatedAt,
			&book.UpdatedAt,
			&book.LikeCount,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan book: %w", err)
		}
		if book.Genres == nil {
			book.Genres = []string{}
		}
		books = append(books, &book)
	}

	return books, totalCount, nil
}

/*
FindByID returns a single book with its like count.

Returns:
  - *Book: Hydrated entity
  - error: apperr.NotFound on absent rows
*/
func (repository *bookRepository) FindByID(context context.Context, id string) (*Book, error) {
	t := schema.CoreBook
	query := fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
			%s AS like_count
		FROM %s b
		WHERE b.%s = $1
	`,
		t.ID, t.AuthorID, t.Title, t.Synopsis, t.Genres,
		t.Visibility, t.CoverImage, t.IsCompleted, t.CreatedAt, t.UpdatedAt,
		likeCountSubquery("b"),
		t.Table, t.ID,
	)

	var book Book
	err := repository.pool.QueryRow(context, query, id).Scan(
		&book.ID,
		&book.AuthorID,
		&book.Title,
		&book.Synopsis,
		&book.Genres,
		&book.Visibility,
		&book.CoverImage,
		&book.IsCompleted,
		&book.CreatedAt,
		&book.UpdatedAt,
		&book.LikeCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres: failed to find book by id: %w", err)
	}

	if book.Genres == nil {
		book.Genres = []string{}
	}
	return &book, nil
}

/*
Create inserts a new book row.
*/
func (repository *bookRepository) Create(context context.Context, book *Book) error {
	t := schema.CoreBook
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		t.Table, t.ID, t.AuthorID, t.Title, t.Synopsis, t.Genres, t.Visibility, t.CoverImage, t.IsCompleted,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		book.ID,
		book.AuthorID,
		book.Title,
		book.Synopsis,
		book.Genres,
		book.Visibility,
		book.CoverImage,
		book.IsCompleted,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
Update persists the mutable fields of a book.

Returns:
  - error: apperr.NotFound if targeting a missing row
*/
func (repository *bookRepository) Update(context context.Context, book *Book) error {
	t := schema.CoreBook
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $7`,
		t.Table, t.Title, t.Synopsis, t.Genres, t.Visibility, t.CoverImage, t.IsCompleted, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		book.Title,
		book.Synopsis,
		book.Genres,
		book.Visibility,
		book.CoverImage,
		book.IsCompleted,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}

	return nil
}

/*
DeleteWithChapters removes a book and all of its chapters atomically.

Description: Runs inside a single transaction so a crash can never leave
orphaned chapters behind.

Returns:
  - int: Number of chapters removed
  - error: apperr.NotFound if the book does not exist
*/
func (repository *bookRepository) DeleteWithChapters(context context.Context, id string) (int, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	c := schema.CoreChapter
	chapterResult, err := tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.BookID), id)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to delete chapters: %w", err)
	}

	t := schema.CoreBook
	bookResult, err := tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID), id)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to delete book: %w", err)
	}

	if bookResult.RowsAffected() == 0 {
		return 0, apperr.NotFound("Book")
	}

	if err := tx.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return int(chapterResult.RowsAffected()), nil
}

/*
CountChapters returns the number of chapters under a book.
*/
func (repository *bookRepository) CountChapters(context context.Context, bookID string) (int, error) {
	c := schema.CoreChapter
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, c.Table, c.BookID)

	var count int
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count chapters: %w", err)
	}
	return count, nil
}

/*
HasPublicChapters reports whether any chapter of the book is public.
*/
func (repository *bookRepository) HasPublicChapters(context context.Context, bookID string) (bool, error) {
	c := schema.CoreChapter
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		c.Table, c.BookID, c.Visibility)

	var exists bool
	if err := repository.pool.QueryRow(context, query, bookID, content.VisibilityPublic).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check public chapters: %w", err)
	}
	return exists, nil
}

// # Like Membership

/*
AddLike inserts the user into the book's like set.

Description: Single atomic statement; 'ON CONFLICT DO NOTHING' makes the
operation idempotent under concurrent toggles.

Returns:
  - bool: true if a membership row was inserted
*/
func (repository *bookRepository) AddLike(context context.Context, bookID, userID string) (bool, error) {
	l := schema.CoreBookLike
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, l.Table, l.BookID, l.UserID)

	result, err := repository.pool.Exec(context, query, bookID, userID)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to add book like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

/*
RemoveLike removes the user from the book's like set.

Returns:
  - bool: true if a membership row was deleted
*/
func (repository *bookRepository) RemoveLike(context context.Context, bookID, userID string) (bool, error) {
	l := schema.CoreBookLike
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, l.Table, l.BookID, l.UserID)

	result, err := repository.pool.Exec(context, query, bookID, userID)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to remove book like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

/*
CountLikes returns the size of the book's like set.
*/
func (repository *bookRepository) CountLikes(context context.Context, bookID string) (int, error) {
	l := schema.CoreBookLike
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, l.Table, l.BookID)

	var count int
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count book likes: %w", err)
	}
	return count, nil
}
