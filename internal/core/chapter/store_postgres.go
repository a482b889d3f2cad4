// Copyright (c) 2026 BoiBritto. All rights reserved.

package chapter

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

// chapterNumberConflictMsg surfaces the unique (bookid, chapternumber)
// constraint as a client-facing conflict.
const chapterNumberConflictMsg = "A chapter with this number already exists in the book"

// chapterRepository implements the [ChapterRepository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

// chapterLikeCount counts the like set inline with the main row.
func chapterLikeCount(alias string) string {
	return fmt.Sprintf("(SELECT COUNT(*) FROM %s l WHERE l.%s = %s.%s)",
		schema.CoreChapterLike.Table, schema.CoreChapterLike.ChapterID, alias, schema.CoreChapter.ID)
}

/*
ListByBook returns content-free chapter summaries ordered by number.

Description: The content column is deliberately absent from the SELECT;
full text is only ever read one chapter at a time.
*/
func (repository *chapterRepository) ListByBook(context context.Context, bookID string, publicOnly bool) ([]*content.ChapterSummary, error) {
	t := schema.CoreChapter

	var queryBuilder strings.Builder
	args := []any{bookID}

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			%s AS like_count
		FROM %s c
		WHERE c.%s = $1
	`,
		t.ID, t.BookID, t.ChapterNumber, t.Title, t.WordCount, t.Visibility, t.CreatedAt, t.UpdatedAt,
		chapterLikeCount("c"),
		t.Table, t.BookID,
	))

	if publicOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $2", t.Visibility))
		args = append(args, content.VisibilityPublic)
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s ASC", t.ChapterNumber))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	summaries := []*content.ChapterSummary{}
	for rows.Next() {
		var summary content.ChapterSummary
		err := rows.Scan(
			&summary.ID,
			&summary.BookID,
			&summary.ChapterNumber,
			&summary.Title,
			&summary.WordCount,
			&summary.Visibility,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.LikeCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter summary: %w", err)
		}
		summaries = append(summaries, &summary)
	}

	return summaries, nil
}

/*
FindByID returns a full chapter with its content and like count.
*/
func (repository *chapterRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	t := schema.CoreChapter
	query := fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			%s AS like_count
		FROM %s c
		WHERE c.%s = $1
	`,
		t.ID, t.BookID, t.AuthorID, t.ChapterNumber, t.Title, t.Content,
		t.WordCount, t.Visibility, t.CreatedAt, t.UpdatedAt,
		chapterLikeCount("c"),
		t.Table, t.ID,
	)

	var chapter Chapter
	err := repository.pool.QueryRow(context, query, id).Scan(
		&chapter.ID,
		&chapter.BookID,
		&chapter.AuthorID,
		&chapter.ChapterNumber,
		&chapter.Title,
		&chapter.Content,
		&chapter.WordCount,
		&chapter.Visibility,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
		&chapter.LikeCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter by id: %w", err)
	}

	return &chapter, nil
}

/*
Create inserts a new chapter row.
*/
func (repository *chapterRepository) Create(context context.Context, chapter *Chapter) error {
	t := schema.CoreChapter
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s, %s`,
		t.Table, t.ID, t.BookID, t.AuthorID, t.ChapterNumber, t.Title, t.Content, t.WordCount, t.Visibility,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		chapter.ID,
		chapter.BookID,
		chapter.AuthorID,
		chapter.ChapterNumber,
		chapter.Title,
		chapter.Content,
		chapter.WordCount,
		chapter.Visibility,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, chapterNumberConflictMsg)
	}

	return nil
}

/*
Update persists the mutable fields of a chapter.
*/
func (repository *chapterRepository) Update(context context.Context, chapter *Chapter) error {
	t := schema.CoreChapter
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $6`,
		t.Table, t.ChapterNumber, t.Title, t.Content, t.WordCount, t.Visibility, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		chapter.ChapterNumber,
		chapter.Title,
		chapter.Content,
		chapter.WordCount,
		chapter.Visibility,
		chapter.ID,
	)
	if err != nil {
		return dberr.Wrap(err, chapterNumberConflictMsg)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	return nil
}

/*
Delete removes a chapter row.
*/
func (repository *chapterRepository) Delete(context context.Context, id string) error {
	t := schema.CoreChapter
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	return nil
}

// # Like Membership

/*
AddLike inserts the user into the chapter's like set.
*/
func (repository *chapterRepository) AddLike(context context.Context, chapterID, userID string) (bool, error) {
	l := schema.CoreChapterLike
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, l.Table, l.ChapterID, l.UserID)

	result, err := repository.pool.Exec(context, query, chapterID, userID)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to add chapter like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

/*
RemoveLike removes the user from the chapter's like set.
*/
func (repository *chapterRepository) RemoveLike(context context.Context, chapterID, userID string) (bool, error) {
	l := schema.CoreChapterLike
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, l.Table, l.ChapterID, l.UserID)

	result, err := repository.pool.Exec(context, query, chapterID, userID)
	if err != nil {
		return false, fmt.Errorf("postgres: failed to remove chapter like: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

/*
CountLikes returns the size of the chapter's like set.
*/
func (repository *chapterRepository) CountLikes(context context.Context, chapterID string) (int, error) {
	l := schema.CoreChapterLike
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, l.Table, l.ChapterID)

	var count int
	if err := repository.pool.QueryRow(context, query, chapterID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count chapter likes: %w", err)
	}
	return count, nil
}
