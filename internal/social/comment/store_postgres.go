// Copyright (c) 2026 BoiBritto. All rights reserved.

package comment

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

// # PostgreSQL Repository

// commentRepository implements the [CommentRepository] interface using pgx.
type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository constructs a PostgreSQL backed comment store.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

/*
ListByDiscussion returns all comments of a discussion oldest-first, with
the time-ordered id breaking ties so parents always precede their replies.
*/
func (repository *commentRepository) ListByDiscussion(context context.Context, discussionID string) ([]*Comment, error) {
	t := schema.SocialComment
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC, %s ASC`,
		t.ID, t.DiscussionID, t.AuthorID, t.ParentID, t.Content, t.SpoilerAlert, t.CreatedAt, t.UpdatedAt,
		t.Table, t.DiscussionID, t.CreatedAt, t.ID,
	)

	rows, err := repository.pool.Query(context, query, discussionID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		var comment Comment
		err := rows.Scan(
			&comment.ID,
			&comment.DiscussionID,
			&comment.AuthorID,
			&comment.ParentID,
			&comment.Content,
			&comment.SpoilerAlert,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}

/*
FindByID returns a single comment.
*/
func (repository *commentRepository) FindByID(context context.Context, id string) (*Comment, error) {
	t := schema.SocialComment
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		t.ID, t.DiscussionID, t.AuthorID, t.ParentID, t.Content, t.SpoilerAlert, t.CreatedAt, t.UpdatedAt,
		t.Table, t.ID,
	)

	var comment Comment
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.DiscussionID,
		&comment.AuthorID,
		&comment.ParentID,
		&comment.Content,
		&comment.SpoilerAlert,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres: failed to find comment by id: %w", err)
	}

	return &comment, nil
}

/*
Create inserts a new comment row.
*/
func (repository *commentRepository) Create(context context.Context, comment *Comment) error {
	t := schema.SocialComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		t.Table, t.ID, t.DiscussionID, t.AuthorID, t.ParentID, t.Content, t.SpoilerAlert,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID,
		comment.DiscussionID,
		comment.AuthorID,
		comment.ParentID,
		comment.Content,
		comment.SpoilerAlert,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "")
	}

	return nil
}

/*
Update persists the mutable fields of a comment.
*/
func (repository *commentRepository) Update(context context.Context, comment *Comment) error {
	t := schema.SocialComment
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3`,
		t.Table, t.Content, t.SpoilerAlert, t.UpdatedAt,
		t.ID,
	)

	result, err := repository.pool.Exec(context, query,
		comment.Content,
		comment.SpoilerAlert,
		comment.ID,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to update comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

/*
DeleteWithReplies removes a comment and its replies atomically.

Description: Replies never have children of their own, so one level of
cascade covers the whole subtree.

Returns:
  - int: Total comments removed, the comment included
*/
func (repository *commentRepository) DeleteWithReplies(context context.Context, id string) (int, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	t := schema.SocialComment

	replyResult, err := tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ParentID), id)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to delete replies: %w", err)
	}

	commentResult, err := tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.ID), id)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to delete comment: %w", err)
	}

	if commentResult.RowsAffected() == 0 {
		return 0, apperr.NotFound("Comment")
	}

	if err := tx.Commit(context); err != nil {
		return 0, fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return int(replyResult.RowsAffected() + commentResult.RowsAffected()), nil
}
