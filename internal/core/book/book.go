// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package book implements the user-authored book domain.

A book is the root of the visibility cascade: its chapters can never be
more visible than the book itself. The rules live in the service layer and
run on every mutation path — create, full update, and partial update alike.
*/
package book

import (
	"time"

	"github.com/boibritto/boibritto-api/internal/core/content"
)

// # Domain Entities

// Book represents a user-authored book (a "UserBook" in client terms).
type Book struct {
	ID          string             `json:"id"`
	AuthorID    string             `json:"author_id"`
	Title       string             `json:"title"`
	Synopsis    string             `json:"synopsis,omitempty"`
	Genres      []string           `json:"genres"`
	Visibility  content.Visibility `json:"visibility"`
	CoverImage  string             `json:"cover_image,omitempty"`
	IsCompleted bool               `json:"is_completed"`
	LikeCount   int                `json:"like_count"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Detail is a book hydrated with the chapters the requester may see.
type Detail struct {
	*Book
	Chapters []*content.ChapterSummary `json:"chapters"`
}

// ListFilter narrows the book list query. Genres matches books tagged
// with any of the given tags.
type ListFilter struct {
	Scope     content.Scope
	Search    string
	Genres    []string
	Completed *bool
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldSynopsis    = "synopsis"
	FieldGenres      = "genres"
	FieldVisibility  = "visibility"
	FieldCoverImage  = "cover_image"
	FieldIsCompleted = "is_completed"
)

// # Limits

const (
	MaxTitleLen    = 200
	MaxSynopsisLen = 2000
	MaxGenres      = 5
)
