// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package blog implements the member blog domain.

Blogs are long-form markdown posts with the same visibility states and
like mechanics as books. They also feed the profile overview with the
author's most recent posts.
*/
package blog

import (
	"time"

	"github.com/boibritto/boibritto-api/internal/core/content"
)

// # Domain Entities

// Blog represents a member-authored blog post.
type Blog struct {
	ID           string             `json:"id"`
	AuthorID     string             `json:"author_id"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	Genres       []string           `json:"genres"`
	Visibility   content.Visibility `json:"visibility"`
	SpoilerAlert bool               `json:"spoiler_alert"`
	LikeCount    int                `json:"like_count"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ListFilter narrows the blog list query.
type ListFilter struct {
	Scope  content.Scope
	Genre  string
	Search string
}

// # Field Identifiers

const (
	FieldTitle        = "title"
	FieldContent      = "content"
	FieldGenres       = "genres"
	FieldVisibility   = "visibility"
	FieldSpoilerAlert = "spoiler_alert"
)

// # Limits

const (
	MaxTitleLen   = 200
	MaxContentLen = 50000
	MaxGenres     = 5
)
