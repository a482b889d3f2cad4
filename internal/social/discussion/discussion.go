// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package discussion implements the community discussion domain.

Discussions are the anchor for threaded comments. They are effectively
always public; the "friends" visibility state is representable but current
clients never create it, and non-public discussions are only readable by
their author.
*/
package discussion

import (
	"time"

	"github.com/boibritto/boibritto-api/internal/core/content"
)

// # Domain Entities

// Discussion represents a community discussion thread.
type Discussion struct {
	ID           string             `json:"id"`
	AuthorID     string             `json:"author_id"`
	Title        string             `json:"title"`
	Content      string             `json:"content"`
	Genres       []string           `json:"genres"`
	Visibility   content.Visibility `json:"visibility"`
	SpoilerAlert bool               `json:"spoiler_alert"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ListFilter narrows the discussion list query.
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
	MaxContentLen = 10000
	MaxGenres     = 5
)
