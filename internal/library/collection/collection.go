// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package collection implements curated book collections.

A collection groups Google Books volumes under a title. Volume IDs are
opaque strings server-side; the client resolves them against the Google
Books API directly.
*/
package collection

import (
	"time"

	"github.com/boibritto/boibritto-api/internal/core/content"
)

// # Domain Entities

// Collection represents a curated list of Google Books volumes.
type Collection struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Genres      []string           `json:"genres"`
	Visibility  content.Visibility `json:"visibility"`
	Volumes     []Item             `json:"books"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Item is one volume membership within a collection.
type Item struct {
	VolumeID string    `json:"volume_id"`
	AddedAt  time.Time `json:"added_at"`
}

// ListFilter narrows the collection list query.
type ListFilter struct {
	Scope content.Scope
	Genre string
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldGenres      = "genres"
	FieldVisibility  = "visibility"
	FieldVolumeID    = "volume_id"
)

// # Limits

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MaxGenres         = 5
	MaxVolumes        = 200
)
