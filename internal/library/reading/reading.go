// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package reading implements the personal reading tracker.

Each entry tracks one Google Books volume per owner through the
interested → reading → completed lifecycle. Volume IDs are opaque
server-side.
*/
package reading

import (
	"time"

	"github.com/boibritto/boibritto-api/internal/core/content"
)

// # Reading Status

// Status is the lifecycle state of a reading entry.
type Status string

const (
	StatusInterested Status = "interested"
	StatusReading    Status = "reading"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is a known reading status.
func (s Status) Valid() bool {
	switch s {
	case StatusInterested, StatusReading, StatusCompleted:
		return true
	}
	return false
}

// # Domain Entities

// Entry represents one tracked volume in a member's reading list.
type Entry struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id"`
	VolumeID    string             `json:"volume_id"`
	Status      Status             `json:"status"`
	Visibility  content.Visibility `json:"visibility"`
	StartedAt   *time.Time         `json:"started_at,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ListFilter narrows the reading list query.
type ListFilter struct {
	Scope  content.Scope
	Status Status
}

// # Field Identifiers

const (
	FieldVolumeID   = "volume_id"
	FieldStatus     = "status"
	FieldVisibility = "visibility"
)
