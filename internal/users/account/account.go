// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package account implements the user identity and profile layer.

It defines the core domain entity (User) and the logic for first-sign-in
account bootstrapping, profile management, and the uid->account resolution
used by the identity middleware.

# Architecture

Authentication itself is delegated to an external issuer; this layer only
trusts verified token claims. The account row created on first sign-in is
the local anchor that every ownable entity references.
*/
package account

import (
	"time"

	"github.com/boibritto/boibritto-api/internal/library/collection"
	"github.com/boibritto/boibritto-api/internal/library/reading"
	"github.com/boibritto/boibritto-api/internal/social/blog"
)

// # Domain Entities

// User represents a registered member of the BoiBritto platform.
//
// UID and Email are identity fields: written once on first sign-in and
// immutable afterwards.
type User struct {
	ID          string    `json:"id"`
	UID         string    `json:"uid"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Genres      []string  `json:"genres"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicProfile is the reduced view of a user served to other members.
type PublicProfile struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Genres      []string  `json:"genres"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public projects the user onto its member-visible fields.
func (u *User) Public() *PublicProfile {
	return &PublicProfile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		Genres:      u.Genres,
		CreatedAt:   u.CreatedAt,
	}
}

// Overview aggregates a user's account with their most recent activity,
// served by GET /users/me/overview.
type Overview struct {
	User           *User                    `json:"user"`
	Collections    []*collection.Collection `json:"collections"`
	ReadingEntries []*reading.Entry         `json:"reading"`
	Blogs          []*blog.Blog             `json:"blogs"`
}

// # Field Identifiers

const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldDisplayName = "display_name"
	FieldBio         = "bio"
	FieldAvatarURL   = "avatar_url"
	FieldGenres      = "genres"
)

// # Limits

const (
	MaxDisplayNameLen = 50
	MaxBioLen         = 500
	MaxGenres         = 10
)
