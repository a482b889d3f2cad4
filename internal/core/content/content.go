// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package content defines the shared primitives for user-generated content:
the visibility states and the access gate applied by every detail and list
endpoint.

# Architecture

Every ownable entity (book, chapter, blog, discussion, collection, reading
entry) carries a visibility column and an owner reference. The rules for who
may see what are identical across all of them, so they live here once and
are reused by each service rather than being re-derived per endpoint.
*/
package content

import "time"

// # Visibility States

// Visibility controls who can see a piece of content.
type Visibility string

const (
	// VisibilityPrivate restricts the content to its owner.
	VisibilityPrivate Visibility = "private"

	// VisibilityPublic makes the content visible to every authenticated user.
	VisibilityPublic Visibility = "public"

	// VisibilityFriends is reserved for discussions; current clients always
	// create discussions as public, but the state remains representable.
	VisibilityFriends Visibility = "friends"
)

// Valid reports whether v is one of the representable visibility states.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityFriends:
		return true
	}
	return false
}

// # Access Gate

// CanAccess is the uniform public/private resource gate.
//
// A resource is accessible when it is public, or when the requester is its
// owner. Detail endpoints translate a false result into 403 Forbidden; list
// endpoints apply the same rule as a query filter instead of failing.
func CanAccess(visibility Visibility, ownerID, requesterID string) bool {
	if visibility == VisibilityPublic {
		return true
	}
	return ownerID != "" && ownerID == requesterID
}

// # Owner Scoping

// ScopeKind classifies the `author`/`owner` query parameter shared by all
// list endpoints.
type ScopeKind int

const (
	// ScopePublic lists public items from everyone (parameter absent).
	ScopePublic ScopeKind = iota

	// ScopeMine lists all of the requester's own items regardless of
	// visibility (parameter == "me").
	ScopeMine

	// ScopeUser lists a specific user's public items only.
	ScopeUser
)

// Scope is the resolved owner filter for a list query.
type Scope struct {
	Kind ScopeKind

	// OwnerID is the account being listed: the requester for ScopeMine,
	// the named user for ScopeUser, empty for ScopePublic.
	OwnerID string
}

// ResolveScope maps the raw `author`/`owner` query parameter to a [Scope].
//
//	""         -> public items only
//	"me"       -> all of the requester's own items
//	<user id>  -> that user's public items only
func ResolveScope(param, requesterID string) Scope {
	switch param {
	case "":
		return Scope{Kind: ScopePublic}
	case "me":
		return Scope{Kind: ScopeMine, OwnerID: requesterID}
	default:
		return Scope{Kind: ScopeUser, OwnerID: param}
	}
}

// # Like Toggle

// LikeResult reports the outcome of a like/unlike toggle on a public
// resource. The same shape is shared by books, chapters, and blogs.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// # Shared Projections

// ChapterSummary is the content-free chapter projection served by chapter
// lists and embedded in book details. It lives here so the book domain can
// type its detail payload without importing the chapter domain.
type ChapterSummary struct {
	ID            string     `json:"id"`
	BookID        string     `json:"book_id"`
	ChapterNumber int        `json:"chapter_number"`
	Title         string     `json:"title"`
	WordCount     int        `json:"word_count"`
	Visibility    Visibility `json:"visibility"`
	LikeCount     int        `json:"like_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
