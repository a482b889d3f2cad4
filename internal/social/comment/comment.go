// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package comment implements the threaded comments of discussions.

The thread is a strict two-tier tree: top-level comments and replies to
top-level comments. Depth is capped at write time by a single parent
lookup, never recursively, and the tree is rebuilt on read from one
chronologically ordered query.
*/
package comment

import (
	"time"
)

// # Domain Entities

// Comment represents a single comment on a discussion. ParentID is nil
// for top-level comments and references a top-level comment for replies.
type Comment struct {
	ID           string    `json:"id"`
	DiscussionID string    `json:"discussion_id"`
	AuthorID     string    `json:"author_id"`
	ParentID     *string   `json:"parent_id,omitempty"`
	Content      string    `json:"content"`
	SpoilerAlert bool      `json:"spoiler_alert"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Node is a top-level comment carrying its replies.
type Node struct {
	*Comment
	Replies []*Comment `json:"replies"`
}

// BuildTree assembles the two-tier comment tree from a flat list ordered
// chronologically ascending.
//
// The input is ordered by creation time with the time-ordered id as
// tiebreaker, so a reply always sorts after its parent and a single pass
// suffices: top-level comments are appended in order, and each reply
// attaches to an already-seen parent. Replies whose parent is missing
// from the list are dropped.
func BuildTree(comments []*Comment) []*Node {
	tree := []*Node{}
	index := make(map[string]*Node, len(comments))

	for _, c := range comments {
		if c.ParentID == nil {
			node := &Node{Comment: c, Replies: []*Comment{}}
			index[c.ID] = node
			tree = append(tree, node)
			continue
		}
		if parent, ok := index[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}

	return tree
}

// # Field Identifiers

const (
	FieldContent  = "content"
	FieldParentID = "parent_id"
)

// # Limits

const MaxContentLen = 1000
