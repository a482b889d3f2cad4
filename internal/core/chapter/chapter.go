// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package chapter implements the chapter domain of user-authored books.

Chapters sit on the child side of the visibility cascade: a chapter can
only be public while its parent book is public. Word counts are derived
from the content on every write and never accepted from clients.
*/
package chapter

import (
	"strings"
	"time"

	"github.com/boibritto/boibritto-api/internal/core/content"
)

// # Domain Entities

// Chapter represents a single chapter of a user-authored book.
type Chapter struct {
	ID            string             `json:"id"`
	BookID        string             `json:"book_id"`
	AuthorID      string             `json:"author_id"`
	ChapterNumber int                `json:"chapter_number"`
	Title         string             `json:"title"`
	Content       string             `json:"content"`
	WordCount     int                `json:"word_count"`
	Visibility    content.Visibility `json:"visibility"`
	LikeCount     int                `json:"like_count"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Summarize strips the content from a chapter. Full text is only served
// by the detail endpoint.
func (c *Chapter) Summarize() *content.ChapterSummary {
	return &content.ChapterSummary{
		ID:            c.ID,
		BookID:        c.BookID,
		ChapterNumber: c.ChapterNumber,
		Title:         c.Title,
		WordCount:     c.WordCount,
		Visibility:    c.Visibility,
		LikeCount:     c.LikeCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// CountWords derives the stored word count from chapter content:
// the number of whitespace-separated tokens of the trimmed text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// # Field Identifiers

const (
	FieldChapterNumber = "chapter_number"
	FieldTitle         = "title"
	FieldContent       = "content"
	FieldVisibility    = "visibility"
)

// # Limits

const (
	MaxTitleLen   = 200
	MaxContentLen = 100000
)
