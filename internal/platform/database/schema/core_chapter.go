package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table         string
	ID            string
	BookID        string
	AuthorID      string
	ChapterNumber string
	Title         string
	Content       string
	WordCount     string
	Visibility    string
	CreatedAt     string
	UpdatedAt     string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:         "core.chapter",
	ID:            "id",
	BookID:        "bookid",
	AuthorID:      "authorid",
	ChapterNumber: "chapternumber",
	Title:         "title",
	Content:       "content",
	WordCount:     "wordcount",
	Visibility:    "visibility",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
