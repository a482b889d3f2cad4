package schema

// CoreChapterLikeTable represents the 'core.chapterlike' membership table
type CoreChapterLikeTable struct {
	Table     string
	ChapterID string
	UserID    string
	CreatedAt string
}

// CoreChapterLike is the schema definition for core.chapterlike
var CoreChapterLike = CoreChapterLikeTable{
	Table:     "core.chapterlike",
	ChapterID: "chapterid",
	UserID:    "userid",
	CreatedAt: "createdat",
}
