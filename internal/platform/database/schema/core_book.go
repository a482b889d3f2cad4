package schema

// CoreBookTable represents the 'core.book' table
type CoreBookTable struct {
	Table       string
	ID          string
	AuthorID    string
	Title       string
	Synopsis    string
	Genres      string
	Visibility  string
	CoverImage  string
	IsCompleted string
	CreatedAt   string
	UpdatedAt   string
}

// CoreBook is the schema definition for core.book
var CoreBook = CoreBookTable{
	Table:       "core.book",
	ID:          "id",
	AuthorID:    "authorid",
	Title:       "title",
	Synopsis:    "synopsis",
	Genres:      "genres",
	Visibility:  "visibility",
	CoverImage:  "coverimage",
	IsCompleted: "iscompleted",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
