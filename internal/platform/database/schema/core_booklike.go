package schema

// CoreBookLikeTable represents the 'core.booklike' membership table
type CoreBookLikeTable struct {
	Table     string
	BookID    string
	UserID    string
	CreatedAt string
}

// CoreBookLike is the schema definition for core.booklike
var CoreBookLike = CoreBookLikeTable{
	Table:     "core.booklike",
	BookID:    "bookid",
	UserID:    "userid",
	CreatedAt: "createdat",
}
