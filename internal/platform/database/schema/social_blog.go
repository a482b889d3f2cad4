package schema

// SocialBlogTable represents the 'social.blog' table
type SocialBlogTable struct {
	Table        string
	ID           string
	AuthorID     string
	Title        string
	Content      string
	Genres       string
	Visibility   string
	SpoilerAlert string
	CreatedAt    string
	UpdatedAt    string
}

// SocialBlog is the schema definition for social.blog
var SocialBlog = SocialBlogTable{
	Table:        "social.blog",
	ID:           "id",
	AuthorID:     "authorid",
	Title:        "title",
	Content:      "content",
	Genres:       "genres",
	Visibility:   "visibility",
	SpoilerAlert: "spoileralert",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
