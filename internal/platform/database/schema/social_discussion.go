package schema

// SocialDiscussionTable represents the 'social.discussion' table
type SocialDiscussionTable struct {
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

// SocialDiscussion is the schema definition for social.discussion
var SocialDiscussion = SocialDiscussionTable{
	Table:        "social.discussion",
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
