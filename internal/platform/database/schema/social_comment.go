package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table        string
	ID           string
	DiscussionID string
	AuthorID     string
	ParentID     string
	Content      string
	SpoilerAlert string
	CreatedAt    string
	UpdatedAt    string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:        "social.comment",
	ID:           "id",
	DiscussionID: "discussionid",
	AuthorID:     "authorid",
	ParentID:     "parentid",
	Content:      "content",
	SpoilerAlert: "spoileralert",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
