package schema

// SocialBlogLikeTable represents the 'social.bloglike' membership table
type SocialBlogLikeTable struct {
	Table     string
	BlogID    string
	UserID    string
	CreatedAt string
}

// SocialBlogLike is the schema definition for social.bloglike
var SocialBlogLike = SocialBlogLikeTable{
	Table:     "social.bloglike",
	BlogID:    "blogid",
	UserID:    "userid",
	CreatedAt: "createdat",
}
