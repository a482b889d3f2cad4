package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	UID         string
	Username    string
	Email       string
	DisplayName string
	Bio         string
	AvatarURL   string
	Genres      string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	UID:         "uid",
	Username:    "username",
	Email:       "email",
	DisplayName: "displayname",
	Bio:         "bio",
	AvatarURL:   "avatarurl",
	Genres:      "genres",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.UID, t.Username, t.Email, t.DisplayName,
		t.Bio, t.AvatarURL, t.Genres, t.CreatedAt, t.UpdatedAt,
	}
}
