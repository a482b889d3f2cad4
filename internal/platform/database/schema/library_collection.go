package schema

// LibraryCollectionTable represents the 'library.collection' table
type LibraryCollectionTable struct {
	Table       string
	ID          string
	OwnerID     string
	Title       string
	Description string
	Genres      string
	Visibility  string
	CreatedAt   string
	UpdatedAt   string
}

// LibraryCollection is the schema definition for library.collection
var LibraryCollection = LibraryCollectionTable{
	Table:       "library.collection",
	ID:          "id",
	OwnerID:     "ownerid",
	Title:       "title",
	Description: "description",
	Genres:      "genres",
	Visibility:  "visibility",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
