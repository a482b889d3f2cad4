package schema

// LibraryReadingEntryTable represents the 'library.readingentry' table
type LibraryReadingEntryTable struct {
	Table       string
	ID          string
	OwnerID     string
	VolumeID    string
	Status      string
	Visibility  string
	StartedAt   string
	CompletedAt string
	CreatedAt   string
	UpdatedAt   string
}

// LibraryReadingEntry is the schema definition for library.readingentry
var LibraryReadingEntry = LibraryReadingEntryTable{
	Table:       "library.readingentry",
	ID:          "id",
	OwnerID:     "ownerid",
	VolumeID:    "volumeid",
	Status:      "status",
	Visibility:  "visibility",
	StartedAt:   "startedat",
	CompletedAt: "completedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
