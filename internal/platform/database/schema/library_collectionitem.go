package schema

// LibraryCollectionItemTable represents the 'library.collectionitem' table
type LibraryCollectionItemTable struct {
	Table        string
	CollectionID string
	VolumeID     string
	AddedAt      string
}

// LibraryCollectionItem is the schema definition for library.collectionitem
var LibraryCollectionItem = LibraryCollectionItemTable{
	Table:        "library.collectionitem",
	CollectionID: "collectionid",
	VolumeID:     "volumeid",
	AddedAt:      "addedat",
}
