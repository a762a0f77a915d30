// model/catalog_types.go
package model

// Item is one catalog entry. SerialNumber is the human-entered lookup key;
// ID is the internal identifier.
type Item struct {
	ID           string `db:"id" json:"id"`
	SerialNumber string `db:"serial_number" json:"serialNo"`
	ItemType     string `db:"item_type" json:"itemType"`
	Description  string `db:"description" json:"itemDesc"`
	SizeOrSource string `db:"size_source" json:"sizeSource"`
	CreatedAt    string `db:"created_at" json:"createdAt,omitempty"`
}

// ItemInput is the payload for creating a catalog entry.
type ItemInput struct {
	SerialNumber string `json:"serialNo"`
	ItemType     string `json:"itemType"`
	Description  string `json:"itemDesc"`
	SizeOrSource string `json:"sizeSource"`
}
