// catalog/directory.go
package catalog

import (
	"errors"

	"github.com/jmoiron/sqlx"

	"stockroom/database"
	"stockroom/model"
)

// ErrItemNotFound marks a serial number with no catalog entry. A miss is an
// expected outcome; callers present it to the user rather than failing.
var ErrItemNotFound = errors.New("item not found")

// Directory is the read-only serial number lookup used by the slip builder.
type Directory struct {
	db *sqlx.DB
}

func NewDirectory(db *sqlx.DB) *Directory {
	return &Directory{db: db}
}

// LookupBySerial matches the serial number exactly. Pure query.
func (d *Directory) LookupBySerial(serialNumber string) (model.Item, error) {
	item, err := database.GetItemBySerial(d.db, serialNumber)
	if err != nil {
		return model.Item{}, err
	}
	if item == nil {
		return model.Item{}, ErrItemNotFound
	}
	return *item, nil
}

// LookupBySerials resolves many serial numbers in one query. Serials with no
// catalog entry are simply absent from the result map.
func (d *Directory) LookupBySerials(serialNumbers []string) (map[string]model.Item, error) {
	return database.GetItemsBySerials(d.db, serialNumbers)
}
