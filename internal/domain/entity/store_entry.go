package entity

import "time"

// StoreEntry is one named JSON value in the persisted key/value store
type StoreEntry struct {
	Key       string    `gorm:"size:64;primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for the StoreEntry model
func (StoreEntry) TableName() string {
	return "store_entries"
}
