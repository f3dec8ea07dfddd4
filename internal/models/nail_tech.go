package models

import "time"

// NailTech is created lazily the first time a booking names a tech
// that does not exist yet. Never mutated or deleted afterwards.
type NailTech struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
