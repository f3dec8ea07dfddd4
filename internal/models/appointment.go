package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Owner: the account that created the booking.
	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Booked slot start, stored UTC at minute granularity.
	StartTime time.Time `gorm:"index" json:"start_time"`

	CustomerName string `gorm:"size:100;not null" json:"customer_name"`
	PhoneNumber  string `gorm:"size:30;not null" json:"phone_number"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	// Optional assigned tech. Nil means the slot was booked without a
	// tech; such bookings may stack on one instant.
	NailTechID *uint     `json:"nail_tech_id"`
	NailTech   *NailTech `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"nail_tech,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
