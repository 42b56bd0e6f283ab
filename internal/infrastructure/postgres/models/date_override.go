package models

import "time"

// Date is stored as YYYY-MM-DD text so ordering and the unique
// (property, date) key behave the same on postgres and sqlite.
type DateOverrideModel struct {
	ID             string `gorm:"primaryKey"`
	PropertyID     string `gorm:"uniqueIndex:idx_property_date"`
	Date           string `gorm:"uniqueIndex:idx_property_date"`
	Price          *int64
	MinNights      *int
	IsBlackout     bool
	BlackoutReason string
	Source         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (DateOverrideModel) TableName() string {
	return "date_overrides"
}
