package models

import "time"

type PropertyModel struct {
	ID              string `gorm:"primaryKey"`
	Name            string
	ExternalKey     string `gorm:"index"`
	BasePrice       int64
	BaseGuests      int
	AdultExtraPrice int64
	ChildExtraPrice int64
	MinNights       int
	CheckInTime     string
	CheckOutTime    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (PropertyModel) TableName() string {
	return "properties"
}
