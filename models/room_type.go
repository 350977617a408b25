package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType is a bookable room category. The unit labels (room numbers) are
// stored as a JSON array and are the authoritative source for availability
// math; RoomCount is kept denormalized for display.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:128" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	NormalPrice int64  `gorm:"column:normal_price" json:"normalPrice"`
	RoomCount   int    `gorm:"column:room_count" json:"roomCount"`
	MaxGuests   int    `gorm:"column:max_guests" json:"maxGuests"`
	Priority    int    `gorm:"column:priority;default:0" json:"priority"`

	RoomNumbers datatypes.JSON `gorm:"column:room_numbers" json:"roomNumbers"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UnitLabels decodes the room-number list. A missing or malformed column
// yields an empty list; the UI tolerates a mismatch with RoomCount but
// availability math treats this list as authoritative.
func (rt *RoomType) UnitLabels() []string {
	if len(rt.RoomNumbers) == 0 {
		return []string{}
	}
	var labels []string
	if err := json.Unmarshal(rt.RoomNumbers, &labels); err != nil {
		return []string{}
	}
	return labels
}

// SetUnitLabels encodes labels into the JSON column and syncs RoomCount.
func (rt *RoomType) SetUnitLabels(labels []string) error {
	raw, err := json.Marshal(labels)
	if err != nil {
		return err
	}
	rt.RoomNumbers = datatypes.JSON(raw)
	rt.RoomCount = len(labels)
	return nil
}
