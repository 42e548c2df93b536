package models

import "time"

// Booking is the aggregate that owns tasks and deliverables. Booking CRUD is
// managed elsewhere; this subsystem only reads the link.
type Booking struct {
	BookingID  int        `gorm:"primaryKey;column:booking_id" json:"booking_id"`
	Title      string     `gorm:"column:title" json:"title"`
	ClientName string     `gorm:"column:client_name" json:"client_name"`
	EventDate  *time.Time `gorm:"column:event_date" json:"event_date,omitempty"`
	CreateAt   *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt   *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt   *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}
