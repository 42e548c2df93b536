package models

import "time"

type Notification struct {
	NotificationID   int        `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	CrewID           int        `gorm:"column:crew_id" json:"crew_id"`
	NotificationType string     `gorm:"column:notification_type" json:"notification_type"` // info|success|warning|error
	AssignmentType   string     `gorm:"column:assignment_type" json:"assignment_type"`
	AssignmentID     int        `gorm:"column:assignment_id" json:"assignment_id"`
	Message          string     `gorm:"column:message" json:"message"`
	IsRead           bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt         time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
