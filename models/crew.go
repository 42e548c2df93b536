package models

import "time"

// Crew is the working identity of a member inside the organization. A user
// account maps 1:1 to a crew record; assignments, submissions and reviews all
// reference crew ids, not user ids.
type Crew struct {
	CrewID   int        `gorm:"primaryKey;column:crew_id" json:"crew_id"`
	UserID   int        `gorm:"column:user_id;unique" json:"user_id"`
	Position string     `gorm:"column:position" json:"position"`
	IsActive bool       `gorm:"column:is_active" json:"is_active"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// CrewAssignment links a crew to a work item they are expected to perform.
type CrewAssignment struct {
	AssignmentRecordID int       `gorm:"primaryKey;column:assignment_record_id" json:"assignment_record_id"`
	CrewID             int       `gorm:"column:crew_id" json:"crew_id"`
	AssignmentType     string    `gorm:"column:assignment_type" json:"assignment_type"` // task | deliverable
	AssignmentID       int       `gorm:"column:assignment_id" json:"assignment_id"`
	AssignedBy         int       `gorm:"column:assigned_by" json:"assigned_by"`
	AssignedAt         time.Time `gorm:"column:assigned_at" json:"assigned_at"`

	Crew *Crew `gorm:"foreignKey:CrewID" json:"crew,omitempty"`
}

// TableName overrides
func (Crew) TableName() string {
	return "crews"
}

func (CrewAssignment) TableName() string {
	return "crew_assignments"
}
