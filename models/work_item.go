package models

import "time"

// Assignment type discriminators used across submissions, assignments and
// notifications.
const (
	AssignmentTypeTask        = "task"
	AssignmentTypeDeliverable = "deliverable"
)

// Workflow status values written by the submission/review pipeline. The
// workflow_status column itself is free text mirrored from submissions; these
// are the values this subsystem writes on decisions.
const (
	WorkflowStatusApproved       = "approved"
	WorkflowStatusRevisionNeeded = "revision_needed"
)

// Task is a unit of work under a booking that crews can be assigned to.
type Task struct {
	TaskID               int        `gorm:"primaryKey;column:task_id" json:"task_id"`
	BookingID            int        `gorm:"column:booking_id" json:"booking_id"`
	Title                string     `gorm:"column:title" json:"title"`
	Description          *string    `gorm:"column:description" json:"description,omitempty"`
	Status               string     `gorm:"column:status" json:"status"` // open | completed
	WorkflowStatus       string     `gorm:"column:workflow_status" json:"workflow_status"`
	ApprovedSubmissionID *int       `gorm:"column:approved_submission_id" json:"approved_submission_id,omitempty"`
	ApprovedAt           *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	LastStatusUpdateBy   *int       `gorm:"column:last_status_update_by" json:"last_status_update_by,omitempty"`
	LastStatusUpdatedAt  *time.Time `gorm:"column:last_status_updated_at" json:"last_status_updated_at,omitempty"`
	DueDate              *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt             *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

// Deliverable is a work product owed under a booking. It carries the same
// workflow fields as Task and flows through the same submission pipeline.
type Deliverable struct {
	DeliverableID        int        `gorm:"primaryKey;column:deliverable_id" json:"deliverable_id"`
	BookingID            int        `gorm:"column:booking_id" json:"booking_id"`
	Title                string     `gorm:"column:title" json:"title"`
	Description          *string    `gorm:"column:description" json:"description,omitempty"`
	Status               string     `gorm:"column:status" json:"status"` // open | completed
	WorkflowStatus       string     `gorm:"column:workflow_status" json:"workflow_status"`
	ApprovedSubmissionID *int       `gorm:"column:approved_submission_id" json:"approved_submission_id,omitempty"`
	ApprovedAt           *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	LastStatusUpdateBy   *int       `gorm:"column:last_status_update_by" json:"last_status_update_by,omitempty"`
	LastStatusUpdatedAt  *time.Time `gorm:"column:last_status_updated_at" json:"last_status_updated_at,omitempty"`
	DueDate              *time.Time `gorm:"column:due_date" json:"due_date,omitempty"`
	CreateAt             *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt             *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt             *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

// TableName overrides
func (Task) TableName() string {
	return "tasks"
}

func (Deliverable) TableName() string {
	return "deliverables"
}

// ValidAssignmentType reports whether t names a known work item kind.
func ValidAssignmentType(t string) bool {
	return t == AssignmentTypeTask || t == AssignmentTypeDeliverable
}
