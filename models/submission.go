package models

import (
	"time"

	"gorm.io/datatypes"
)

// Submission statuses written by the review step. The status column holds
// caller-supplied text (e.g. "ready_for_review") until a decision overwrites
// it with one of these terminal values.
const (
	SubmissionStatusApproved      = "approved"
	SubmissionStatusChangesNeeded = "changes_requested"
)

// Submission is one attempt at delivering the work product for a task or
// deliverable. Rows are immutable after creation except for the claim slot
// (current_reviewer) and the terminal review fields.
type Submission struct {
	SubmissionID    int            `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	AssignmentType  string         `gorm:"column:assignment_type" json:"assignment_type"` // task | deliverable
	AssignmentID    int            `gorm:"column:assignment_id" json:"assignment_id"`
	Version         int            `gorm:"column:version" json:"version"`
	Status          string         `gorm:"column:status" json:"status"`
	Comment         *string        `gorm:"column:comment" json:"comment,omitempty"`
	SubmissionLinks datatypes.JSON `gorm:"column:submission_links" json:"submission_links,omitempty"`
	SubmittedBy     int            `gorm:"column:submitted_by" json:"submitted_by"`
	SubmittedAt     time.Time      `gorm:"column:submitted_at" json:"submitted_at"`
	CurrentReviewer *int           `gorm:"column:current_reviewer" json:"current_reviewer,omitempty"`
	ReviewedBy      *int           `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewComment   *string        `gorm:"column:review_comment" json:"review_comment,omitempty"`
	ReviewedAt      *time.Time     `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`

	// Relations
	Submitter *Crew            `gorm:"foreignKey:SubmittedBy" json:"submitter,omitempty"`
	Reviewer  *Crew            `gorm:"foreignKey:CurrentReviewer" json:"reviewer,omitempty"`
	Files     []SubmissionFile `gorm:"foreignKey:SubmissionID" json:"files,omitempty"`
}

// SubmissionFile is an uploaded artifact attached to a submission. Created in
// the same transaction as its submission, never mutated afterwards.
type SubmissionFile struct {
	FileID       int       `gorm:"primaryKey;column:file_id" json:"file_id"`
	SubmissionID int       `gorm:"column:submission_id" json:"submission_id"`
	FilePath     string    `gorm:"column:file_path" json:"file_path"`
	FileName     string    `gorm:"column:file_name" json:"file_name"`
	FileSize     int64     `gorm:"column:file_size" json:"file_size"`
	UploadedBy   int       `gorm:"column:uploaded_by" json:"uploaded_by"`
	UploadedAt   time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

func (SubmissionFile) TableName() string {
	return "submission_files"
}
