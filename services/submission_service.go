package services

import (
	"encoding/json"
	"fmt"
	"time"

	"crew-management-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmissionService creates and queries submissions and their files.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// SubmissionFileInput references an already-uploaded file to attach.
type SubmissionFileInput struct {
	Path string
	Name string
	Size int64
}

// CreateSubmissionInput carries an authorized, validated submission request.
// SubmittedBy is the crew the submission is attributed to, already resolved
// through AssignmentService.ResolveSubmitter.
type CreateSubmissionInput struct {
	AssignmentType string
	AssignmentID   int
	SubmittedBy    int
	Status         string
	Comment        *string
	Links          []string
	Files          []SubmissionFileInput
}

// Create persists a submission, its files and the work item status mirror in
// one transaction. A reader never observes a submission without the parent
// work item reflecting it.
func (s *SubmissionService) Create(in CreateSubmissionInput) (*models.Submission, error) {
	if !models.ValidAssignmentType(in.AssignmentType) {
		return nil, fmt.Errorf("%w: unknown assignment type %q", ErrValidation, in.AssignmentType)
	}
	if in.AssignmentID <= 0 {
		return nil, fmt.Errorf("%w: missing %s id", ErrValidation, in.AssignmentType)
	}
	if in.Status == "" {
		return nil, fmt.Errorf("%w: status is required", ErrValidation)
	}

	var links datatypes.JSON
	if len(in.Links) > 0 {
		raw, err := json.Marshal(in.Links)
		if err != nil {
			return nil, fmt.Errorf("%w: submission links are not serializable", ErrValidation)
		}
		links = datatypes.JSON(raw)
	}

	now := time.Now()
	submission := models.Submission{
		AssignmentType:  in.AssignmentType,
		AssignmentID:    in.AssignmentID,
		Version:         1,
		Status:          in.Status,
		Comment:         in.Comment,
		SubmissionLinks: links,
		SubmittedBy:     in.SubmittedBy,
		SubmittedAt:     now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := workItemExists(tx, in.AssignmentType, in.AssignmentID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %s %d does not exist", ErrValidation, in.AssignmentType, in.AssignmentID)
		}

		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		if len(in.Files) > 0 {
			files := make([]models.SubmissionFile, 0, len(in.Files))
			for _, f := range in.Files {
				files = append(files, models.SubmissionFile{
					SubmissionID: submission.SubmissionID,
					FilePath:     f.Path,
					FileName:     f.Name,
					FileSize:     f.Size,
					UploadedBy:   in.SubmittedBy,
					UploadedAt:   now,
				})
			}
			if err := tx.Create(&files).Error; err != nil {
				return err
			}
			submission.Files = files
		}

		// Mirror the submission status onto the parent work item.
		return updateWorkItem(tx, in.AssignmentType, in.AssignmentID, map[string]interface{}{
			"workflow_status":        in.Status,
			"last_status_update_by":  in.SubmittedBy,
			"last_status_updated_at": now,
			"update_at":              now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// ListByAssignment returns the submission history of a work item, newest
// first, with submitter and reviewer identities and files resolved.
func (s *SubmissionService) ListByAssignment(assignmentType string, assignmentID int) ([]models.Submission, error) {
	if !models.ValidAssignmentType(assignmentType) {
		return nil, fmt.Errorf("%w: unknown assignment type %q", ErrValidation, assignmentType)
	}
	if assignmentID <= 0 {
		return nil, fmt.Errorf("%w: missing %s id", ErrValidation, assignmentType)
	}

	var submissions []models.Submission
	if err := s.db.
		Preload("Submitter.User").
		Preload("Reviewer.User").
		Preload("Files").
		Where("assignment_type = ? AND assignment_id = ?", assignmentType, assignmentID).
		Order("submitted_at DESC, submission_id DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
