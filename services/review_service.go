package services

import (
	"errors"
	"fmt"
	"time"

	"crew-management-api/models"

	"gorm.io/gorm"
)

// Review actions accepted by Decide.
const (
	ReviewActionApprove        = "approve"
	ReviewActionRequestChanges = "request_changes"
)

// ReviewService owns the claim slot and the approve/reject decision,
// including the cascade into the parent work item.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Claim reserves a submission for the given reviewer. The reservation is a
// single conditional update guarded by `current_reviewer IS NULL`; exactly
// one of any number of racing callers wins, everyone else gets ErrConflict.
// A read-then-write sequence here would reopen the race, so there isn't one.
// There is no release: a claim holds for the life of the submission.
func (s *ReviewService) Claim(submissionID, reviewerCrewID int) (*models.Submission, error) {
	res := s.db.Model(&models.Submission{}).
		Where("submission_id = ? AND current_reviewer IS NULL", submissionID).
		Update("current_reviewer", reviewerCrewID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: submission already claimed or not found", ErrConflict)
	}

	var submission models.Submission
	if err := s.db.
		Preload("Submitter.User").
		Preload("Reviewer.User").
		Preload("Files").
		First(&submission, submissionID).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// Decide applies an approve/request-changes decision to a submission and
// cascades the outcome to its work item, all in one transaction:
//
//	approve         -> submission approved; work item workflow_status=approved,
//	                   status=completed, approved_at/approved_submission_id set
//	request_changes -> submission changes_requested; work item
//	                   workflow_status=revision_needed, status untouched
//
// A notification to the original submitter is inserted in the same
// transaction. Claiming first is not required; the claim slot is an advisory
// signal, not a precondition.
func (s *ReviewService) Decide(submissionID, reviewerCrewID int, action string, comment *string) (*models.Submission, error) {
	var submissionStatus, workflowStatus string
	switch action {
	case ReviewActionApprove:
		submissionStatus = models.SubmissionStatusApproved
		workflowStatus = models.WorkflowStatusApproved
	case ReviewActionRequestChanges:
		submissionStatus = models.SubmissionStatusChangesNeeded
		workflowStatus = models.WorkflowStatusRevisionNeeded
	default:
		return nil, fmt.Errorf("%w: unknown review action %q", ErrValidation, action)
	}

	now := time.Now()
	var submission models.Submission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&submission, submissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: submission %d", ErrNotFound, submissionID)
			}
			return err
		}

		if err := tx.Model(&models.Submission{}).
			Where("submission_id = ?", submissionID).
			Updates(map[string]interface{}{
				"status":         submissionStatus,
				"reviewed_by":    reviewerCrewID,
				"review_comment": comment,
				"reviewed_at":    now,
			}).Error; err != nil {
			return err
		}

		itemUpdates := map[string]interface{}{
			"workflow_status":        workflowStatus,
			"last_status_update_by":  reviewerCrewID,
			"last_status_updated_at": now,
			"update_at":              now,
		}
		if action == ReviewActionApprove {
			itemUpdates["status"] = "completed"
			itemUpdates["approved_at"] = now
			itemUpdates["approved_submission_id"] = submissionID
		}
		if err := updateWorkItem(tx, submission.AssignmentType, submission.AssignmentID, itemUpdates); err != nil {
			return err
		}

		notification := DecisionNotification(submission, action, comment, now)
		return tx.Create(&notification).Error
	})
	if err != nil {
		return nil, err
	}

	submission.Status = submissionStatus
	submission.ReviewedBy = &reviewerCrewID
	submission.ReviewComment = comment
	submission.ReviewedAt = &now
	return &submission, nil
}
