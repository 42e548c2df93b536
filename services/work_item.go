package services

import (
	"fmt"

	"crew-management-api/models"

	"gorm.io/gorm"
)

// The task/deliverable split is resolved once here; everything downstream of
// these helpers treats a work item as (kind, id) and shares one code path.

func workItemModel(assignmentType string) (interface{}, string, error) {
	switch assignmentType {
	case models.AssignmentTypeTask:
		return &models.Task{}, "task_id", nil
	case models.AssignmentTypeDeliverable:
		return &models.Deliverable{}, "deliverable_id", nil
	default:
		return nil, "", fmt.Errorf("%w: unknown assignment type %q", ErrValidation, assignmentType)
	}
}

// workItemExists reports whether a live work item of the given kind exists.
func workItemExists(tx *gorm.DB, assignmentType string, assignmentID int) (bool, error) {
	model, pk, err := workItemModel(assignmentType)
	if err != nil {
		return false, err
	}

	var count int64
	if err := tx.Model(model).
		Where(pk+" = ? AND delete_at IS NULL", assignmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// updateWorkItem applies the given column updates to the work item row.
// Zero rows affected means the item vanished under us; the caller's
// transaction is expected to roll back on the returned ErrNotFound.
func updateWorkItem(tx *gorm.DB, assignmentType string, assignmentID int, updates map[string]interface{}) error {
	model, pk, err := workItemModel(assignmentType)
	if err != nil {
		return err
	}

	res := tx.Model(model).
		Where(pk+" = ? AND delete_at IS NULL", assignmentID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, assignmentType, assignmentID)
	}
	return nil
}
