package services

import (
	"fmt"
	"log"
	"time"

	"crew-management-api/config"
	"crew-management-api/models"

	"gorm.io/gorm"
)

// DecisionNotification builds the notification row addressed to a
// submission's original submitter after a review decision.
func DecisionNotification(submission models.Submission, action string, comment *string, now time.Time) models.Notification {
	notificationType := "success"
	message := fmt.Sprintf("Your submission #%d for %s %d was approved.",
		submission.SubmissionID, submission.AssignmentType, submission.AssignmentID)
	if action == ReviewActionRequestChanges {
		notificationType = "warning"
		message = fmt.Sprintf("Your submission #%d for %s %d needs changes.",
			submission.SubmissionID, submission.AssignmentType, submission.AssignmentID)
	}
	if comment != nil && *comment != "" {
		message = message + " Reviewer comment: " + *comment
	}

	return models.Notification{
		CrewID:           submission.SubmittedBy,
		NotificationType: notificationType,
		AssignmentType:   submission.AssignmentType,
		AssignmentID:     submission.AssignmentID,
		Message:          message,
		CreateAt:         now,
	}
}

// SendDecisionEmail mirrors a decision notification to the submitter's email.
// Best effort: the decision has already committed, a delivery failure is only
// logged.
func SendDecisionEmail(db *gorm.DB, submission *models.Submission) {
	var crew models.Crew
	if err := db.Preload("User").First(&crew, submission.SubmittedBy).Error; err != nil {
		log.Printf("decision email: failed to resolve crew %d: %v", submission.SubmittedBy, err)
		return
	}
	if crew.User == nil || crew.User.Email == "" {
		return
	}

	subject := fmt.Sprintf("Submission #%d %s", submission.SubmissionID, submission.Status)
	body := fmt.Sprintf("<p>Your submission #%d for %s %d is now <b>%s</b>.</p>",
		submission.SubmissionID, submission.AssignmentType, submission.AssignmentID, submission.Status)
	if submission.ReviewComment != nil && *submission.ReviewComment != "" {
		body += "<p>Reviewer comment: " + *submission.ReviewComment + "</p>"
	}

	if err := config.SendMail([]string{crew.User.Email}, subject, body); err != nil {
		log.Printf("decision email: failed to send to %s: %v", crew.User.Email, err)
	}
}

// NotificationService serves a crew member's notification feed.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// ListForCrew returns notifications for a crew, newest first.
func (s *NotificationService) ListForCrew(crewID int) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.
		Where("crew_id = ?", crewID).
		Order("create_at DESC, notification_id DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one of the crew's notifications as read.
func (s *NotificationService) MarkRead(crewID, notificationID int) error {
	now := time.Now()
	res := s.db.Model(&models.Notification{}).
		Where("notification_id = ? AND crew_id = ?", notificationID, crewID).
		Updates(map[string]interface{}{
			"is_read":   true,
			"update_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: notification %d", ErrNotFound, notificationID)
	}
	return nil
}
