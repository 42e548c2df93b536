package services

import (
	"errors"
	"fmt"

	"crew-management-api/models"

	"gorm.io/gorm"
)

// Role ids as stored in roles.role_id.
const (
	RoleCrew       = 1
	RoleSupervisor = 2
	RoleAdmin      = 3
)

// ManagerEquivalentRole reports whether the role may act on behalf of other
// crew members (delegated submissions).
func ManagerEquivalentRole(roleID int) bool {
	return roleID == RoleSupervisor || roleID == RoleAdmin
}

// AssignmentService answers whether a crew identity may submit work for a
// given work item.
type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// ResolveSubmitter authorizes a submission attempt and returns the crew id
// the submission should be attributed to.
//
// With delegateCrewID set, the caller must hold a manager-equivalent role and
// the submission is attributed to the delegate. The delegate itself is not
// re-checked against the work item; the supervisor is trusted.
//
// Without delegation the caller must hold a direct assignment record for the
// work item.
func (s *AssignmentService) ResolveSubmitter(callerCrewID, callerRoleID int, assignmentType string, assignmentID int, delegateCrewID *int) (int, error) {
	if delegateCrewID != nil {
		if !ManagerEquivalentRole(callerRoleID) {
			return 0, fmt.Errorf("%w: submitting on behalf of another crew member requires a supervisor role", ErrForbidden)
		}
		return *delegateCrewID, nil
	}

	var count int64
	if err := s.db.Model(&models.CrewAssignment{}).
		Where("crew_id = ? AND assignment_type = ? AND assignment_id = ?",
			callerCrewID, assignmentType, assignmentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: not assigned to this %s", ErrForbidden, assignmentType)
	}
	return callerCrewID, nil
}

// CrewForUser resolves the crew record backing a user account. Users without
// a crew record cannot take part in the submission workflow.
func CrewForUser(db *gorm.DB, userID int) (*models.Crew, error) {
	var crew models.Crew
	if err := db.Where("user_id = ? AND delete_at IS NULL", userID).First(&crew).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no crew record for user %d", ErrForbidden, userID)
		}
		return nil, err
	}
	return &crew, nil
}
