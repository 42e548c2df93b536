package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"crew-management-api/config"
	"crew-management-api/models"
	"crew-management-api/services"
	"crew-management-api/utils"

	"github.com/gin-gonic/gin"
)

// ===================== SUBMISSION WORKFLOW =====================

type submissionFileRequest struct {
	Path string `json:"path" binding:"required"`
	Name string `json:"name" binding:"required"`
	Size int64  `json:"size"`
}

type createSubmissionRequest struct {
	AssignmentType  string                  `json:"assignment_type" binding:"required"`
	Status          string                  `json:"status" binding:"required"`
	Comment         string                  `json:"comment"`
	SubmissionLinks []string                `json:"submission_links"`
	Files           []submissionFileRequest `json:"files"`
	TaskID          *int                    `json:"task_id"`
	DeliverableID   *int                    `json:"deliverable_id"`
	DelegateCrewID  *int                    `json:"delegate_crew_id"`
}

// assignmentID returns the work item id matching the declared type. Exactly
// one of task_id/deliverable_id must be set and it must match the type.
func (r *createSubmissionRequest) assignmentID() (int, bool) {
	if (r.TaskID == nil) == (r.DeliverableID == nil) {
		return 0, false
	}
	switch r.AssignmentType {
	case models.AssignmentTypeTask:
		if r.TaskID == nil {
			return 0, false
		}
		return *r.TaskID, true
	case models.AssignmentTypeDeliverable:
		if r.DeliverableID == nil {
			return 0, false
		}
		return *r.DeliverableID, true
	}
	return 0, false
}

// CreateSubmission records a work product submission for an assigned crew
// member, or for a delegate when a supervisor submits on their behalf.
func CreateSubmission(c *gin.Context) {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	var req createSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidAssignmentType(req.AssignmentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignment_type must be task or deliverable"})
		return
	}

	assignmentID, ok := req.assignmentID()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of task_id or deliverable_id must be set, matching assignment_type"})
		return
	}

	crew, err := services.CrewForUser(config.DB, userID.(int))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	assignmentService := services.NewAssignmentService(config.DB)
	submitterCrewID, err := assignmentService.ResolveSubmitter(
		crew.CrewID, roleID.(int), req.AssignmentType, assignmentID, req.DelegateCrewID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	input := services.CreateSubmissionInput{
		AssignmentType: req.AssignmentType,
		AssignmentID:   assignmentID,
		SubmittedBy:    submitterCrewID,
		Status:         utils.SanitizeInput(req.Status),
		Links:          req.SubmissionLinks,
	}
	if comment := utils.SanitizeInput(req.Comment); comment != "" {
		input.Comment = &comment
	}
	for _, f := range req.Files {
		input.Files = append(input.Files, services.SubmissionFileInput{
			Path: f.Path,
			Name: f.Name,
			Size: f.Size,
		})
	}

	submission, err := services.NewSubmissionService(config.DB).Create(input)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetAssignmentSubmissions returns the submission history of a work item,
// newest first.
func GetAssignmentSubmissions(c *gin.Context) {
	assignmentType := c.Param("type")
	if !models.ValidAssignmentType(assignmentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assignment type must be task or deliverable"})
		return
	}

	assignmentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || assignmentID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment ID"})
		return
	}

	submissions, err := services.NewSubmissionService(config.DB).ListByAssignment(assignmentType, assignmentID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// respondWorkflowError maps service error kinds onto HTTP statuses. Conflict
// stays distinguishable from internal failures so clients can tell "someone
// else claimed this" apart from a server fault.
func respondWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected server error"})
	}
}
