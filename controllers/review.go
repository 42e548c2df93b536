package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"crew-management-api/config"
	"crew-management-api/services"

	"github.com/gin-gonic/gin"
)

// ===================== REVIEW WORKFLOW =====================

// ClaimSubmission reserves a submission for the calling reviewer. The claim
// is decided by a single conditional update in the service; a lost race comes
// back as 409.
func ClaimSubmission(c *gin.Context) {
	userID, _ := c.Get("userID")

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	crew, err := services.CrewForUser(config.DB, userID.(int))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	submission, err := services.NewReviewService(config.DB).Claim(submissionID, crew.CrewID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

type reviewSubmissionRequest struct {
	Action        string `json:"action" binding:"required"`
	ReviewComment string `json:"review_comment"`
}

// ReviewSubmission applies an approve/request-changes decision. Claiming
// first is not required.
func ReviewSubmission(c *gin.Context) {
	userID, _ := c.Get("userID")

	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil || submissionID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req reviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action != services.ReviewActionApprove && action != services.ReviewActionRequestChanges {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action must be either 'approve' or 'request_changes'"})
		return
	}

	crew, err := services.CrewForUser(config.DB, userID.(int))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	var comment *string
	if trimmed := strings.TrimSpace(req.ReviewComment); trimmed != "" {
		comment = &trimmed
	}

	submission, err := services.NewReviewService(config.DB).Decide(submissionID, crew.CrewID, action, comment)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	// Decision is committed; the email mirror is best effort.
	go services.SendDecisionEmail(config.DB, submission)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}
