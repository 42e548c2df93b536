package controllers

import (
	"net/http"
	"strconv"

	"crew-management-api/config"
	"crew-management-api/services"

	"github.com/gin-gonic/gin"
)

// GetNotifications returns the calling crew member's notifications, newest
// first.
func GetNotifications(c *gin.Context) {
	userID, _ := c.Get("userID")

	crew, err := services.CrewForUser(config.DB, userID.(int))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	notifications, err := services.NewNotificationService(config.DB).ListForCrew(crew.CrewID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
		"total":         len(notifications),
	})
}

// MarkNotificationRead flags one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	userID, _ := c.Get("userID")

	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil || notificationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	crew, err := services.CrewForUser(config.DB, userID.(int))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	if err := services.NewNotificationService(config.DB).MarkRead(crew.CrewID, notificationID); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
