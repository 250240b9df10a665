package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listNotifications(c *gin.Context) {
	notifications, err := s.notifier.List(currentUser(c).ID)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (s *Server) markNotificationRead(c *gin.Context) {
	if err := s.notifier.MarkRead(c.Param("notificationID"), currentUser(c).ID); err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
