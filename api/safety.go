package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/neighbourmatch-api/safety"
)

// triggerSOS raises an emergency alert to the security desk
func (s *Server) triggerSOS(c *gin.Context) {
	var params struct {
		ProviderID string   `json:"providerId"`
		Latitude   *float64 `json:"latitude"`
		Longitude  *float64 `json:"longitude"`
		Address    string   `json:"address"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	alert, err := s.alerts.Trigger(c.Request.Context(), currentUser(c).ID, safety.TriggerInput{
		ProviderID: params.ProviderID,
		Latitude:   params.Latitude,
		Longitude:  params.Longitude,
		Address:    params.Address,
	})
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"alert": alert})
}

// listAlerts returns the alert history, filtered by `status`
func (s *Server) listAlerts(c *gin.Context) {
	var params struct {
		Status string `form:"status"`
		Limit  int64  `form:"limit" binding:"omitempty,min=1"`
	}

	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	alerts, err := s.alerts.List(c.Request.Context(), params.Status, params.Limit)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (s *Server) resolveAlert(c *gin.Context) {
	alert, err := s.alerts.Resolve(c.Request.Context(), currentUser(c).ID, c.Param("alertID"))
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

// securityDeskAlerts lets a desk that just connected pull the alerts it missed
func (s *Server) securityDeskAlerts(c *gin.Context) {
	alerts, err := s.alerts.ListActive(c.Request.Context())
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
