package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// createRequest opens a pending request to the selected helper
func (s *Server) createRequest(c *gin.Context) {
	var params struct {
		WorkerID string `json:"workerId" binding:"required"`
		Skill    string `json:"skill" binding:"required"`
		Time     string `json:"time"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	req, err := s.lifecycle.Create(c.Request.Context(), currentUser(c).ID, params.WorkerID, params.Skill, params.Time)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"request": req})
}

func (s *Server) receivedRequests(c *gin.Context) {
	reqs, err := s.lifecycle.Received(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

func (s *Server) sentRequests(c *gin.Context) {
	reqs, err := s.lifecycle.Sent(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

// respondRequest is the API for a worker to accept or reject a request
func (s *Server) respondRequest(c *gin.Context) {
	var params struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	req, err := s.lifecycle.Respond(c.Request.Context(), currentUser(c).ID, c.Param("requestID"), params.Status)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	resp := gin.H{"request": req}
	if req.SessionCode != "" {
		resp["sessionCode"] = req.SessionCode
	}
	c.JSON(http.StatusOK, resp)
}

// verifySession is the API for a requester to enter the code shown by the worker
func (s *Server) verifySession(c *gin.Context) {
	var params struct {
		Code string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	req, err := s.lifecycle.VerifySession(c.Request.Context(), currentUser(c).ID, c.Param("requestID"), params.Code)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}

func (s *Server) completeRequest(c *gin.Context) {
	req, err := s.lifecycle.Complete(c.Request.Context(), currentUser(c).ID, c.Param("requestID"))
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"request": req})
}
