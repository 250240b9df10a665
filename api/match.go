package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/neighbourmatch-api/matcher"
)

// matchCandidates turns a free-text need into a ranked list of helpers.
// An empty list is a valid outcome.
func (s *Server) matchCandidates(c *gin.Context) {
	var params struct {
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	need := s.extractor.Extract(c.Request.Context(), params.Message)
	if need.Skill == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorSkillNotRecognized)
		return
	}

	matches, err := s.matcher.FindCandidates(currentUser(c), need.Skill, need.TimeWindow)
	if err != nil {
		abortWithAppError(c, err)
		return
	}

	if matches == nil {
		matches = []matcher.MatchResult{}
	}

	c.JSON(http.StatusOK, gin.H{
		"intent":  need,
		"matches": matches,
	})
}
