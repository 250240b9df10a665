package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
	"github.com/bitmark-inc/neighbourmatch-api/store"
)

func (s *Server) userDetail(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

// userUpdateProfile updates the profile fields a resident owns
func (s *Server) userUpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var params struct {
		FullName      *string  `json:"fullName" binding:"omitempty,max=100"`
		PhoneNumber   *string  `json:"phoneNumber" binding:"omitempty,max=20"`
		ApartmentName *string  `json:"apartmentName" binding:"omitempty,max=100"`
		Block         *string  `json:"block" binding:"omitempty,max=20"`
		FlatNumber    *string  `json:"flatNumber" binding:"omitempty,max=20"`
		SkillsOffered []string `json:"skillsOffered" binding:"omitempty,dive,skill"`
		Availability  []string `json:"availability" binding:"omitempty,dive,timewindow"`
		Location      *struct {
			Latitude  *float64 `json:"latitude" binding:"required,min=-90,max=90"`
			Longitude *float64 `json:"longitude" binding:"required,min=-180,max=180"`
		} `json:"location"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	update := store.ProfileUpdate{
		FullName:      params.FullName,
		PhoneNumber:   params.PhoneNumber,
		ApartmentName: params.ApartmentName,
		Block:         params.Block,
		FlatNumber:    params.FlatNumber,
		SkillsOffered: canonicalSkills(params.SkillsOffered),
		Availability:  canonicalTimeWindows(params.Availability),
	}
	if params.Location != nil {
		update.Location = &schema.Location{
			Latitude:  *params.Location.Latitude,
			Longitude: *params.Location.Longitude,
		}
	}

	updated, err := s.mongoStore.UpdateUserProfile(user.ID, update)
	if err != nil {
		if err == store.ErrUserNotExist {
			abortWithEncoding(c, http.StatusNotFound, errorUserNotFound, err)
			return
		}
		abortWithEncoding(c, http.StatusServiceUnavailable, errorUpstreamUnavailable, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": updated})
}
