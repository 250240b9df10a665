package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/neighbourmatch-api/realtime"
)

// realtimeSession upgrades to a websocket carrying the events of the user's
// own channel, plus the admin channel when `admin=true` is asked by an admin
func (s *Server) realtimeSession(c *gin.Context) {
	user := currentUser(c)

	var params struct {
		Admin bool `form:"admin"`
	}

	if err := c.ShouldBindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	channels := []string{user.ID}
	if params.Admin {
		if !user.IsAdmin() {
			abortWithEncoding(c, http.StatusForbidden, errorAdminOnly)
			return
		}
		channels = append(channels, realtime.AdminChannel)
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade websocket")
		return
	}

	realtime.Serve(s.hub, conn, channels...)
}
