package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/neighbourmatch-api/apperror"
	"github.com/bitmark-inc/neighbourmatch-api/lifecycle"
	"github.com/bitmark-inc/neighbourmatch-api/matcher"
	"github.com/bitmark-inc/neighbourmatch-api/notification"
	"github.com/bitmark-inc/neighbourmatch-api/safety"
)

var (
	errorMessageMap = map[int64]string{
		998: "upstream service unavailable, please retry",
		999: "internal server error",

		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1101: "user not found",
		1102: "admin role required",

		1200: "request not found",
		1201: "only the requested worker could respond to the request",
		1202: "only the requester could verify the session",
		1203: "not a participant of the request",
		1204: "the request is not in a state that allows this change",
		1205: "the worker is engaged in another session",
		1206: "the session is no longer waiting for verification",
		1207: "verification code does not match",
		1208: "verification code must be 6 digits",
		1209: "status must be Accepted or Rejected",
		1210: "cannot send a request to yourself",
		1211: "worker not found",

		1300: "skill not recognized",

		1400: "notification not found",

		1500: "location is required",
		1501: "invalid location",
		1502: "alert not found",
		1503: "the alert has been resolved",
		1504: "invalid alert status",
	}

	errorUpstreamUnavailable = errorJSON(998)
	errorInternalServer      = errorJSON(999)

	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorUserNotFound = errorJSON(1101)
	errorAdminOnly    = errorJSON(1102)

	errorRequestNotFound     = errorJSON(1200)
	errorNotRequestWorker    = errorJSON(1201)
	errorNotRequestRequester = errorJSON(1202)
	errorNotParticipant      = errorJSON(1203)
	errorInvalidTransition   = errorJSON(1204)
	errorWorkerBusy          = errorJSON(1205)
	errorSessionExpired      = errorJSON(1206)
	errorCodeMismatch        = errorJSON(1207)
	errorMalformedCode       = errorJSON(1208)
	errorInvalidDecision     = errorJSON(1209)
	errorSelfRequest         = errorJSON(1210)
	errorWorkerNotFound      = errorJSON(1211)

	errorSkillNotRecognized = errorJSON(1300)

	errorNotificationNotFound = errorJSON(1400)

	errorLocationRequired = errorJSON(1500)
	errorInvalidLocation  = errorJSON(1501)
	errorAlertNotFound    = errorJSON(1502)
	errorAlertResolved    = errorJSON(1503)
	errorInvalidStatus    = errorJSON(1504)
)

// appErrorMap binds the classified errors of the core packages to a response
var appErrorMap = map[error]ErrorResponse{
	matcher.ErrSkillRequired: errorSkillNotRecognized,

	lifecycle.ErrSkillRequired:       errorSkillNotRecognized,
	lifecycle.ErrSelfRequest:         errorSelfRequest,
	lifecycle.ErrInvalidDecision:     errorInvalidDecision,
	lifecycle.ErrMalformedCode:       errorMalformedCode,
	lifecycle.ErrCodeMismatch:        errorCodeMismatch,
	lifecycle.ErrNotRequestWorker:    errorNotRequestWorker,
	lifecycle.ErrNotRequestRequester: errorNotRequestRequester,
	lifecycle.ErrNotParticipant:      errorNotParticipant,
	lifecycle.ErrInvalidTransition:   errorInvalidTransition,
	lifecycle.ErrWorkerBusy:          errorWorkerBusy,
	lifecycle.ErrSessionExpired:      errorSessionExpired,
	lifecycle.ErrRequestNotFound:     errorRequestNotFound,
	lifecycle.ErrWorkerNotFound:      errorWorkerNotFound,

	notification.ErrNotificationNotFound: errorNotificationNotFound,

	safety.ErrLocationRequired: errorLocationRequired,
	safety.ErrInvalidLocation:  errorInvalidLocation,
	safety.ErrInvalidStatus:    errorInvalidStatus,
	safety.ErrUserNotFound:     errorUserNotFound,
	safety.ErrAlertNotFound:    errorAlertNotFound,
	safety.ErrAlertResolved:    errorAlertResolved,
}

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// statusOf maps an error kind to the http status code
func statusOf(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindAuthorization:
		return http.StatusForbidden
	case apperror.KindStateConflict:
		return http.StatusConflict
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindUpstream:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithAppError responds with the status and error code of a core error
func abortWithAppError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)

	resp, ok := appErrorMap[err]
	if !ok {
		switch kind {
		case apperror.KindUpstream:
			resp = errorUpstreamUnavailable
		case apperror.KindValidation:
			resp = errorInvalidParameters
		default:
			resp = errorInternalServer
		}
	}

	entry := log.WithError(err).WithFields(logrus.Fields{
		"kind":   kind.String(),
		"reason": apperror.ReasonOf(err),
		"path":   c.FullPath(),
	})
	if kind == apperror.KindUpstream || kind == apperror.KindUnknown {
		entry.Error("request failed")
	} else {
		entry.Info("request rejected")
	}

	abortWithEncoding(c, statusOf(kind), resp, err)
}
