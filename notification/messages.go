package notification

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

const (
	MessageRequestNew       = "request_new"
	MessageRequestAccepted  = "request_accepted"
	MessageRequestRejected  = "request_rejected"
	MessageSessionActive    = "session_active"
	MessageSessionCompleted = "session_completed"
)

// Messages are the built-in English texts; translations are loaded from files
var Messages = []*i18n.Message{
	{ID: MessageRequestNew, Other: "New request for {{.Skill}}{{if .Time}} ({{.Time}}){{end}}"},
	{ID: MessageRequestAccepted, Other: "Your {{.Skill}} request was ACCEPTED!"},
	{ID: MessageRequestRejected, Other: "Your {{.Skill}} request was declined."},
	{ID: MessageSessionActive, Other: "Session verified! Service is now ACTIVE."},
	{ID: MessageSessionCompleted, Other: "The session for {{.Skill}} is COMPLETED."},
}

// DefaultLocalizer speaks the built-in English texts only
func DefaultLocalizer() *i18n.Localizer {
	bundle := i18n.NewBundle(language.English)
	if err := bundle.AddMessages(language.English, Messages...); err != nil {
		panic(err)
	}
	return i18n.NewLocalizer(bundle, language.English.String())
}
