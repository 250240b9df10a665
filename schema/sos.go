package schema

import "time"

const (
	SOSAlertCollection = "sos_alerts"
)

const (
	ALERT_ACTIVE   = "active"
	ALERT_RESOLVED = "resolved"
)

type SOSAlert struct {
	ID         string     `json:"id" bson:"_id"`
	UserID     string     `json:"userId" bson:"user_id"`
	ProviderID string     `json:"providerId,omitempty" bson:"provider_id,omitempty"`
	Location   Location   `json:"location" bson:"location"`
	Address    string     `json:"address" bson:"address"`
	Status     string     `json:"status" bson:"status"`
	CreatedAt  time.Time  `json:"createdAt" bson:"created_at"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty" bson:"resolved_at,omitempty"`
	ResolvedBy string     `json:"resolvedBy,omitempty" bson:"resolved_by,omitempty"`
}
