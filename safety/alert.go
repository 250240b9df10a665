// Package safety raises and resolves SOS alerts on the admin broadcast channel.
package safety

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/neighbourmatch-api/apperror"
	"github.com/bitmark-inc/neighbourmatch-api/geo"
	"github.com/bitmark-inc/neighbourmatch-api/realtime"
	"github.com/bitmark-inc/neighbourmatch-api/schema"
	"github.com/bitmark-inc/neighbourmatch-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "safety")
}

const (
	activeListLimit  = 50
	defaultListLimit = 50
	maxListLimit     = 200
)

var (
	ErrLocationRequired = apperror.Validation("location_required")
	ErrInvalidLocation  = apperror.Validation("invalid_location")
	ErrInvalidStatus    = apperror.Validation("invalid_status")
	ErrUserNotFound     = apperror.NotFound("user_not_found")
	ErrAlertNotFound    = apperror.NotFound("alert_not_found")
	ErrAlertResolved    = apperror.StateConflict("alert_resolved")
)

// Directory looks up community members
type Directory interface {
	GetUser(userID string) (*schema.User, error)
}

// TriggerInput is what a resident sends when raising an alert
type TriggerInput struct {
	ProviderID string
	Latitude   *float64
	Longitude  *float64
	Address    string
}

type AlertUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Apartment string `json:"apartment"`
	Block     string `json:"block"`
	Flat      string `json:"flat"`
}

type AlertProvider struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type AlertLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// AlertView is the shape of an alert on the admin channel and in listings
type AlertView struct {
	AlertID    string         `json:"alertId"`
	User       AlertUser      `json:"user"`
	Provider   *AlertProvider `json:"provider"`
	Location   AlertLocation  `json:"location"`
	Timestamp  time.Time      `json:"timestamp"`
	Status     string         `json:"status"`
	ResolvedAt *time.Time     `json:"resolvedAt,omitempty"`
	ResolvedBy string         `json:"resolvedBy,omitempty"`
}

type AlertChannel struct {
	alerts    store.AlertStore
	directory Directory
	resolver  geo.AddressResolver
	transport realtime.Transport
	scope     tally.Scope
	now       func() time.Time
}

func NewAlertChannel(alerts store.AlertStore, directory Directory, resolver geo.AddressResolver,
	transport realtime.Transport, scope tally.Scope) *AlertChannel {
	return &AlertChannel{
		alerts:    alerts,
		directory: directory,
		resolver:  resolver,
		transport: transport,
		scope:     scope.SubScope("sos"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Trigger stores an active alert and broadcasts it to the admin channel
func (a *AlertChannel) Trigger(ctx context.Context, userID string, in TriggerInput) (*AlertView, error) {
	if in.Latitude == nil || in.Longitude == nil {
		return nil, ErrLocationRequired
	}

	loc := schema.Location{Latitude: *in.Latitude, Longitude: *in.Longitude}
	if math.IsNaN(loc.Latitude) || math.IsNaN(loc.Longitude) || !geo.ValidLocation(loc) {
		return nil, ErrInvalidLocation
	}

	user, err := a.directory.GetUser(userID)
	if err != nil {
		if err == store.ErrUserNotExist {
			return nil, ErrUserNotFound
		}
		return nil, apperror.Upstream(err)
	}

	var provider *schema.User
	if in.ProviderID != "" {
		provider = a.lookupProvider(in.ProviderID)
	}

	alert := &schema.SOSAlert{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Location:  loc,
		Address:   a.address(ctx, loc, in.Address),
		Status:    schema.ALERT_ACTIVE,
		CreatedAt: a.now(),
	}
	if provider != nil {
		alert.ProviderID = provider.ID
	}

	if err := a.alerts.CreateAlert(alert); err != nil {
		return nil, apperror.Upstream(err)
	}
	a.scope.Counter("triggered").Inc(1)

	view := newAlertView(alert, user, provider)

	if err := a.transport.Publish(ctx, realtime.AdminChannel, realtime.Event{
		Type:    realtime.EventAlertTriggered,
		Payload: view,
	}); err != nil {
		a.scope.Counter("publish_failure").Inc(1)
		log.WithError(err).WithField("alert_id", alert.ID).Error("broadcast alert")
	}

	log.WithField("alert_id", alert.ID).WithField("user_id", user.ID).Warn("sos alert triggered")

	return &view, nil
}

// ListActive returns the unresolved alerts, newest first
func (a *AlertChannel) ListActive(ctx context.Context) ([]AlertView, error) {
	return a.list(schema.ALERT_ACTIVE, activeListLimit)
}

// List returns the alert history filtered by an optional status
func (a *AlertChannel) List(ctx context.Context, status string, limit int64) ([]AlertView, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && status != schema.ALERT_ACTIVE && status != schema.ALERT_RESOLVED {
		return nil, ErrInvalidStatus
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return a.list(status, limit)
}

// Resolve closes an active alert and broadcasts the resolution. A resolved
// alert never becomes active again.
func (a *AlertChannel) Resolve(ctx context.Context, actorID, alertID string) (*AlertView, error) {
	alert, err := a.alerts.ResolveAlert(alertID, actorID)
	if err != nil {
		switch err {
		case store.ErrAlertNotExist:
			return nil, ErrAlertNotFound
		case store.ErrAlertResolved:
			return nil, ErrAlertResolved
		default:
			return nil, apperror.Upstream(err)
		}
	}
	a.scope.Counter("resolved").Inc(1)

	if err := a.transport.Publish(ctx, realtime.AdminChannel, realtime.Event{
		Type: realtime.EventAlertResolved,
		Payload: map[string]interface{}{
			"alertId":    alert.ID,
			"resolvedBy": alert.ResolvedBy,
			"resolvedAt": alert.ResolvedAt,
		},
	}); err != nil {
		a.scope.Counter("publish_failure").Inc(1)
		log.WithError(err).WithField("alert_id", alert.ID).Error("broadcast alert resolution")
	}

	views := a.views([]schema.SOSAlert{*alert})
	return &views[0], nil
}

func (a *AlertChannel) list(status string, limit int64) ([]AlertView, error) {
	alerts, err := a.alerts.ListAlerts(status, limit)
	if err != nil {
		return nil, apperror.Upstream(err)
	}
	return a.views(alerts), nil
}

func (a *AlertChannel) views(alerts []schema.SOSAlert) []AlertView {
	users := map[string]*schema.User{}
	lookup := func(id string) *schema.User {
		if id == "" {
			return nil
		}
		if u, ok := users[id]; ok {
			return u
		}
		u, err := a.directory.GetUser(id)
		if err != nil {
			if err != store.ErrUserNotExist {
				log.WithError(err).WithField("user_id", id).Warn("look up alert user")
			}
			u = nil
		}
		users[id] = u
		return u
	}

	views := make([]AlertView, 0, len(alerts))
	for i := range alerts {
		user := lookup(alerts[i].UserID)
		if user == nil {
			user = &schema.User{ID: alerts[i].UserID}
		}
		views = append(views, newAlertView(&alerts[i], user, lookup(alerts[i].ProviderID)))
	}
	return views
}

func (a *AlertChannel) lookupProvider(providerID string) *schema.User {
	provider, err := a.directory.GetUser(providerID)
	if err != nil {
		if err != store.ErrUserNotExist {
			log.WithError(err).WithField("provider_id", providerID).Warn("look up provider")
		}
		return nil
	}
	return provider
}

func (a *AlertChannel) address(ctx context.Context, loc schema.Location, given string) string {
	if given = strings.TrimSpace(given); given != "" {
		return given
	}

	if a.resolver == nil {
		return geo.DefaultAddress
	}

	address, err := a.resolver.ResolveAddress(ctx, loc)
	if err != nil || address == "" {
		log.WithError(err).Debug("reverse geocode alert location")
		return geo.DefaultAddress
	}
	return address
}

func newAlertView(alert *schema.SOSAlert, user *schema.User, provider *schema.User) AlertView {
	view := AlertView{
		AlertID: alert.ID,
		User: AlertUser{
			ID:        user.ID,
			Name:      user.FullName,
			Phone:     user.PhoneNumber,
			Apartment: user.ApartmentName,
			Block:     user.Block,
			Flat:      user.FlatNumber,
		},
		Location: AlertLocation{
			Latitude:  alert.Location.Latitude,
			Longitude: alert.Location.Longitude,
			Address:   alert.Address,
		},
		Timestamp:  alert.CreatedAt,
		Status:     alert.Status,
		ResolvedAt: alert.ResolvedAt,
		ResolvedBy: alert.ResolvedBy,
	}

	if provider != nil {
		view.Provider = &AlertProvider{
			ID:    provider.ID,
			Name:  provider.FullName,
			Phone: provider.PhoneNumber,
		}
	}

	return view
}
