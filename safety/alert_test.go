package safety

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/neighbourmatch-api/apperror"
	"github.com/bitmark-inc/neighbourmatch-api/geo"
	"github.com/bitmark-inc/neighbourmatch-api/realtime"
	"github.com/bitmark-inc/neighbourmatch-api/schema"
	"github.com/bitmark-inc/neighbourmatch-api/store"
)

type memoryAlerts struct {
	sync.Mutex
	alerts map[string]schema.SOSAlert
}

func (m *memoryAlerts) CreateAlert(alert *schema.SOSAlert) error {
	m.Lock()
	defer m.Unlock()
	m.alerts[alert.ID] = *alert
	return nil
}

func (m *memoryAlerts) GetAlert(alertID string) (*schema.SOSAlert, error) {
	m.Lock()
	defer m.Unlock()
	alert, ok := m.alerts[alertID]
	if !ok {
		return nil, store.ErrAlertNotExist
	}
	return &alert, nil
}

func (m *memoryAlerts) ListAlerts(status string, limit int64) ([]schema.SOSAlert, error) {
	m.Lock()
	defer m.Unlock()
	result := []schema.SOSAlert{}
	for _, a := range m.alerts {
		if status == "" || a.Status == status {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if int64(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *memoryAlerts) ResolveAlert(alertID, resolverID string) (*schema.SOSAlert, error) {
	m.Lock()
	defer m.Unlock()
	alert, ok := m.alerts[alertID]
	if !ok {
		return nil, store.ErrAlertNotExist
	}
	if alert.Status != schema.ALERT_ACTIVE {
		return nil, store.ErrAlertResolved
	}
	now := time.Now().UTC()
	alert.Status = schema.ALERT_RESOLVED
	alert.ResolvedAt = &now
	alert.ResolvedBy = resolverID
	m.alerts[alertID] = alert
	return &alert, nil
}

type directory map[string]schema.User

func (d directory) GetUser(userID string) (*schema.User, error) {
	u, ok := d[userID]
	if !ok {
		return nil, store.ErrUserNotExist
	}
	return &u, nil
}

type failingResolver struct{}

func (failingResolver) ResolveAddress(context.Context, schema.Location) (string, error) {
	return "", fmt.Errorf("geocoder down")
}

func float(f float64) *float64 {
	return &f
}

type AlertTestSuite struct {
	suite.Suite
	alerts  *memoryAlerts
	hub     *realtime.Hub
	admin   *realtime.Subscription
	channel *AlertChannel
	ctx     context.Context
}

func (s *AlertTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.alerts = &memoryAlerts{alerts: map[string]schema.SOSAlert{}}
	s.hub = realtime.NewHub(tally.NoopScope)
	s.admin = s.hub.Subscribe(realtime.AdminChannel)

	users := directory{
		"resident": {
			ID:            "resident",
			FullName:      "Ravi",
			PhoneNumber:   "+91 98450 00000",
			ApartmentName: "Green Valley",
			Block:         "A",
			FlatNumber:    "101",
		},
		"plumber": {ID: "plumber", FullName: "Meera", PhoneNumber: "+91 98450 11111"},
	}

	s.channel = NewAlertChannel(s.alerts, users, geo.NewMultipleAddressResolver(
		failingResolver{},
		geo.NewStaticAddressResolver("12 MG Road"),
	), s.hub, tally.NoopScope)
}

func (s *AlertTestSuite) TearDownTest() {
	s.hub.Unsubscribe(s.admin)
}

// events drains the admin subscription
func (s *AlertTestSuite) events() []realtime.Event {
	var events []realtime.Event
	for {
		select {
		case e, ok := <-s.admin.Events():
			if !ok {
				return events
			}
			events = append(events, e)
		default:
			return events
		}
	}
}

func (s *AlertTestSuite) TestTriggerBroadcastsOnce() {
	view, err := s.channel.Trigger(s.ctx, "resident", TriggerInput{
		ProviderID: "plumber",
		Latitude:   float(12.9716),
		Longitude:  float(77.5946),
	})
	s.NoError(err)
	s.Equal(schema.ALERT_ACTIVE, view.Status)
	s.Equal("12 MG Road", view.Location.Address)

	events := s.events()
	s.Len(events, 1)
	s.Equal(realtime.EventAlertTriggered, events[0].Type)

	payload := events[0].Payload.(AlertView)
	s.Equal(view.AlertID, payload.AlertID)
	s.Equal("active", payload.Status)
	s.Equal("Green Valley", payload.User.Apartment)
	s.Equal("A", payload.User.Block)
	s.Equal("101", payload.User.Flat)
	s.Equal("Meera", payload.Provider.Name)
	s.Equal(12.9716, payload.Location.Latitude)
}

func (s *AlertTestSuite) TestTriggerKeepsClientAddress() {
	view, err := s.channel.Trigger(s.ctx, "resident", TriggerInput{
		Latitude:  float(12.9716),
		Longitude: float(77.5946),
		Address:   "Block A gate",
	})
	s.NoError(err)
	s.Equal("Block A gate", view.Location.Address)
	s.Nil(view.Provider)
}

func (s *AlertTestSuite) TestTriggerFallsBackToDefaultAddress() {
	channel := NewAlertChannel(s.alerts, directory{"resident": {ID: "resident"}},
		failingResolver{}, s.hub, tally.NoopScope)

	view, err := channel.Trigger(s.ctx, "resident", TriggerInput{
		Latitude:  float(0),
		Longitude: float(0),
	})
	s.NoError(err)
	s.Equal(geo.DefaultAddress, view.Location.Address)
}

func (s *AlertTestSuite) TestTriggerWithUnknownProvider() {
	view, err := s.channel.Trigger(s.ctx, "resident", TriggerInput{
		ProviderID: "ghost",
		Latitude:   float(12.9716),
		Longitude:  float(77.5946),
	})
	s.NoError(err)
	s.Nil(view.Provider)
}

func (s *AlertTestSuite) TestTriggerValidation() {
	_, err := s.channel.Trigger(s.ctx, "resident", TriggerInput{Latitude: float(12.9)})
	s.Equal(ErrLocationRequired, err)
	s.Equal(apperror.KindValidation, apperror.KindOf(err))

	_, err = s.channel.Trigger(s.ctx, "resident", TriggerInput{Latitude: float(91), Longitude: float(0)})
	s.Equal(ErrInvalidLocation, err)

	_, err = s.channel.Trigger(s.ctx, "ghost", TriggerInput{Latitude: float(1), Longitude: float(1)})
	s.Equal(ErrUserNotFound, err)

	s.Empty(s.events())
	s.Empty(s.alerts.alerts)
}

func (s *AlertTestSuite) TestResolveIsTerminal() {
	view, err := s.channel.Trigger(s.ctx, "resident", TriggerInput{
		Latitude:  float(12.9716),
		Longitude: float(77.5946),
	})
	s.NoError(err)
	s.events()

	resolved, err := s.channel.Resolve(s.ctx, "admin", view.AlertID)
	s.NoError(err)
	s.Equal(schema.ALERT_RESOLVED, resolved.Status)
	s.Equal("Ravi", resolved.User.Name)

	events := s.events()
	s.Len(events, 1)
	s.Equal(realtime.EventAlertResolved, events[0].Type)
	s.Equal(view.AlertID, events[0].Payload.(map[string]interface{})["alertId"])

	_, err = s.channel.Resolve(s.ctx, "admin", view.AlertID)
	s.Equal(ErrAlertResolved, err)
	s.Empty(s.events())

	stored, err := s.alerts.GetAlert(view.AlertID)
	s.NoError(err)
	s.Equal(schema.ALERT_RESOLVED, stored.Status)

	_, err = s.channel.Resolve(s.ctx, "admin", "missing")
	s.Equal(ErrAlertNotFound, err)
}

func (s *AlertTestSuite) TestListActive() {
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		s.channel.now = func() time.Time { return at }
		_, err := s.channel.Trigger(s.ctx, "resident", TriggerInput{
			Latitude:  float(12.9716),
			Longitude: float(77.5946),
		})
		s.NoError(err)
	}

	active, err := s.channel.ListActive(s.ctx)
	s.NoError(err)
	s.Len(active, 3)
	s.True(active[0].Timestamp.After(active[1].Timestamp))

	_, err = s.channel.Resolve(s.ctx, "admin", active[0].AlertID)
	s.NoError(err)

	active, err = s.channel.ListActive(s.ctx)
	s.NoError(err)
	s.Len(active, 2)

	all, err := s.channel.List(s.ctx, "", 0)
	s.NoError(err)
	s.Len(all, 3)

	resolved, err := s.channel.List(s.ctx, "Resolved", 10)
	s.NoError(err)
	s.Len(resolved, 1)

	_, err = s.channel.List(s.ctx, "pending", 10)
	s.Equal(ErrInvalidStatus, err)
}

func TestAlertTestSuite(t *testing.T) {
	suite.Run(t, new(AlertTestSuite))
}
