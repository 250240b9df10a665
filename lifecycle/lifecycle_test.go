package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/neighbourmatch-api/apperror"
	"github.com/bitmark-inc/neighbourmatch-api/notification"
	"github.com/bitmark-inc/neighbourmatch-api/realtime"
	"github.com/bitmark-inc/neighbourmatch-api/schema"
	"github.com/bitmark-inc/neighbourmatch-api/store"
)

type directory map[string]schema.User

func (d directory) GetUser(userID string) (*schema.User, error) {
	u, ok := d[userID]
	if !ok {
		return nil, store.ErrUserNotExist
	}
	return &u, nil
}

type recordingNotifier struct {
	sync.Mutex
	sent   []notification.Outgoing
	pushed []realtime.Event
	fail   bool
}

func (n *recordingNotifier) Send(_ context.Context, out notification.Outgoing) error {
	n.Lock()
	defer n.Unlock()
	n.sent = append(n.sent, out)
	if n.fail {
		return fmt.Errorf("transport down")
	}
	return nil
}

func (n *recordingNotifier) Push(_ context.Context, _ string, event realtime.Event) error {
	n.Lock()
	defer n.Unlock()
	n.pushed = append(n.pushed, event)
	if n.fail {
		return fmt.Errorf("transport down")
	}
	return nil
}

type LifecycleTestSuite struct {
	suite.Suite
	db       *gorm.DB
	store    *store.NeighbourStore
	notifier *recordingNotifier
	scope    tally.TestScope
	manager  *Manager
	ctx      context.Context
}

func (s *LifecycleTestSuite) SetupTest() {
	db, err := gorm.Open("sqlite3", ":memory:")
	s.Require().NoError(err)
	db.DB().SetMaxOpenConns(1)
	s.Require().NoError(store.Migrate(db))

	s.db = db
	s.store = store.NewNeighbourStore(db)
	s.notifier = &recordingNotifier{}
	s.scope = tally.NewTestScope("", nil)
	s.ctx = context.Background()

	users := directory{
		"requester": {ID: "requester", FullName: "Ravi"},
		"other":     {ID: "other", FullName: "Kavya"},
		"worker":    {ID: "worker", FullName: "Meera", SkillsOffered: []string{"Plumbing"}},
	}
	s.manager = New(s.store, users, s.notifier, s.scope).WithCodeGenerator(func() (string, error) {
		return "482913", nil
	})
}

func (s *LifecycleTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *LifecycleTestSuite) create() *schema.Request {
	req, err := s.manager.Create(s.ctx, "requester", "worker", "plumbing", "morning")
	s.Require().NoError(err)
	return req
}

func (s *LifecycleTestSuite) accepted() *schema.Request {
	req := s.create()
	_, err := s.manager.Respond(s.ctx, "worker", req.ID.String(), "Accepted")
	s.Require().NoError(err)
	return req
}

func (s *LifecycleTestSuite) active() *schema.Request {
	req := s.accepted()
	_, err := s.manager.VerifySession(s.ctx, "requester", req.ID.String(), "482913")
	s.Require().NoError(err)
	return req
}

func (s *LifecycleTestSuite) status(req *schema.Request) string {
	stored, err := s.store.GetRequest(req.ID.String())
	s.Require().NoError(err)
	return stored.Status
}

func (s *LifecycleTestSuite) TestCreate() {
	req := s.create()
	s.Equal(schema.REQUEST_PENDING, req.Status)
	s.Equal("Plumbing", req.RequiredSkill)
	s.Equal("Morning", req.RequestedTime)

	s.Len(s.notifier.sent, 1)
	s.Equal("worker", s.notifier.sent[0].ReceiverID)
	s.Equal(notification.MessageRequestNew, s.notifier.sent[0].MessageID)
	s.Equal(req.ID.String(), s.notifier.sent[0].RequestID)
}

func (s *LifecycleTestSuite) TestCreateValidation() {
	_, err := s.manager.Create(s.ctx, "requester", "worker", "juggling", "")
	s.Equal(ErrSkillRequired, err)

	_, err = s.manager.Create(s.ctx, "worker", "worker", "Plumbing", "")
	s.Equal(ErrSelfRequest, err)

	_, err = s.manager.Create(s.ctx, "requester", "ghost", "Plumbing", "")
	s.Equal(ErrWorkerNotFound, err)
	s.Equal(apperror.KindNotFound, apperror.KindOf(err))

	s.Empty(s.notifier.sent)
}

func (s *LifecycleTestSuite) TestCreateKeepsFreeFormTime() {
	req, err := s.manager.Create(s.ctx, "requester", "worker", "Plumbing", "  tomorrow 5pm ")
	s.NoError(err)
	s.Equal("tomorrow 5pm", req.RequestedTime)

	stored, err := s.store.GetRequest(req.ID.String())
	s.NoError(err)
	s.Equal("tomorrow 5pm", stored.RequestedTime)

	req, err = s.manager.Create(s.ctx, "requester", "worker", "Plumbing", "evening")
	s.NoError(err)
	s.Equal("Evening", req.RequestedTime)

	req, err = s.manager.Create(s.ctx, "requester", "worker", "Plumbing", "")
	s.NoError(err)
	s.Empty(req.RequestedTime)
}

func (s *LifecycleTestSuite) TestAcceptCodeGeneratorFailure() {
	req := s.create()
	s.manager.WithCodeGenerator(func() (string, error) {
		return "", fmt.Errorf("entropy exhausted")
	})

	_, err := s.manager.Respond(s.ctx, "worker", req.ID.String(), "Accepted")
	s.Error(err)
	s.Equal(apperror.KindUpstream, apperror.KindOf(err))
	s.Equal(schema.REQUEST_PENDING, s.status(req))
}

func (s *LifecycleTestSuite) TestAccept() {
	req := s.create()

	accepted, err := s.manager.Respond(s.ctx, "worker", req.ID.String(), "Accepted")
	s.NoError(err)
	s.Equal(schema.REQUEST_ACCEPTED, accepted.Status)
	s.Equal("482913", accepted.SessionCode)

	s.Len(s.notifier.pushed, 1)
	s.Equal(realtime.EventSessionCode, s.notifier.pushed[0].Type)
	payload := s.notifier.pushed[0].Payload.(map[string]interface{})
	s.Equal("482913", payload["otp"])
	s.Equal("Ravi", payload["requesterName"])

	last := s.notifier.sent[len(s.notifier.sent)-1]
	s.Equal("requester", last.ReceiverID)
	s.Equal(notification.MessageRequestAccepted, last.MessageID)

	s.Equal(int64(1), s.scope.Snapshot().Counters()["lifecycle.transition+status=Accepted"].Value())
}

func (s *LifecycleTestSuite) TestAcceptByRequesterIsUnauthorized() {
	req := s.create()

	_, err := s.manager.Respond(s.ctx, "requester", req.ID.String(), "Accepted")
	s.Equal(ErrNotRequestWorker, err)
	s.Equal(apperror.KindAuthorization, apperror.KindOf(err))
	s.Equal(schema.REQUEST_PENDING, s.status(req))
}

func (s *LifecycleTestSuite) TestInvalidDecision() {
	req := s.create()

	_, err := s.manager.Respond(s.ctx, "worker", req.ID.String(), "maybe")
	s.Equal(ErrInvalidDecision, err)
	s.Equal(apperror.KindValidation, apperror.KindOf(err))
	s.Equal(schema.REQUEST_PENDING, s.status(req))
}

func (s *LifecycleTestSuite) TestRespondWithOtherStatusIsInvalidTransition() {
	req := s.create()

	for _, status := range []string{"Completed", "active", "Pending"} {
		_, err := s.manager.Respond(s.ctx, "worker", req.ID.String(), status)
		s.Equal(ErrInvalidTransition, err, status)
		s.Equal(apperror.KindStateConflict, apperror.KindOf(err), status)
	}
	s.Equal(schema.REQUEST_PENDING, s.status(req))

	_, err := s.manager.Respond(s.ctx, "worker", "not-a-uuid", "Completed")
	s.Equal(ErrRequestNotFound, err)
}

func (s *LifecycleTestSuite) TestUnknownRequest() {
	_, err := s.manager.Respond(s.ctx, "worker", "not-a-uuid", "Accepted")
	s.Equal(ErrRequestNotFound, err)

	_, err = s.manager.Complete(s.ctx, "worker", "4a1b8a4e-5a0f-4a53-9a55-6d0f2f6f8b20")
	s.Equal(ErrRequestNotFound, err)
}

func (s *LifecycleTestSuite) TestAcceptWhileEngaged() {
	s.accepted()

	second, err := s.manager.Create(s.ctx, "other", "worker", "Plumbing", "")
	s.Require().NoError(err)

	_, err = s.manager.Respond(s.ctx, "worker", second.ID.String(), "Accepted")
	s.Equal(ErrWorkerBusy, err)
	s.Equal(apperror.KindStateConflict, apperror.KindOf(err))
	s.Equal(schema.REQUEST_PENDING, s.status(second))
}

func (s *LifecycleTestSuite) TestReject() {
	req := s.create()

	rejected, err := s.manager.Respond(s.ctx, "worker", req.ID.String(), "rejected")
	s.NoError(err)
	s.Equal(schema.REQUEST_REJECTED, rejected.Status)

	last := s.notifier.sent[len(s.notifier.sent)-1]
	s.Equal("requester", last.ReceiverID)
	s.Equal(notification.MessageRequestRejected, last.MessageID)
}

func (s *LifecycleTestSuite) TestIllegalTransitionsLeaveStatusUnchanged() {
	rejected := s.create()
	_, err := s.manager.Respond(s.ctx, "worker", rejected.ID.String(), "Rejected")
	s.Require().NoError(err)

	completed := s.active()
	_, err = s.manager.Complete(s.ctx, "worker", completed.ID.String())
	s.Require().NoError(err)

	pending, err := s.manager.Create(s.ctx, "other", "worker", "Plumbing", "")
	s.Require().NoError(err)

	cases := []struct {
		name string
		req  *schema.Request
		try  func(id string) error
	}{
		{"accept rejected", rejected, func(id string) error {
			_, err := s.manager.Respond(s.ctx, "worker", id, "Accepted")
			return err
		}},
		{"reject rejected", rejected, func(id string) error {
			_, err := s.manager.Respond(s.ctx, "worker", id, "Rejected")
			return err
		}},
		{"complete rejected", rejected, func(id string) error {
			_, err := s.manager.Complete(s.ctx, "requester", id)
			return err
		}},
		{"verify rejected", rejected, func(id string) error {
			_, err := s.manager.VerifySession(s.ctx, "requester", id, "482913")
			return err
		}},
		{"accept completed", completed, func(id string) error {
			_, err := s.manager.Respond(s.ctx, "worker", id, "Accepted")
			return err
		}},
		{"complete completed", completed, func(id string) error {
			_, err := s.manager.Complete(s.ctx, "requester", id)
			return err
		}},
		{"verify completed", completed, func(id string) error {
			_, err := s.manager.VerifySession(s.ctx, "requester", id, "482913")
			return err
		}},
		{"complete pending", pending, func(id string) error {
			_, err := s.manager.Complete(s.ctx, "other", id)
			return err
		}},
		{"verify pending", pending, func(id string) error {
			_, err := s.manager.VerifySession(s.ctx, "other", id, "482913")
			return err
		}},
	}

	for _, c := range cases {
		before := s.status(c.req)
		err := c.try(c.req.ID.String())
		s.Equal(apperror.KindStateConflict, apperror.KindOf(err), c.name)
		s.Equal(before, s.status(c.req), c.name)
	}
}

func (s *LifecycleTestSuite) TestVerifySession() {
	req := s.accepted()

	_, err := s.manager.VerifySession(s.ctx, "requester", req.ID.String(), "12ab56")
	s.Equal(ErrMalformedCode, err)

	_, err = s.manager.VerifySession(s.ctx, "worker", req.ID.String(), "482913")
	s.Equal(ErrNotRequestRequester, err)

	_, err = s.manager.VerifySession(s.ctx, "requester", req.ID.String(), "000000")
	s.Equal(ErrCodeMismatch, err)
	s.Equal(schema.REQUEST_ACCEPTED, s.status(req))

	active, err := s.manager.VerifySession(s.ctx, "requester", req.ID.String(), " 482913 ")
	s.NoError(err)
	s.Equal(schema.REQUEST_ACTIVE, active.Status)
	s.True(active.SessionVerified)

	last := s.notifier.sent[len(s.notifier.sent)-1]
	s.Equal("worker", last.ReceiverID)
	s.Equal(notification.MessageSessionActive, last.MessageID)

	_, err = s.manager.VerifySession(s.ctx, "requester", req.ID.String(), "482913")
	s.Equal(ErrSessionExpired, err)
}

func (s *LifecycleTestSuite) TestConcurrentVerificationSucceedsOnce() {
	req := s.accepted()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.manager.VerifySession(s.ctx, "requester", req.ID.String(), "482913")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.Equal(ErrSessionExpired, err)
		}
	}
	s.Equal(1, succeeded)
	s.Equal(schema.REQUEST_ACTIVE, s.status(req))
	s.Equal(int64(1), s.scope.Snapshot().Counters()["lifecycle.transition+status=Active"].Value())
}

func (s *LifecycleTestSuite) TestComplete() {
	req := s.active()

	_, err := s.manager.Complete(s.ctx, "other", req.ID.String())
	s.Equal(ErrNotParticipant, err)

	completed, err := s.manager.Complete(s.ctx, "requester", req.ID.String())
	s.NoError(err)
	s.Equal(schema.REQUEST_COMPLETED, completed.Status)

	last := s.notifier.sent[len(s.notifier.sent)-1]
	s.Equal("worker", last.ReceiverID)
	s.Equal(notification.MessageSessionCompleted, last.MessageID)
}

func (s *LifecycleTestSuite) TestCompleteFromAccepted() {
	req := s.accepted()

	completed, err := s.manager.Complete(s.ctx, "worker", req.ID.String())
	s.NoError(err)
	s.Equal(schema.REQUEST_COMPLETED, completed.Status)

	last := s.notifier.sent[len(s.notifier.sent)-1]
	s.Equal("requester", last.ReceiverID)
}

func (s *LifecycleTestSuite) TestDeliveryFailureKeepsTransition() {
	req := s.create()
	s.notifier.fail = true

	accepted, err := s.manager.Respond(s.ctx, "worker", req.ID.String(), "Accepted")
	s.NoError(err)
	s.Equal(schema.REQUEST_ACCEPTED, accepted.Status)
	s.Equal(schema.REQUEST_ACCEPTED, s.status(req))
}

func (s *LifecycleTestSuite) TestListings() {
	req := s.accepted()

	received, err := s.manager.Received(s.ctx, "worker")
	s.NoError(err)
	s.Len(received, 1)
	s.Equal(req.ID, received[0].ID)
	s.Equal("482913", received[0].SessionCode)
	s.Equal("Ravi", received[0].Counterpart.FullName)

	sent, err := s.manager.Sent(s.ctx, "requester")
	s.NoError(err)
	s.Len(sent, 1)
	s.Empty(sent[0].SessionCode)
	s.Equal("Meera", sent[0].Counterpart.FullName)
}

func TestLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(LifecycleTestSuite))
}
