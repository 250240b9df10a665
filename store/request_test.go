package store

import (
	"sync"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

type RequestTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store *NeighbourStore
}

func (s *RequestTestSuite) SetupTest() {
	db, err := gorm.Open("sqlite3", ":memory:")
	s.Require().NoError(err)
	db.DB().SetMaxOpenConns(1)
	s.Require().NoError(Migrate(db))

	s.db = db
	s.store = NewNeighbourStore(db)
}

func (s *RequestTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *RequestTestSuite) newRequest(requesterID, workerID string) *schema.Request {
	req := &schema.Request{
		RequesterID:   requesterID,
		WorkerID:      workerID,
		RequiredSkill: "Plumbing",
		RequestedTime: "Morning",
	}
	s.Require().NoError(s.store.CreateRequest(req))
	return req
}

func (s *RequestTestSuite) TestCreateRequestIsPending() {
	req := &schema.Request{
		RequesterID:   "requester",
		WorkerID:      "worker",
		RequiredSkill: "Plumbing",
		Status:        schema.REQUEST_ACTIVE,
		SessionCode:   "123456",
	}
	s.NoError(s.store.CreateRequest(req))

	stored, err := s.store.GetRequest(req.ID.String())
	s.NoError(err)
	s.Equal(schema.REQUEST_PENDING, stored.Status)
	s.Empty(stored.SessionCode)
	s.False(stored.SessionVerified)
}

func (s *RequestTestSuite) TestGetMissingRequest() {
	_, err := s.store.GetRequest("00000000-0000-0000-0000-000000000000")
	s.Equal(ErrRequestNotExist, err)
}

func (s *RequestTestSuite) TestAcceptRequest() {
	req := s.newRequest("requester", "worker")

	accepted, err := s.store.AcceptRequest(req.ID.String(), "worker", "482913")
	s.NoError(err)
	s.Equal(schema.REQUEST_ACCEPTED, accepted.Status)
	s.Equal("482913", accepted.SessionCode)

	_, err = s.store.AcceptRequest(req.ID.String(), "worker", "111111")
	s.Equal(ErrRequestConflict, err)
}

func (s *RequestTestSuite) TestAcceptByAnotherWorker() {
	req := s.newRequest("requester", "worker")

	_, err := s.store.AcceptRequest(req.ID.String(), "stranger", "482913")
	s.Equal(ErrRequestConflict, err)

	stored, err := s.store.GetRequest(req.ID.String())
	s.NoError(err)
	s.Equal(schema.REQUEST_PENDING, stored.Status)
}

func (s *RequestTestSuite) TestAcceptWhileEngaged() {
	first := s.newRequest("requester-1", "worker")
	second := s.newRequest("requester-2", "worker")

	_, err := s.store.AcceptRequest(first.ID.String(), "worker", "482913")
	s.NoError(err)

	_, err = s.store.AcceptRequest(second.ID.String(), "worker", "551200")
	s.Equal(ErrWorkerEngaged, err)

	stored, err := s.store.GetRequest(second.ID.String())
	s.NoError(err)
	s.Equal(schema.REQUEST_PENDING, stored.Status)
}

func (s *RequestTestSuite) TestEngagedIndexRejectsDirectWrite() {
	first := s.newRequest("requester-1", "worker")
	second := s.newRequest("requester-2", "worker")

	_, err := s.store.AcceptRequest(first.ID.String(), "worker", "482913")
	s.NoError(err)

	err = s.db.Model(&schema.Request{}).
		Where("id = ?", second.ID.String()).
		Update("status", schema.REQUEST_ACTIVE).Error
	s.True(isUniqueViolation(err))
}

func (s *RequestTestSuite) TestConcurrentAcceptsForOneWorker() {
	reqs := []*schema.Request{
		s.newRequest("requester-1", "worker"),
		s.newRequest("requester-2", "worker"),
		s.newRequest("requester-3", "worker"),
	}

	var wg sync.WaitGroup
	errs := make([]error, len(reqs))
	for i, r := range reqs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = s.store.AcceptRequest(id, "worker", "482913")
		}(i, r.ID.String())
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.Equal(ErrWorkerEngaged, err)
		}
	}
	s.Equal(1, succeeded)

	busy, err := s.store.BusyWorkerIDs()
	s.NoError(err)
	s.Equal([]string{"worker"}, busy)
}

func (s *RequestTestSuite) TestRejectRequest() {
	req := s.newRequest("requester", "worker")

	_, err := s.store.RejectRequest(req.ID.String(), "stranger")
	s.Equal(ErrRequestConflict, err)

	rejected, err := s.store.RejectRequest(req.ID.String(), "worker")
	s.NoError(err)
	s.Equal(schema.REQUEST_REJECTED, rejected.Status)

	_, err = s.store.AcceptRequest(req.ID.String(), "worker", "482913")
	s.Equal(ErrRequestConflict, err)
}

func (s *RequestTestSuite) TestVerifySession() {
	req := s.newRequest("requester", "worker")
	_, err := s.store.AcceptRequest(req.ID.String(), "worker", "482913")
	s.NoError(err)

	_, err = s.store.VerifySession(req.ID.String(), "requester", "000000")
	s.Equal(ErrRequestConflict, err)

	_, err = s.store.VerifySession(req.ID.String(), "worker", "482913")
	s.Equal(ErrRequestConflict, err)

	active, err := s.store.VerifySession(req.ID.String(), "requester", "482913")
	s.NoError(err)
	s.Equal(schema.REQUEST_ACTIVE, active.Status)
	s.True(active.SessionVerified)

	_, err = s.store.VerifySession(req.ID.String(), "requester", "482913")
	s.Equal(ErrRequestConflict, err)
}

func (s *RequestTestSuite) TestCompleteRequest() {
	pending := s.newRequest("requester", "worker")
	_, err := s.store.CompleteRequest(pending.ID.String(), "requester")
	s.Equal(ErrRequestConflict, err)

	_, err = s.store.AcceptRequest(pending.ID.String(), "worker", "482913")
	s.NoError(err)

	_, err = s.store.CompleteRequest(pending.ID.String(), "stranger")
	s.Equal(ErrRequestConflict, err)

	completed, err := s.store.CompleteRequest(pending.ID.String(), "requester")
	s.NoError(err)
	s.Equal(schema.REQUEST_COMPLETED, completed.Status)

	busy, err := s.store.BusyWorkerIDs()
	s.NoError(err)
	s.Empty(busy)

	_, err = s.store.CompleteRequest(pending.ID.String(), "worker")
	s.Equal(ErrRequestConflict, err)
}

func (s *RequestTestSuite) TestListings() {
	s.newRequest("requester", "worker-1")
	s.newRequest("requester", "worker-2")
	s.newRequest("someone", "worker-1")

	sent, err := s.store.ListSentRequests("requester")
	s.NoError(err)
	s.Len(sent, 2)

	received, err := s.store.ListReceivedRequests("worker-1")
	s.NoError(err)
	s.Len(received, 2)
	for _, r := range received {
		s.Equal("worker-1", r.WorkerID)
	}
}

func (s *RequestTestSuite) TestNotifications() {
	for _, receiver := range []string{"worker", "worker", "requester"} {
		s.NoError(s.store.CreateNotification(&schema.Notification{
			ReceiverID: receiver,
			Message:    "hello",
		}))
	}

	list, err := s.store.ListNotifications("worker", 20)
	s.NoError(err)
	s.Len(list, 2)

	limited, err := s.store.ListNotifications("worker", 1)
	s.NoError(err)
	s.Len(limited, 1)

	s.Equal(ErrNotificationNotExist, s.store.MarkNotificationRead(list[0].ID.String(), "requester"))
	s.NoError(s.store.MarkNotificationRead(list[0].ID.String(), "worker"))

	list, err = s.store.ListNotifications("worker", 20)
	s.NoError(err)
	read := 0
	for _, n := range list {
		if n.IsRead {
			read++
		}
	}
	s.Equal(1, read)
}

func TestRequestTestSuite(t *testing.T) {
	suite.Run(t, new(RequestTestSuite))
}
