// Package lifecycle owns the status of help requests. Every transition is a
// conditional update on the stored status so that concurrent callers could
// not both succeed.
package lifecycle

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/neighbourmatch-api/apperror"
	"github.com/bitmark-inc/neighbourmatch-api/consts"
	"github.com/bitmark-inc/neighbourmatch-api/notification"
	"github.com/bitmark-inc/neighbourmatch-api/realtime"
	"github.com/bitmark-inc/neighbourmatch-api/schema"
	"github.com/bitmark-inc/neighbourmatch-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "lifecycle")
}

var (
	ErrSkillRequired       = apperror.Validation("skill_not_recognized")
	ErrSelfRequest         = apperror.Validation("self_request")
	ErrInvalidDecision     = apperror.Validation("invalid_decision")
	ErrMalformedCode       = apperror.Validation("malformed_code")
	ErrCodeMismatch        = apperror.Validation("code_mismatch")
	ErrNotRequestWorker    = apperror.Authorization("not_request_worker")
	ErrNotRequestRequester = apperror.Authorization("not_request_requester")
	ErrNotParticipant      = apperror.Authorization("not_participant")
	ErrInvalidTransition   = apperror.StateConflict("invalid_transition")
	ErrWorkerBusy          = apperror.StateConflict("worker_busy")
	ErrSessionExpired      = apperror.StateConflict("session_expired")
	ErrRequestNotFound     = apperror.NotFound("request_not_found")
	ErrWorkerNotFound      = apperror.NotFound("worker_not_found")
)

// Store is the record store of requests
type Store interface {
	CreateRequest(req *schema.Request) error
	GetRequest(requestID string) (*schema.Request, error)
	ListReceivedRequests(workerID string) ([]schema.Request, error)
	ListSentRequests(requesterID string) ([]schema.Request, error)
	AcceptRequest(requestID, workerID, sessionCode string) (*schema.Request, error)
	RejectRequest(requestID, workerID string) (*schema.Request, error)
	VerifySession(requestID, requesterID, sessionCode string) (*schema.Request, error)
	CompleteRequest(requestID, actorID string) (*schema.Request, error)
}

// Directory looks up community members
type Directory interface {
	GetUser(userID string) (*schema.User, error)
}

// Notifier delivers events to the other party of a request
type Notifier interface {
	Send(ctx context.Context, out notification.Outgoing) error
	Push(ctx context.Context, channel string, event realtime.Event) error
}

// RequestView is a request as shown to one of its parties
type RequestView struct {
	schema.Request
	SessionCode string                `json:"sessionCode,omitempty"`
	Counterpart *schema.PublicProfile `json:"counterpart"`
}

type Manager struct {
	store     Store
	directory Directory
	notifier  Notifier
	newCode   CodeGenerator
	scope     tally.Scope
}

func New(s Store, directory Directory, notifier Notifier, scope tally.Scope) *Manager {
	return &Manager{
		store:     s,
		directory: directory,
		notifier:  notifier,
		newCode:   RandomCode,
		scope:     scope.SubScope("lifecycle"),
	}
}

// WithCodeGenerator replaces the session code source
func (m *Manager) WithCodeGenerator(g CodeGenerator) *Manager {
	m.newCode = g
	return m
}

// Create opens a pending request from a requester to a chosen worker
func (m *Manager) Create(ctx context.Context, requesterID, workerID, skill, timeWindow string) (*schema.Request, error) {
	canonicalSkill, ok := consts.CanonicalSkill(skill)
	if !ok {
		return nil, ErrSkillRequired
	}

	// known windows are stored canonically, anything else as written
	requestedTime := strings.TrimSpace(timeWindow)
	if canonical, ok := consts.CanonicalTimeWindow(requestedTime); ok {
		requestedTime = canonical
	}

	if requesterID == workerID {
		return nil, ErrSelfRequest
	}

	if _, err := m.directory.GetUser(workerID); err != nil {
		if err == store.ErrUserNotExist {
			return nil, ErrWorkerNotFound
		}
		return nil, apperror.Upstream(err)
	}

	req := &schema.Request{
		RequesterID:   requesterID,
		WorkerID:      workerID,
		RequiredSkill: canonicalSkill,
		RequestedTime: requestedTime,
	}
	if err := m.store.CreateRequest(req); err != nil {
		return nil, apperror.Upstream(err)
	}
	m.transitioned(schema.REQUEST_PENDING)

	m.notify(ctx, notification.Outgoing{
		SenderID:   requesterID,
		ReceiverID: workerID,
		MessageID:  notification.MessageRequestNew,
		Data:       map[string]interface{}{"Skill": req.RequiredSkill, "Time": req.RequestedTime},
		RequestID:  req.ID.String(),
		Kind:       "request_new",
	})

	return req, nil
}

// Respond lets the bound worker accept or reject a pending request
func (m *Manager) Respond(ctx context.Context, actorID, requestID, decision string) (*schema.Request, error) {
	switch {
	case strings.EqualFold(decision, schema.REQUEST_ACCEPTED):
		return m.accept(ctx, actorID, requestID)
	case strings.EqualFold(decision, schema.REQUEST_REJECTED):
		return m.reject(ctx, actorID, requestID)
	case isStatus(decision):
		if _, err := m.load(requestID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	default:
		return nil, ErrInvalidDecision
	}
}

func isStatus(s string) bool {
	switch {
	case strings.EqualFold(s, schema.REQUEST_PENDING),
		strings.EqualFold(s, schema.REQUEST_ACTIVE),
		strings.EqualFold(s, schema.REQUEST_COMPLETED):
		return true
	}
	return false
}

func (m *Manager) accept(ctx context.Context, actorID, requestID string) (*schema.Request, error) {
	req, err := m.load(requestID)
	if err != nil {
		return nil, err
	}

	if req.WorkerID != actorID {
		return nil, ErrNotRequestWorker
	}

	if req.Status != schema.REQUEST_PENDING {
		return nil, ErrInvalidTransition
	}

	code, err := m.newCode()
	if err != nil {
		log.WithError(err).WithField("request_id", requestID).Error("generate session code")
		return nil, apperror.Upstream(err)
	}

	accepted, err := m.store.AcceptRequest(req.ID.String(), actorID, code)
	if err != nil {
		switch err {
		case store.ErrWorkerEngaged:
			m.scope.Counter("worker_busy").Inc(1)
			return nil, ErrWorkerBusy
		case store.ErrRequestConflict:
			return nil, ErrInvalidTransition
		default:
			return nil, apperror.Upstream(err)
		}
	}
	m.transitioned(schema.REQUEST_ACCEPTED)

	requesterName := ""
	if requester, err := m.directory.GetUser(accepted.RequesterID); err == nil {
		requesterName = requester.FullName
	} else {
		log.WithError(err).WithField("user_id", accepted.RequesterID).Warn("look up requester")
	}

	if err := m.notifier.Push(ctx, accepted.WorkerID, realtime.Event{
		Type: realtime.EventSessionCode,
		Payload: map[string]interface{}{
			"requestId":     accepted.ID.String(),
			"otp":           accepted.SessionCode,
			"skill":         accepted.RequiredSkill,
			"requesterName": requesterName,
		},
	}); err != nil {
		log.WithError(err).WithField("request_id", accepted.ID).Warn("push session code")
	}

	m.notify(ctx, notification.Outgoing{
		SenderID:   accepted.WorkerID,
		ReceiverID: accepted.RequesterID,
		MessageID:  notification.MessageRequestAccepted,
		Data:       map[string]interface{}{"Skill": accepted.RequiredSkill},
		RequestID:  accepted.ID.String(),
		Kind:       "request_accepted",
	})

	return accepted, nil
}

func (m *Manager) reject(ctx context.Context, actorID, requestID string) (*schema.Request, error) {
	req, err := m.load(requestID)
	if err != nil {
		return nil, err
	}

	if req.WorkerID != actorID {
		return nil, ErrNotRequestWorker
	}

	if req.Status != schema.REQUEST_PENDING {
		return nil, ErrInvalidTransition
	}

	rejected, err := m.store.RejectRequest(req.ID.String(), actorID)
	if err != nil {
		if err == store.ErrRequestConflict {
			return nil, ErrInvalidTransition
		}
		return nil, apperror.Upstream(err)
	}
	m.transitioned(schema.REQUEST_REJECTED)

	m.notify(ctx, notification.Outgoing{
		SenderID:   rejected.WorkerID,
		ReceiverID: rejected.RequesterID,
		MessageID:  notification.MessageRequestRejected,
		Data:       map[string]interface{}{"Skill": rejected.RequiredSkill},
		RequestID:  rejected.ID.String(),
		Kind:       "request_rejected",
	})

	return rejected, nil
}

// VerifySession activates an accepted request once the requester enters the
// code shown by the worker
func (m *Manager) VerifySession(ctx context.Context, actorID, requestID, code string) (*schema.Request, error) {
	code = strings.TrimSpace(code)
	if !wellFormedCode(code) {
		return nil, ErrMalformedCode
	}

	req, err := m.load(requestID)
	if err != nil {
		return nil, err
	}

	if req.RequesterID != actorID {
		return nil, ErrNotRequestRequester
	}

	if req.Status != schema.REQUEST_ACCEPTED {
		return nil, ErrSessionExpired
	}

	if subtle.ConstantTimeCompare([]byte(req.SessionCode), []byte(code)) != 1 {
		m.scope.Counter("code_mismatch").Inc(1)
		return nil, ErrCodeMismatch
	}

	active, err := m.store.VerifySession(req.ID.String(), actorID, code)
	if err != nil {
		if err == store.ErrRequestConflict {
			return nil, ErrSessionExpired
		}
		return nil, apperror.Upstream(err)
	}
	m.transitioned(schema.REQUEST_ACTIVE)

	m.notify(ctx, notification.Outgoing{
		SenderID:   active.RequesterID,
		ReceiverID: active.WorkerID,
		MessageID:  notification.MessageSessionActive,
		RequestID:  active.ID.String(),
		Kind:       "session_active",
	})

	return active, nil
}

// Complete finishes an accepted or active request on behalf of either party
func (m *Manager) Complete(ctx context.Context, actorID, requestID string) (*schema.Request, error) {
	req, err := m.load(requestID)
	if err != nil {
		return nil, err
	}

	if !req.IsParticipant(actorID) {
		return nil, ErrNotParticipant
	}

	if req.Status != schema.REQUEST_ACCEPTED && req.Status != schema.REQUEST_ACTIVE {
		return nil, ErrInvalidTransition
	}

	completed, err := m.store.CompleteRequest(req.ID.String(), actorID)
	if err != nil {
		if err == store.ErrRequestConflict {
			return nil, ErrInvalidTransition
		}
		return nil, apperror.Upstream(err)
	}
	m.transitioned(schema.REQUEST_COMPLETED)

	m.notify(ctx, notification.Outgoing{
		SenderID:   actorID,
		ReceiverID: completed.CounterpartOf(actorID),
		MessageID:  notification.MessageSessionCompleted,
		Data:       map[string]interface{}{"Skill": completed.RequiredSkill},
		RequestID:  completed.ID.String(),
		Kind:       "session_completed",
	})

	return completed, nil
}

// Received lists the requests addressed to a worker, with the session code
func (m *Manager) Received(ctx context.Context, workerID string) ([]RequestView, error) {
	reqs, err := m.store.ListReceivedRequests(workerID)
	if err != nil {
		return nil, apperror.Upstream(err)
	}
	return m.views(reqs, workerID), nil
}

// Sent lists the requests made by a requester
func (m *Manager) Sent(ctx context.Context, requesterID string) ([]RequestView, error) {
	reqs, err := m.store.ListSentRequests(requesterID)
	if err != nil {
		return nil, apperror.Upstream(err)
	}
	return m.views(reqs, requesterID), nil
}

func (m *Manager) views(reqs []schema.Request, viewerID string) []RequestView {
	profiles := map[string]*schema.PublicProfile{}

	views := make([]RequestView, 0, len(reqs))
	for _, r := range reqs {
		counterpartID := r.CounterpartOf(viewerID)
		profile, looked := profiles[counterpartID]
		if !looked {
			if u, err := m.directory.GetUser(counterpartID); err == nil {
				p := u.PublicProfile()
				profile = &p
			} else if err != store.ErrUserNotExist {
				log.WithError(err).WithField("user_id", counterpartID).Warn("look up counterpart")
			}
			profiles[counterpartID] = profile
		}

		view := RequestView{Request: r, Counterpart: profile}
		if r.WorkerID == viewerID {
			view.SessionCode = r.SessionCode
		}
		views = append(views, view)
	}

	return views
}

func (m *Manager) load(requestID string) (*schema.Request, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, ErrRequestNotFound
	}

	req, err := m.store.GetRequest(requestID)
	if err != nil {
		if err == store.ErrRequestNotExist {
			return nil, ErrRequestNotFound
		}
		return nil, apperror.Upstream(err)
	}

	return req, nil
}

func (m *Manager) notify(ctx context.Context, out notification.Outgoing) {
	if err := m.notifier.Send(ctx, out); err != nil {
		log.WithError(err).
			WithField("request_id", out.RequestID).
			WithField("receiver_id", out.ReceiverID).
			Warn("deliver notification")
	}
}

func (m *Manager) transitioned(status string) {
	m.scope.Tagged(map[string]string{"status": status}).Counter("transition").Inc(1)
}
