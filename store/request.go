package store

import (
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

var (
	ErrRequestNotExist = fmt.Errorf("the request does not exist")
	ErrRequestConflict = fmt.Errorf("the request is not in a state that allows this change")
	ErrWorkerEngaged   = fmt.Errorf("the worker is already engaged in another session")
)

// engagedElsewhere guards an accept against a worker that already holds an
// accepted or active request
const engagedElsewhere = `NOT EXISTS (
	SELECT 1 FROM requests engaged
	WHERE engaged.worker_id = ? AND engaged.status IN (?) AND engaged.id <> requests.id)`

// CreateRequest inserts a pending request
func (s *NeighbourStore) CreateRequest(req *schema.Request) error {
	req.Status = schema.REQUEST_PENDING
	req.SessionCode = ""
	req.SessionVerified = false
	return s.ormDB.Create(req).Error
}

func (s *NeighbourStore) GetRequest(requestID string) (*schema.Request, error) {
	var req schema.Request

	if err := s.ormDB.Where("id = ?", requestID).First(&req).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrRequestNotExist
		}
		return nil, err
	}

	return &req, nil
}

// ListReceivedRequests returns the requests addressed to a worker, newest first
func (s *NeighbourStore) ListReceivedRequests(workerID string) ([]schema.Request, error) {
	reqs := []schema.Request{}
	if err := s.ormDB.Where("worker_id = ?", workerID).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListSentRequests returns the requests made by a requester, newest first
func (s *NeighbourStore) ListSentRequests(requesterID string) ([]schema.Request, error) {
	reqs := []schema.Request{}
	if err := s.ormDB.Where("requester_id = ?", requesterID).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// BusyWorkerIDs returns the workers bound to an accepted or active request
func (s *NeighbourStore) BusyWorkerIDs() ([]string, error) {
	var ids []string
	if err := s.ormDB.Model(&schema.Request{}).
		Where("status IN (?)", schema.EngagedStates).
		Pluck("DISTINCT worker_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// AcceptRequest sets a request to `Accepted` and stores its session code. A
// request could be accepted only by its worker, only when its status is
// `Pending`, and only when the worker is not engaged in another session.
func (s *NeighbourStore) AcceptRequest(requestID, workerID, sessionCode string) (*schema.Request, error) {
	result := s.ormDB.Model(&schema.Request{}).
		Where("id = ? AND worker_id = ? AND status = ?", requestID, workerID, schema.REQUEST_PENDING).
		Where(engagedElsewhere, workerID, schema.EngagedStates).
		Updates(map[string]interface{}{
			"status":       schema.REQUEST_ACCEPTED,
			"session_code": sessionCode,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, ErrWorkerEngaged
		}
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		engaged, err := s.isWorkerEngaged(requestID, workerID)
		if err != nil {
			return nil, err
		}
		if engaged {
			return nil, ErrWorkerEngaged
		}
		return nil, ErrRequestConflict
	}

	return s.GetRequest(requestID)
}

// RejectRequest sets a pending request to `Rejected`
func (s *NeighbourStore) RejectRequest(requestID, workerID string) (*schema.Request, error) {
	result := s.ormDB.Model(&schema.Request{}).
		Where("id = ? AND worker_id = ? AND status = ?", requestID, workerID, schema.REQUEST_PENDING).
		Updates(map[string]interface{}{
			"status": schema.REQUEST_REJECTED,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrRequestConflict
	}

	return s.GetRequest(requestID)
}

// VerifySession activates an accepted request when the requester presents
// the matching session code. The check and the write are one statement so
// that only one of concurrent submissions could succeed.
func (s *NeighbourStore) VerifySession(requestID, requesterID, sessionCode string) (*schema.Request, error) {
	result := s.ormDB.Model(&schema.Request{}).
		Where("id = ? AND requester_id = ? AND status = ? AND session_code = ?",
			requestID, requesterID, schema.REQUEST_ACCEPTED, sessionCode).
		Updates(map[string]interface{}{
			"status":           schema.REQUEST_ACTIVE,
			"session_verified": true,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrRequestConflict
	}

	return s.GetRequest(requestID)
}

// CompleteRequest finishes an accepted or active request on behalf of either party
func (s *NeighbourStore) CompleteRequest(requestID, actorID string) (*schema.Request, error) {
	result := s.ormDB.Model(&schema.Request{}).
		Where("id = ? AND (requester_id = ? OR worker_id = ?) AND status IN (?)",
			requestID, actorID, actorID, schema.EngagedStates).
		Updates(map[string]interface{}{
			"status": schema.REQUEST_COMPLETED,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, ErrRequestConflict
	}

	return s.GetRequest(requestID)
}

func (s *NeighbourStore) isWorkerEngaged(requestID, workerID string) (bool, error) {
	var count int
	if err := s.ormDB.Model(&schema.Request{}).
		Where("worker_id = ? AND status IN (?) AND id <> ?", workerID, schema.EngagedStates, requestID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
