package store

import (
	"github.com/jinzhu/gorm"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

//go:generate mockgen -destination=../api/mocks/neighbour_core.go -package=mocks github.com/bitmark-inc/neighbourmatch-api/store NeighbourCore

// NeighbourCore is the relational datastore of requests and notifications
type NeighbourCore interface {
	Ping() error

	// Request
	CreateRequest(req *schema.Request) error
	GetRequest(requestID string) (*schema.Request, error)
	ListReceivedRequests(workerID string) ([]schema.Request, error)
	ListSentRequests(requesterID string) ([]schema.Request, error)
	BusyWorkerIDs() ([]string, error)
	AcceptRequest(requestID, workerID, sessionCode string) (*schema.Request, error)
	RejectRequest(requestID, workerID string) (*schema.Request, error)
	VerifySession(requestID, requesterID, sessionCode string) (*schema.Request, error)
	CompleteRequest(requestID, actorID string) (*schema.Request, error)

	// Notification
	CreateNotification(n *schema.Notification) error
	ListNotifications(receiverID string, limit int) ([]schema.Notification, error)
	MarkNotificationRead(notificationID, receiverID string) error
}

// NeighbourStore is an implementation of NeighbourCore
type NeighbourStore struct {
	ormDB *gorm.DB
}

func NewNeighbourStore(ormDB *gorm.DB) *NeighbourStore {
	return &NeighbourStore{
		ormDB: ormDB,
	}
}

// Ping is to check the storage health status
func (s *NeighbourStore) Ping() error {
	return s.ormDB.DB().Ping()
}

// Migrate creates the tables and the index that keeps a worker in at most
// one engaged request
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&schema.Request{},
		&schema.Notification{},
	).Error; err != nil {
		return err
	}

	return db.Model(&schema.Request{}).
		Where("status IN ('Accepted', 'Active')").
		AddUniqueIndex("request_worker_engaged_unique", "worker_id").Error
}
