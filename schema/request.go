package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

const (
	REQUEST_PENDING   = "Pending"
	REQUEST_ACCEPTED  = "Accepted"
	REQUEST_REJECTED  = "Rejected"
	REQUEST_ACTIVE    = "Active"
	REQUEST_COMPLETED = "Completed"
)

// EngagedStates are the states in which a worker is considered busy
var EngagedStates = []string{REQUEST_ACCEPTED, REQUEST_ACTIVE}

type Request struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RequesterID     string    `json:"requesterId" gorm:"not null;index"`
	WorkerID        string    `json:"workerId" gorm:"not null;index"`
	RequiredSkill   string    `json:"requiredSkill" gorm:"not null"`
	RequestedTime   string    `json:"requestedTime"`
	Status          string    `json:"status" gorm:"not null;index" sql:"default:'Pending'"`
	SessionCode     string    `json:"-" gorm:"size:6"`
	SessionVerified bool      `json:"sessionVerified" gorm:"not null" sql:"default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Request) TableName() string {
	return "requests"
}

// BeforeCreate assigns the primary key before insertion
func (r *Request) BeforeCreate(scope *gorm.Scope) error {
	if r.ID == uuid.Nil {
		return scope.SetColumn("ID", uuid.New())
	}
	return nil
}

// IsParticipant tells whether the given user is the requester or the worker
func (r Request) IsParticipant(userID string) bool {
	return userID != "" && (r.RequesterID == userID || r.WorkerID == userID)
}

// CounterpartOf returns the other party of the request
func (r Request) CounterpartOf(userID string) string {
	if r.WorkerID == userID {
		return r.RequesterID
	}
	return r.WorkerID
}
