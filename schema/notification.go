package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

type Notification struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId" gorm:"not null;index"`
	Message    string    `json:"message" gorm:"not null"`
	IsRead     bool      `json:"isRead" gorm:"not null" sql:"default:false"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(scope *gorm.Scope) error {
	if n.ID == uuid.Nil {
		return scope.SetColumn("ID", uuid.New())
	}
	return nil
}
