package store

import (
	"fmt"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

var (
	ErrNotificationNotExist = fmt.Errorf("the notification does not exist")
)

func (s *NeighbourStore) CreateNotification(n *schema.Notification) error {
	return s.ormDB.Create(n).Error
}

// ListNotifications returns the latest notifications of a receiver
func (s *NeighbourStore) ListNotifications(receiverID string, limit int) ([]schema.Notification, error) {
	notifications := []schema.Notification{}
	if err := s.ormDB.Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flips the read flag of a notification owned by the receiver
func (s *NeighbourStore) MarkNotificationRead(notificationID, receiverID string) error {
	result := s.ormDB.Model(&schema.Notification{}).
		Where("id = ? AND receiver_id = ?", notificationID, receiverID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotificationNotExist
	}

	return nil
}
