package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

var (
	ErrAlertNotExist = fmt.Errorf("the alert does not exist")
	ErrAlertResolved = fmt.Errorf("the alert has been resolved")
)

// AlertStore - persistence of SOS alerts
type AlertStore interface {
	CreateAlert(alert *schema.SOSAlert) error
	GetAlert(alertID string) (*schema.SOSAlert, error)
	ListAlerts(status string, limit int64) ([]schema.SOSAlert, error)
	ResolveAlert(alertID, resolverID string) (*schema.SOSAlert, error)
}

func (m mongoDB) CreateAlert(alert *schema.SOSAlert) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	_, err := m.collection(schema.SOSAlertCollection).InsertOne(ctx, alert)
	return err
}

func (m mongoDB) GetAlert(alertID string) (*schema.SOSAlert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var alert schema.SOSAlert
	if err := m.collection(schema.SOSAlertCollection).FindOne(ctx, bson.M{"_id": alertID}).Decode(&alert); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAlertNotExist
		}
		return nil, err
	}

	return &alert, nil
}

// ListAlerts returns alerts newest first. An empty status lists every alert.
func (m mongoDB) ListAlerts(status string, limit int64) ([]schema.SOSAlert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := bson.M{}
	if status != "" {
		query["status"] = status
	}

	cursor, err := m.collection(schema.SOSAlertCollection).Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}

	alerts := []schema.SOSAlert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, err
	}

	return alerts, nil
}

// ResolveAlert marks an active alert as resolved. A resolved alert is never reopened.
func (m mongoDB) ResolveAlert(alertID, resolverID string) (*schema.SOSAlert, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var alert schema.SOSAlert
	err := m.collection(schema.SOSAlertCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": alertID, "status": schema.ALERT_ACTIVE},
		bson.M{"$set": bson.M{
			"status":      schema.ALERT_RESOLVED,
			"resolved_at": time.Now().UTC(),
			"resolved_by": resolverID,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&alert)
	if err == nil {
		return &alert, nil
	}

	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	if _, err := m.GetAlert(alertID); err != nil {
		return nil, err
	}

	return nil, ErrAlertResolved
}
