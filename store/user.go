package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/neighbourmatch-api/schema"
)

var (
	ErrUserNotExist = fmt.Errorf("the user does not exist")
)

// UserDirectory - read access to the community directory and write access
// to the profile fields owned by the user
type UserDirectory interface {
	GetUser(userID string) (*schema.User, error)
	FindUsersBySkill(skill, excludeUserID string) ([]schema.User, error)
	UpdateUserProfile(userID string, update ProfileUpdate) (*schema.User, error)
}

// ProfileUpdate carries the profile fields a user may change. Nil fields are kept.
type ProfileUpdate struct {
	FullName      *string
	PhoneNumber   *string
	ApartmentName *string
	Block         *string
	FlatNumber    *string
	SkillsOffered []string
	Availability  []string
	Location      *schema.Location
}

func (u ProfileUpdate) fields() bson.M {
	set := bson.M{}
	if u.FullName != nil {
		set["full_name"] = *u.FullName
	}
	if u.PhoneNumber != nil {
		set["phone_number"] = *u.PhoneNumber
	}
	if u.ApartmentName != nil {
		set["apartment_name"] = *u.ApartmentName
	}
	if u.Block != nil {
		set["block"] = *u.Block
	}
	if u.FlatNumber != nil {
		set["flat_number"] = *u.FlatNumber
	}
	if u.SkillsOffered != nil {
		set["skills_offered"] = u.SkillsOffered
	}
	if u.Availability != nil {
		set["availability"] = u.Availability
	}
	if u.Location != nil {
		set["location"] = u.Location
	}
	return set
}

func (m mongoDB) GetUser(userID string) (*schema.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var u schema.User
	if err := m.collection(schema.UserCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotExist
		}
		return nil, err
	}

	return &u, nil
}

// FindUsersBySkill returns the users offering a skill, compared case-insensitively
func (m mongoDB) FindUsersBySkill(skill, excludeUserID string) ([]schema.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	query := bson.M{
		"_id":            bson.M{"$ne": excludeUserID},
		"skills_offered": skill,
	}

	cursor, err := m.collection(schema.UserCollection).Find(ctx, query,
		options.Find().SetCollation(&options.Collation{Locale: "en", Strength: 2}))
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).WithError(err).Error("find users by skill")
		return nil, err
	}

	users := []schema.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (m mongoDB) UpdateUserProfile(userID string, update ProfileUpdate) (*schema.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	set := update.fields()
	if len(set) == 0 {
		return m.GetUser(userID)
	}

	var u schema.User
	if err := m.collection(schema.UserCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotExist
		}
		return nil, err
	}

	return &u, nil
}
