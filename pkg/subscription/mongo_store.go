package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/crmkit/pkg/plan"
)

// mongoUsageFields maps metered features to their counter paths in the
// subscription document. The switch-free map keeps the $inc target and
// the bulk reset in one place.
var mongoUsageFields = map[plan.Feature]string{
	plan.FeatureLeads:       "currentUsage.leadsCount",
	plan.FeatureCompetitors: "currentUsage.competitorsCount",
	plan.FeatureAI:          "currentUsage.aiRequestsThisMonth",
	plan.FeatureScraping:    "currentUsage.scrapingRequestsThisMonth",
}

// mongoSubscription is the persisted document shape. User IDs are stored
// as canonical UUID strings to keep the unique index readable.
type mongoSubscription struct {
	UserID       string      `bson:"userId"`
	Plan         plan.Tier   `bson:"plan"`
	Limits       plan.Limits `bson:"limits"`
	CurrentUsage Usage       `bson:"currentUsage"`
	Status       Status      `bson:"status"`
	StartDate    time.Time   `bson:"startDate"`
	EndDate      *time.Time  `bson:"endDate,omitempty"`
	TrialEndDate *time.Time  `bson:"trialEndDate,omitempty"`
	MonthlyPrice plan.Money  `bson:"monthlyPrice"`
	IsTrialUsed  bool        `bson:"isTrialUsed"`
	CreatedAt    time.Time   `bson:"createdAt"`
	UpdatedAt    time.Time   `bson:"updatedAt"`
}

func toMongoDoc(sub *Subscription) mongoSubscription {
	return mongoSubscription{
		UserID:       sub.UserID.String(),
		Plan:         sub.Plan,
		Limits:       sub.Limits,
		CurrentUsage: sub.CurrentUsage,
		Status:       sub.Status,
		StartDate:    sub.StartDate,
		EndDate:      sub.EndDate,
		TrialEndDate: sub.TrialEndDate,
		MonthlyPrice: sub.MonthlyPrice,
		IsTrialUsed:  sub.IsTrialUsed,
		CreatedAt:    sub.CreatedAt,
		UpdatedAt:    sub.UpdatedAt,
	}
}

func (d mongoSubscription) toSubscription() (*Subscription, error) {
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return &Subscription{
		UserID:       userID,
		Plan:         d.Plan,
		Limits:       d.Limits,
		CurrentUsage: d.CurrentUsage,
		Status:       d.Status,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		TrialEndDate: d.TrialEndDate,
		MonthlyPrice: d.MonthlyPrice,
		IsTrialUsed:  d.IsTrialUsed,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

// mongoStore persists subscriptions in a MongoDB collection, one
// document per user. Counter increments run as $inc updates inside the
// server, which makes them atomic per document by construction.
type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a Store over the given collection and ensures
// the unique userId index that enforces one record per user.
func NewMongoStore(ctx context.Context, coll *mongo.Collection) (Store, error) {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return &mongoStore{coll: coll}, nil
}

func (s *mongoStore) Get(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	var doc mongoSubscription
	err := s.coll.FindOne(ctx, bson.M{"userId": userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return doc.toSubscription()
}

func (s *mongoStore) Create(ctx context.Context, sub *Subscription) error {
	_, err := s.coll.InsertOne(ctx, toMongoDoc(sub))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *mongoStore) Update(ctx context.Context, sub *Subscription) error {
	// Counters move only through IncrementUsage / ResetMonthlyUsage, so
	// the update sets plan fields explicitly instead of replacing the
	// document; a stale in-memory snapshot cannot roll counters back.
	update := bson.M{"$set": bson.M{
		"plan":         sub.Plan,
		"limits":       sub.Limits,
		"status":       sub.Status,
		"startDate":    sub.StartDate,
		"endDate":      sub.EndDate,
		"trialEndDate": sub.TrialEndDate,
		"monthlyPrice": sub.MonthlyPrice,
		"isTrialUsed":  sub.IsTrialUsed,
		"updatedAt":    sub.UpdatedAt,
	}}

	res, err := s.coll.UpdateOne(ctx, bson.M{"userId": sub.UserID.String()}, update)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) IncrementUsage(ctx context.Context, userID uuid.UUID, f plan.Feature, delta int64) (int64, error) {
	field, ok := mongoUsageFields[f]
	if !ok {
		return 0, ErrNotMetered
	}

	// Atomic field increment on the server; concurrent calls for the
	// same user serialize inside MongoDB, so no update is ever lost.
	var doc mongoSubscription
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"userId": userID.String()},
		bson.M{"$inc": bson.M{field: delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotFound
		}
		return 0, errors.Join(ErrStoreUnavailable, err)
	}

	return doc.CurrentUsage.For(f)
}

func (s *mongoStore) ResetMonthlyUsage(ctx context.Context) (int64, error) {
	// Single unconditional bulk update: no per-document read, no race
	// window with in-flight increments on the cumulative counters.
	res, err := s.coll.UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{
		"currentUsage.aiRequestsThisMonth":       int64(0),
		"currentUsage.scrapingRequestsThisMonth": int64(0),
	}})
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return res.MatchedCount, nil
}
