package engine

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/models"
)

// In-memory store fakes. Each fake returns canned data or a canned error
// and records what it was asked for, so tests can assert on the queries
// the engine builds without a running database.

type fakeStylers struct {
	styler *models.Styler
	err    error
}

func (f *fakeStylers) FindStyler(ctx context.Context, userID primitive.ObjectID) (*models.Styler, error) {
	return f.styler, f.err
}

type fakeOccasions struct {
	occasion *models.Occasion
	findErr  error
	types    []string
	typesErr error
}

func (f *fakeOccasions) FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.Occasion, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.occasion, nil
}

func (f *fakeOccasions) DistinctTypes(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	return f.types, f.typesErr
}

type fakeInventory struct {
	garments []models.Garment
	findErr  error

	owned    []models.Garment
	ownedErr error

	lastFilter bson.M
	lastLimit  int64

	incremented []primitive.ObjectID
	incErr      error
}

func (f *fakeInventory) Find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.Garment, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	if f.findErr != nil {
		return nil, f.findErr
	}
	if limit > 0 && int64(len(f.garments)) > limit {
		return f.garments[:limit], nil
	}
	return f.garments, nil
}

func (f *fakeInventory) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(f.garments)), nil
}

func (f *fakeInventory) AllOwnedByStyler(ctx context.Context, userID primitive.ObjectID) ([]models.Garment, error) {
	return f.owned, f.ownedErr
}

func (f *fakeInventory) IncrementUsage(ctx context.Context, garmentID primitive.ObjectID) error {
	if f.incErr != nil {
		return f.incErr
	}
	f.incremented = append(f.incremented, garmentID)
	return nil
}

type fakePartners struct {
	partners []models.Partner
	err      error
	lastIDs  []primitive.ObjectID
}

func (f *fakePartners) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Partner, error) {
	f.lastIDs = ids
	return f.partners, f.err
}

type fakeLedgerStore struct {
	events    []models.WearEvent
	insertErr error

	hasEvent    bool
	hasEventErr error

	summary    map[string]Usage
	summaryErr error
}

func (f *fakeLedgerStore) Insert(ctx context.Context, ev models.WearEvent) (models.WearEvent, error) {
	if f.insertErr != nil {
		return ev, f.insertErr
	}
	ev.ID = primitive.NewObjectID()
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeLedgerStore) HasEventOn(ctx context.Context, dressID, userID primitive.ObjectID, day time.Time) (bool, error) {
	return f.hasEvent, f.hasEventErr
}

func (f *fakeLedgerStore) UsageSummary(ctx context.Context, userID primitive.ObjectID) (map[string]Usage, error) {
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	if f.summary == nil {
		return map[string]Usage{}, nil
	}
	return f.summary, nil
}
