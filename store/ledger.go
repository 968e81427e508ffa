package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/engine"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// WearLedger is the Mongo-backed append-only wear history.
type WearLedger struct {
	coll *mongo.Collection
}

func NewWearLedger() *WearLedger {
	return &WearLedger{coll: utils.GetCollection(config.DatabaseName, "wear_history")}
}

func (s *WearLedger) Insert(ctx context.Context, ev models.WearEvent) (models.WearEvent, error) {
	res, err := s.coll.InsertOne(ctx, ev)
	if err != nil {
		return ev, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		ev.ID = id
	}
	return ev, nil
}

func (s *WearLedger) HasEventOn(ctx context.Context, dressID, userID primitive.ObjectID, day time.Time) (bool, error) {
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	count, err := s.coll.CountDocuments(ctx, bson.M{
		"dress_id": dressID,
		"user_id":  userID,
		"worn_at":  bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UsageSummary groups the user's events by garment in a single pipeline,
// returning wear count and the maximum worn-at per garment.
func (s *WearLedger) UsageSummary(ctx context.Context, userID primitive.ObjectID) (map[string]engine.Usage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$dress_id",
			"count":     bson.M{"$sum": 1},
			"last_worn": bson.M{"$max": "$worn_at"},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		DressID  primitive.ObjectID `bson:"_id"`
		Count    int                `bson:"count"`
		LastWorn time.Time          `bson:"last_worn"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	summary := make(map[string]engine.Usage, len(rows))
	for _, row := range rows {
		summary[row.DressID.Hex()] = engine.Usage{Count: row.Count, LastWorn: row.LastWorn}
	}
	return summary, nil
}
