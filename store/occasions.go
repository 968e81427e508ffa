package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/engine"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// Occasions is the Mongo-backed occasion store. Every lookup is scoped by
// the owning user.
type Occasions struct {
	coll *mongo.Collection
}

func NewOccasions() *Occasions {
	return &Occasions{coll: utils.GetCollection(config.DatabaseName, "occasions")}
}

// FindOwned maps a missing document to engine.ErrNotFound, whether the
// occasion does not exist or belongs to someone else.
func (s *Occasions) FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.Occasion, error) {
	var occ models.Occasion
	err := s.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&occ)
	if err == mongo.ErrNoDocuments {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &occ, nil
}

func (s *Occasions) DistinctTypes(ctx context.Context, userID primitive.ObjectID) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "type", bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, len(values))
	for _, v := range values {
		if t, ok := v.(string); ok {
			types = append(types, t)
		}
	}
	return types, nil
}

func (s *Occasions) AllOwned(ctx context.Context, userID primitive.ObjectID) ([]models.Occasion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var occasions []models.Occasion
	if err := cursor.All(ctx, &occasions); err != nil {
		return nil, err
	}
	return occasions, nil
}

func (s *Occasions) Insert(ctx context.Context, occ models.Occasion) (models.Occasion, error) {
	res, err := s.coll.InsertOne(ctx, occ)
	if err != nil {
		return occ, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		occ.ID = id
	}
	return occ, nil
}

// UpdateOwned applies the set to an occasion only if the user owns it.
func (s *Occasions) UpdateOwned(ctx context.Context, id, userID primitive.ObjectID, set bson.M) (*models.Occasion, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var occ models.Occasion
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set}, opts).Decode(&occ)
	if err == mongo.ErrNoDocuments {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &occ, nil
}

func (s *Occasions) DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return engine.ErrNotFound
	}
	return nil
}
