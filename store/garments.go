package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// Garments is the Mongo-backed garment inventory.
type Garments struct {
	coll *mongo.Collection
}

func NewGarments() *Garments {
	return &Garments{coll: utils.GetCollection(config.DatabaseName, "garments")}
}

func (s *Garments) Find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.Garment, error) {
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var garments []models.Garment
	if err := cursor.All(ctx, &garments); err != nil {
		return nil, err
	}
	return garments, nil
}

func (s *Garments) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.coll.CountDocuments(ctx, filter)
}

func (s *Garments) AllOwnedByStyler(ctx context.Context, userID primitive.ObjectID) ([]models.Garment, error) {
	cursor, err := s.coll.Find(ctx, bson.M{
		"owner_id":   userID,
		"owner_kind": models.OwnerKindStyler,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var garments []models.Garment
	if err := cursor.All(ctx, &garments); err != nil {
		return nil, err
	}
	return garments, nil
}

// IncrementUsage relies on the store's atomic $inc, so concurrent wear
// recordings never lose updates.
func (s *Garments) IncrementUsage(ctx context.Context, garmentID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": garmentID},
		bson.M{"$inc": bson.M{"usage_count": 1}})
	return err
}

func (s *Garments) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Garment, error) {
	var g models.Garment
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Garments) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Garment, error) {
	if len(ids) == 0 {
		return []models.Garment{}, nil
	}
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var garments []models.Garment
	if err := cursor.All(ctx, &garments); err != nil {
		return nil, err
	}
	return garments, nil
}

func (s *Garments) Insert(ctx context.Context, g models.Garment) (models.Garment, error) {
	res, err := s.coll.InsertOne(ctx, g)
	if err != nil {
		return g, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = id
	}
	return g, nil
}

func (s *Garments) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Garment, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var g models.Garment
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Garments) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
