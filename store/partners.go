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

// Partners reads and writes partner vendor records.
type Partners struct {
	coll *mongo.Collection
}

func NewPartners() *Partners {
	return &Partners{coll: utils.GetCollection(config.DatabaseName, "partners")}
}

func (s *Partners) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Partner, error) {
	if len(ids) == 0 {
		return []models.Partner{}, nil
	}
	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var partners []models.Partner
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

func (s *Partners) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Partner, error) {
	var p models.Partner
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Partners) List(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Partner, int64, error) {
	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var partners []models.Partner
	if err := cursor.All(ctx, &partners); err != nil {
		return nil, 0, err
	}
	return partners, total, nil
}

func (s *Partners) Insert(ctx context.Context, p models.Partner) error {
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s *Partners) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Partner, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Partner
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Partners) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
