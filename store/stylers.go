package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/models"
	"github.com/stylewise/wardrobe-api/utils"
)

// Stylers reads and writes styler profile records.
type Stylers struct {
	coll *mongo.Collection
}

func NewStylers() *Stylers {
	return &Stylers{coll: utils.GetCollection(config.DatabaseName, "stylers")}
}

// FindStyler returns (nil, nil) when the user has no styler record; the
// profile resolver treats that as undefined gender and skin tone.
func (s *Stylers) FindStyler(ctx context.Context, userID primitive.ObjectID) (*models.Styler, error) {
	var styler models.Styler
	err := s.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&styler)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &styler, nil
}

func (s *Stylers) Insert(ctx context.Context, styler models.Styler) error {
	_, err := s.coll.InsertOne(ctx, styler)
	return err
}
