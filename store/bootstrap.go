package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylewise/wardrobe-api/config"
	"github.com/stylewise/wardrobe-api/utils"
)

const firstAdminSlot = "first_admin"

// Bootstrap holds one-time setup state, currently only the first-admin
// slot.
type Bootstrap struct {
	coll *mongo.Collection
}

func NewBootstrap() *Bootstrap {
	return &Bootstrap{coll: utils.GetCollection(config.DatabaseName, "bootstrap")}
}

// ClaimFirstAdmin atomically claims the first-admin slot for the given
// user. The upsert on a fixed _id ensures exactly one registrant wins,
// even when two admin registrations race.
func (s *Bootstrap) ClaimFirstAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": firstAdminSlot},
		bson.M{"$setOnInsert": bson.M{
			"claimed_by": userID,
			"claimed_at": time.Now(),
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount == 1, nil
}
