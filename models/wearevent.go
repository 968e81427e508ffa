package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WearEvent is an immutable record that a garment was worn. Color and
// category are snapshots taken at the time of wear, not re-derived later.
type WearEvent struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DressID  primitive.ObjectID `bson:"dress_id" json:"dress_id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	WornAt   time.Time          `bson:"worn_at" json:"worn_at"`
	Color    string             `bson:"color" json:"color"`
	Category string             `bson:"category" json:"category"`
}
