package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Partner holds the vendor details of a partner account. It shares its ID
// with the owning User record.
type Partner struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	IsApproved bool               `bson:"is_approved" json:"is_approved"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
