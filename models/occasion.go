package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Occasion is a planned event a styler needs an outfit for. Type is
// free-form but conventionally one of the garment occasion tags.
type Occasion struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Title       string               `bson:"title" json:"title"`
	Type        string               `bson:"type" json:"type"`
	Date        time.Time            `bson:"date" json:"date"`
	Location    string               `bson:"location,omitempty" json:"location,omitempty"`
	DressCode   string               `bson:"dress_code,omitempty" json:"dress_code,omitempty"`
	Notes       string               `bson:"notes,omitempty" json:"notes,omitempty"`
	SkinTone    string               `bson:"skin_tone,omitempty" json:"skin_tone,omitempty"`
	ClothesList []primitive.ObjectID `bson:"clothes_list" json:"clothes_list"`
	CreatedAt   time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at" json:"updated_at"`
}
