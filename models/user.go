package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles.
const (
	RoleStyler  = "styler"
	RolePartner = "partner"
	RoleAdmin   = "admin"
)

// User represents a registered account. Role-specific detail lives in the
// Styler or Partner record sharing the same ID.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"` // bcrypt hash, never returned in JSON
	Role         string             `bson:"role" json:"role"`
	IsApproved   bool               `bson:"is_approved" json:"is_approved"`
	LoginCount   int                `bson:"login_count" json:"login_count"`
	LoginHistory []time.Time        `bson:"login_history,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
