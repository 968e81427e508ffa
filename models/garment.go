package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owner kinds. A garment belongs to exactly one inventory: a styler's
// private wardrobe or a partner's public listing.
const (
	OwnerKindStyler  = "styler"
	OwnerKindPartner = "partner"
)

// Visibility values for a garment.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// GarmentCategories is the closed set of accepted apparel types.
var GarmentCategories = []string{
	"dress", "shirt", "pants", "jacket", "skirt", "top", "shorts",
	"suit", "blazer", "sweater", "coat", "tshirt", "frock",
	"saree", "kurta", "lehenga",
}

// OccasionTags is the closed set of occasion labels a garment can carry.
var OccasionTags = []string{
	"casual", "formal", "business", "party", "wedding", "sports", "beach",
}

// SkinTones is the closed set of tones a garment can declare suitable.
// An empty suitable_skin_tones set means the garment fits every tone.
var SkinTones = []string{"fair", "light", "medium", "tan", "deep", "dark"}

// Garment represents a clothing item. Styler-owned and partner-owned
// garments live in one collection, discriminated by OwnerKind.
type Garment struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Image             string             `bson:"image,omitempty" json:"image,omitempty"`
	Color             string             `bson:"color" json:"color"`
	Category          string             `bson:"category" json:"category"`
	Brand             string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Size              string             `bson:"size,omitempty" json:"size,omitempty"`
	Occasion          []string           `bson:"occasion" json:"occasion"`
	SuitableSkinTones []string           `bson:"suitable_skin_tones,omitempty" json:"suitable_skin_tones,omitempty"`
	Gender            string             `bson:"gender,omitempty" json:"gender,omitempty"` // male, female, unisex
	Price             float64            `bson:"price" json:"price"`
	Stock             int                `bson:"stock" json:"stock"`
	UsageCount        int                `bson:"usage_count" json:"usage_count"`
	OwnerKind         string             `bson:"owner_kind" json:"owner_kind"`
	OwnerID           primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Visibility        string             `bson:"visibility" json:"visibility"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate checks the invariants that must hold before a garment is stored.
func (g *Garment) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("name is required")
	}
	if g.Color == "" {
		return fmt.Errorf("color is required")
	}
	if g.Category == "" {
		return fmt.Errorf("category is required")
	}
	if !contains(GarmentCategories, g.Category) {
		return fmt.Errorf("category %q is not a recognized apparel type", g.Category)
	}
	if len(g.Occasion) < 1 || len(g.Occasion) > 4 {
		return fmt.Errorf("please select between 1 and 4 occasions")
	}
	for _, o := range g.Occasion {
		if !contains(OccasionTags, o) {
			return fmt.Errorf("occasion %q is not a recognized occasion tag", o)
		}
	}
	for _, tone := range g.SuitableSkinTones {
		if !contains(SkinTones, tone) {
			return fmt.Errorf("skin tone %q is not a recognized tone", tone)
		}
	}
	switch g.Gender {
	case "", "male", "female", "unisex":
	default:
		return fmt.Errorf("gender must be one of: male, female, unisex")
	}
	if g.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	switch g.Visibility {
	case VisibilityPublic, VisibilityPrivate:
	default:
		return fmt.Errorf("visibility must be public or private")
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
