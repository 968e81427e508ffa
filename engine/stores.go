package engine

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/models"
)

// StylerStore reads styler profile records.
type StylerStore interface {
	// FindStyler returns (nil, nil) when no styler record exists for the
	// user; a missing record is not an error.
	FindStyler(ctx context.Context, userID primitive.ObjectID) (*models.Styler, error)
}

// OccasionStore reads occasions scoped by their owner.
type OccasionStore interface {
	// FindOwned returns ErrNotFound when the occasion does not exist or
	// belongs to another user.
	FindOwned(ctx context.Context, id, userID primitive.ObjectID) (*models.Occasion, error)
	// DistinctTypes lists the distinct occasion types a user has planned.
	DistinctTypes(ctx context.Context, userID primitive.ObjectID) ([]string, error)
}

// InventoryStore queries the garment collection with a declarative filter.
type InventoryStore interface {
	Find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.Garment, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	// AllOwnedByStyler returns every styler-owned garment of the user,
	// regardless of pagination.
	AllOwnedByStyler(ctx context.Context, userID primitive.ObjectID) ([]models.Garment, error)
	// IncrementUsage bumps the garment's usage counter with the store's
	// atomic increment primitive.
	IncrementUsage(ctx context.Context, garmentID primitive.ObjectID) error
}

// PartnerStore resolves partner contact details for ranked suggestions.
type PartnerStore interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Partner, error)
}

// Usage summarizes a single garment's wear history.
type Usage struct {
	Count    int
	LastWorn time.Time
}

// LedgerStore persists and aggregates wear events.
type LedgerStore interface {
	Insert(ctx context.Context, ev models.WearEvent) (models.WearEvent, error)
	// HasEventOn reports whether an event exists for the garment on the
	// given calendar day (UTC).
	HasEventOn(ctx context.Context, dressID, userID primitive.ObjectID, day time.Time) (bool, error)
	// UsageSummary groups the user's events by garment, returning wear
	// count and the maximum worn-at timestamp per garment hex ID.
	UsageSummary(ctx context.Context, userID primitive.ObjectID) (map[string]Usage, error)
}
