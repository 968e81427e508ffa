package engine

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds the derived attributes used to narrow suggestions. It is
// recomputed on every request and never cached; staleness here would
// silently bias recommendations.
type Profile struct {
	Gender        string
	SkinTone      string
	OccasionTypes []string
}

// ProfileResolver computes a user's profile from the styler record and the
// user's planned occasions.
type ProfileResolver struct {
	stylers   StylerStore
	occasions OccasionStore
}

func NewProfileResolver(stylers StylerStore, occasions OccasionStore) *ProfileResolver {
	return &ProfileResolver{stylers: stylers, occasions: occasions}
}

// Resolve is read-only and side-effect-free. A user without a styler
// record yields an empty gender and skin tone, not an error.
func (r *ProfileResolver) Resolve(ctx context.Context, userID primitive.ObjectID) (Profile, error) {
	var p Profile

	styler, err := r.stylers.FindStyler(ctx, userID)
	if err != nil {
		return p, upstream("resolve styler profile", err)
	}
	if styler != nil {
		p.Gender = styler.Gender
		p.SkinTone = styler.SkinTone
	}

	types, err := r.occasions.DistinctTypes(ctx, userID)
	if err != nil {
		return p, upstream("resolve occasion types", err)
	}
	p.OccasionTypes = types

	return p, nil
}
