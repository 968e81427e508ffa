package engine

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/models"
)

// Occasion-detail suggestion lookups never return more than this many
// candidates; the general listing is paginated instead.
const suggestionCap = 20

// OccasionSummary echoes the occasion a suggestion set was computed for.
type OccasionSummary struct {
	Title string    `json:"title"`
	Type  string    `json:"type"`
	Date  time.Time `json:"date"`
}

// SuggestionResult is the end-to-end suggestion payload.
type SuggestionResult struct {
	Suggestions []Suggestion    `json:"suggestions"`
	Occasion    OccasionSummary `json:"occasion"`
	UserGender  string          `json:"userGender"`
}

// Suggester composes the profile resolver, candidate filter and match
// ranker into the "suggest garments for this occasion" operation.
type Suggester struct {
	occasions OccasionStore
	profiles  *ProfileResolver
	inventory InventoryStore
	partners  PartnerStore
}

func NewSuggester(occasions OccasionStore, profiles *ProfileResolver, inventory InventoryStore, partners PartnerStore) *Suggester {
	return &Suggester{
		occasions: occasions,
		profiles:  profiles,
		inventory: inventory,
		partners:  partners,
	}
}

// SuggestForOccasion looks up the occasion scoped by its owner, resolves
// the styler's profile and returns ranked candidates from partner
// inventory. An occasion-level skin-tone override takes precedence over
// the profile tone.
func (s *Suggester) SuggestForOccasion(ctx context.Context, userID, occasionID primitive.ObjectID) (*SuggestionResult, error) {
	occasion, err := s.occasions.FindOwned(ctx, occasionID, userID)
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		return nil, upstream("load occasion", err)
	}

	profile, err := s.profiles.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	skinTone := occasion.SkinTone
	if skinTone == "" {
		skinTone = profile.SkinTone
	}

	filter := BuildSuggestionFilter(occasion.Type, profile.Gender, skinTone)
	sortOrder := ParseSort("")

	candidates, err := s.inventory.Find(ctx, filter, sortOrder, 0, suggestionCap)
	if err != nil {
		return nil, upstream("query inventory", err)
	}

	partners, err := s.resolvePartners(ctx, candidates)
	if err != nil {
		return nil, upstream("resolve partners", err)
	}

	userGender := profile.Gender
	if userGender == "" {
		userGender = "not set"
	}

	return &SuggestionResult{
		Suggestions: RankCandidates(candidates, occasion.Type, profile.Gender, skinTone, partners),
		Occasion: OccasionSummary{
			Title: occasion.Title,
			Type:  occasion.Type,
			Date:  occasion.Date,
		},
		UserGender: userGender,
	}, nil
}

func (s *Suggester) resolvePartners(ctx context.Context, candidates []models.Garment) (map[string]models.Partner, error) {
	seen := map[string]bool{}
	var ids []primitive.ObjectID
	for _, g := range candidates {
		if g.OwnerID.IsZero() || seen[g.OwnerID.Hex()] {
			continue
		}
		seen[g.OwnerID.Hex()] = true
		ids = append(ids, g.OwnerID)
	}
	if len(ids) == 0 {
		return map[string]models.Partner{}, nil
	}

	partners, err := s.partners.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Partner, len(partners))
	for _, p := range partners {
		byID[p.ID.Hex()] = p
	}
	return byID, nil
}
