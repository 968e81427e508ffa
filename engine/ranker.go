package engine

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/models"
)

const reasonSeparator = " • "

// PartnerContact is the vendor summary attached to each suggestion.
type PartnerContact struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Location string             `json:"location"`
	Phone    string             `json:"phone"`
	Email    string             `json:"email"`
}

// Suggestion is a ranked candidate garment with a human-readable match
// reason and the resolved partner contact.
type Suggestion struct {
	ID          primitive.ObjectID `json:"_id"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Color       string             `json:"color"`
	Image       string             `json:"image,omitempty"`
	Gender      string             `json:"gender,omitempty"`
	Price       float64            `json:"price"`
	Brand       string             `json:"brand,omitempty"`
	MatchReason string             `json:"matchReason"`
	Partner     *PartnerContact    `json:"partner"`
}

// MatchReason explains why a garment matched. Reasons are composed in a
// fixed order and joined with a separator. Because predicates are omitted
// when the corresponding attribute is unknown, a candidate can appear with
// no positive reason at all; those are labeled "Recommended for you".
func MatchReason(g models.Garment, occasionType, gender, skinTone string) string {
	var parts []string

	if occasionType != "" && contains(g.Occasion, occasionType) {
		parts = append(parts, fmt.Sprintf("Perfect for %s", occasionType))
	}
	if gender != "" && gender != GenderOther && g.Gender == gender {
		parts = append(parts, fmt.Sprintf("Fits %s", gender))
	}
	if skinTone != "" && contains(g.SuitableSkinTones, skinTone) {
		parts = append(parts, fmt.Sprintf("Suits %s skin tone", skinTone))
	}

	if len(parts) == 0 {
		return "Recommended for you"
	}
	return strings.Join(parts, reasonSeparator)
}

// RankCandidates labels every candidate and resolves its partner contact.
// Order of the input is preserved; the store already returns candidates in
// the requested sort order.
func RankCandidates(candidates []models.Garment, occasionType, gender, skinTone string, partners map[string]models.Partner) []Suggestion {
	suggestions := make([]Suggestion, 0, len(candidates))
	for _, g := range candidates {
		s := Suggestion{
			ID:          g.ID,
			Name:        g.Name,
			Category:    g.Category,
			Color:       g.Color,
			Image:       g.Image,
			Gender:      g.Gender,
			Price:       g.Price,
			Brand:       g.Brand,
			MatchReason: MatchReason(g, occasionType, gender, skinTone),
		}
		if p, ok := partners[g.OwnerID.Hex()]; ok {
			s.Partner = contactFor(p)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func contactFor(p models.Partner) *PartnerContact {
	contact := &PartnerContact{
		ID:       p.ID,
		Name:     p.Name,
		Location: p.Location,
		Phone:    p.Phone,
		Email:    p.Email,
	}
	if contact.Location == "" {
		contact.Location = "Location not specified"
	}
	if contact.Phone == "" {
		contact.Phone = "N/A"
	}
	return contact
}
