package engine

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/stylewise/wardrobe-api/models"
)

// GenderOther is the sentinel profile value that disables gender matching.
const GenderOther = "other"

// BuildSuggestionFilter builds the declarative query that selects public,
// partner-owned garments for a styler. Each predicate is included only when
// the corresponding attribute is known; absence of user data widens the
// candidate pool instead of narrowing it to nothing.
func BuildSuggestionFilter(occasionType, gender, skinTone string) bson.M {
	filter := bson.M{
		"visibility": models.VisibilityPublic,
		"owner_kind": models.OwnerKindPartner,
	}

	if occasionType != "" {
		filter["occasion"] = occasionType
	}

	var groups []bson.M

	if gender != "" && gender != GenderOther {
		groups = append(groups, bson.M{"$or": []bson.M{
			{"gender": gender},
			{"gender": "unisex"},
			{"gender": bson.M{"$exists": false}},
		}})
	}

	if skinTone != "" {
		// An empty or absent suitable-tones set means the garment fits
		// every tone, including free-form values outside the enumeration.
		groups = append(groups, bson.M{"$or": []bson.M{
			{"suitable_skin_tones": skinTone},
			{"suitable_skin_tones": bson.M{"$size": 0}},
			{"suitable_skin_tones": bson.M{"$exists": false}},
		}})
	}

	switch len(groups) {
	case 0:
	case 1:
		filter["$or"] = groups[0]["$or"]
	default:
		filter["$and"] = groups
	}

	return filter
}

// ListingQuery carries the optional filters of a garment listing request.
type ListingQuery struct {
	Search   string
	Color    string
	Category string
	MinPrice string
	MaxPrice string
}

// BuildListingFilter combines the listing filters with fixed extras
// (ownership or visibility constraints supplied by the caller).
func BuildListingFilter(q ListingQuery, extras bson.M) bson.M {
	var filters []bson.M
	if len(extras) > 0 {
		filters = append(filters, extras)
	}

	if s := strings.TrimSpace(q.Search); s != "" {
		filters = append(filters, bson.M{"$or": []bson.M{
			{"name": bson.M{"$regex": s, "$options": "i"}},
			{"color": bson.M{"$regex": s, "$options": "i"}},
			{"category": bson.M{"$regex": s, "$options": "i"}},
		}})
	}
	if c := strings.TrimSpace(q.Color); c != "" {
		filters = append(filters, bson.M{"color": bson.M{"$regex": c, "$options": "i"}})
	}
	if c := strings.TrimSpace(q.Category); c != "" {
		filters = append(filters, bson.M{"category": bson.M{"$regex": c, "$options": "i"}})
	}

	if q.MinPrice != "" || q.MaxPrice != "" {
		price := bson.M{}
		if v, err := strconv.ParseFloat(q.MinPrice, 64); err == nil {
			price["$gte"] = v
		}
		if v, err := strconv.ParseFloat(q.MaxPrice, 64); err == nil {
			price["$lte"] = v
		}
		if len(price) > 0 {
			filters = append(filters, bson.M{"price": price})
		}
	}

	switch len(filters) {
	case 0:
		return bson.M{}
	case 1:
		return filters[0]
	default:
		return bson.M{"$and": filters}
	}
}

// Pagination is a clamped page/limit pair.
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination clamps page to >= 1 and limit to [1,100].
func ParsePagination(pageStr, limitStr string) Pagination {
	page := 1
	if p, err := strconv.Atoi(pageStr); err == nil && p > 1 {
		page = p
	}
	limit := 10
	if l, err := strconv.Atoi(limitStr); err == nil && l >= 1 {
		limit = l
	}
	if limit > 100 {
		limit = 100
	}
	return Pagination{Page: page, Limit: limit}
}

// Skip returns the number of documents to skip for the page.
func (p Pagination) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// ParseSort parses a "field:dir,field:dir" sort string. An empty string
// yields the newest-first default.
func ParseSort(sortStr string) bson.D {
	if sortStr == "" {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	var sort bson.D
	for _, part := range strings.Split(sortStr, ",") {
		field, dir, _ := strings.Cut(part, ":")
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		value := -1
		if strings.TrimSpace(dir) == "asc" {
			value = 1
		}
		sort = append(sort, bson.E{Key: field, Value: value})
	}
	if len(sort) == 0 {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	return sort
}
