package engine

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/stylewise/wardrobe-api/models"
)

func TestBuildSuggestionFilter(t *testing.T) {
	base := bson.M{
		"visibility": models.VisibilityPublic,
		"owner_kind": models.OwnerKindPartner,
	}

	genderGroup := func(gender string) bson.M {
		return bson.M{"$or": []bson.M{
			{"gender": gender},
			{"gender": "unisex"},
			{"gender": bson.M{"$exists": false}},
		}}
	}
	toneGroup := func(tone string) bson.M {
		return bson.M{"$or": []bson.M{
			{"suitable_skin_tones": tone},
			{"suitable_skin_tones": bson.M{"$size": 0}},
			{"suitable_skin_tones": bson.M{"$exists": false}},
		}}
	}

	tests := []struct {
		name         string
		occasionType string
		gender       string
		skinTone     string
		want         bson.M
	}{
		{
			name: "no attributes known",
			want: base,
		},
		{
			name:         "occasion type only",
			occasionType: "wedding",
			want: bson.M{
				"visibility": models.VisibilityPublic,
				"owner_kind": models.OwnerKindPartner,
				"occasion":   "wedding",
			},
		},
		{
			name:   "gender only uses top level or",
			gender: "female",
			want: bson.M{
				"visibility": models.VisibilityPublic,
				"owner_kind": models.OwnerKindPartner,
				"$or":        genderGroup("female")["$or"],
			},
		},
		{
			name:     "skin tone only uses top level or",
			skinTone: "medium",
			want: bson.M{
				"visibility": models.VisibilityPublic,
				"owner_kind": models.OwnerKindPartner,
				"$or":        toneGroup("medium")["$or"],
			},
		},
		{
			name:         "all attributes combine groups under and",
			occasionType: "wedding",
			gender:       "female",
			skinTone:     "medium",
			want: bson.M{
				"visibility": models.VisibilityPublic,
				"owner_kind": models.OwnerKindPartner,
				"occasion":   "wedding",
				"$and":       []bson.M{genderGroup("female"), toneGroup("medium")},
			},
		},
		{
			name:   "gender other disables gender predicate",
			gender: "other",
			want:   base,
		},
		{
			name:     "free-form tone still matches universal garments",
			skinTone: "olive",
			want: bson.M{
				"visibility": models.VisibilityPublic,
				"owner_kind": models.OwnerKindPartner,
				"$or":        toneGroup("olive")["$or"],
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSuggestionFilter(tt.occasionType, tt.gender, tt.skinTone)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildSuggestionFilter() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBuildSuggestionFilterNeverFiltersOnMissingData(t *testing.T) {
	// An absent attribute must widen the pool, never narrow it.
	got := BuildSuggestionFilter("", "", "")
	for _, key := range []string{"occasion", "gender", "suitable_skin_tones", "$or", "$and"} {
		if _, ok := got[key]; ok {
			t.Errorf("filter contains %q for an empty profile", key)
		}
	}
}

func TestBuildListingFilter(t *testing.T) {
	extras := bson.M{"owner_kind": models.OwnerKindPartner}

	t.Run("no filters returns extras only", func(t *testing.T) {
		got := BuildListingFilter(ListingQuery{}, extras)
		if !reflect.DeepEqual(got, extras) {
			t.Errorf("got %#v, want %#v", got, extras)
		}
	})

	t.Run("empty query and empty extras", func(t *testing.T) {
		got := BuildListingFilter(ListingQuery{}, bson.M{})
		if len(got) != 0 {
			t.Errorf("got %#v, want empty filter", got)
		}
	})

	t.Run("search matches name color and category case-insensitively", func(t *testing.T) {
		got := BuildListingFilter(ListingQuery{Search: "silk"}, nil)
		or, ok := got["$or"].([]bson.M)
		if !ok {
			t.Fatalf("expected $or clause, got %#v", got)
		}
		if len(or) != 3 {
			t.Fatalf("expected 3 search fields, got %d", len(or))
		}
		for _, clause := range or {
			for _, cond := range clause {
				m := cond.(bson.M)
				if m["$regex"] != "silk" || m["$options"] != "i" {
					t.Errorf("bad search clause %#v", clause)
				}
			}
		}
	})

	t.Run("price range", func(t *testing.T) {
		got := BuildListingFilter(ListingQuery{MinPrice: "10", MaxPrice: "99.5"}, nil)
		want := bson.M{"price": bson.M{"$gte": 10.0, "$lte": 99.5}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %#v, want %#v", got, want)
		}
	})

	t.Run("unparseable prices are ignored", func(t *testing.T) {
		got := BuildListingFilter(ListingQuery{MinPrice: "cheap"}, nil)
		if len(got) != 0 {
			t.Errorf("got %#v, want empty filter", got)
		}
	})

	t.Run("multiple filters combine under and", func(t *testing.T) {
		got := BuildListingFilter(ListingQuery{Color: "red", Category: "dress"}, extras)
		and, ok := got["$and"].([]bson.M)
		if !ok {
			t.Fatalf("expected $and clause, got %#v", got)
		}
		if len(and) != 3 {
			t.Errorf("expected extras + 2 filters, got %d clauses", len(and))
		}
	})
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		page  string
		limit string
		want  Pagination
	}{
		{"defaults", "", "", Pagination{Page: 1, Limit: 10}},
		{"explicit values", "3", "25", Pagination{Page: 3, Limit: 25}},
		{"limit clamped to 100", "1", "5000", Pagination{Page: 1, Limit: 100}},
		{"zero page clamps to 1", "0", "10", Pagination{Page: 1, Limit: 10}},
		{"negative values fall back", "-2", "-5", Pagination{Page: 1, Limit: 10}},
		{"garbage falls back", "abc", "xyz", Pagination{Page: 1, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePagination(tt.page, tt.limit); got != tt.want {
				t.Errorf("ParsePagination(%q, %q) = %+v, want %+v", tt.page, tt.limit, got, tt.want)
			}
		})
	}
}

func TestPaginationSkip(t *testing.T) {
	if got := (Pagination{Page: 3, Limit: 20}).Skip(); got != 40 {
		t.Errorf("Skip() = %d, want 40", got)
	}
	if got := (Pagination{Page: 1, Limit: 10}).Skip(); got != 0 {
		t.Errorf("Skip() = %d, want 0", got)
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bson.D
	}{
		{"empty defaults to newest first", "", bson.D{{Key: "created_at", Value: -1}}},
		{"single ascending", "price:asc", bson.D{{Key: "price", Value: 1}}},
		{"single descending", "price:desc", bson.D{{Key: "price", Value: -1}}},
		{"missing direction defaults to descending", "price", bson.D{{Key: "price", Value: -1}}},
		{"multiple fields", "price:asc,created_at:desc", bson.D{
			{Key: "price", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{"blank fields skipped", ":asc,,name:asc", bson.D{{Key: "name", Value: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSort(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSort(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
