package engine

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/models"
)

func newTestScorer(inventory *fakeInventory, store *fakeLedgerStore, now time.Time) *HealthScorer {
	ledger := NewLedger(store, inventory, DedupAllow)
	scorer := NewHealthScorer(inventory, ledger)
	scorer.now = func() time.Time { return now }
	return scorer
}

func wardrobeOf(n int, color, category string) []models.Garment {
	clothes := make([]models.Garment, n)
	for i := range clothes {
		clothes[i] = models.Garment{
			ID:       primitive.NewObjectID(),
			Color:    color,
			Category: category,
		}
	}
	return clothes
}

func TestClosetHealthEmptyWardrobe(t *testing.T) {
	scorer := newTestScorer(&fakeInventory{}, &fakeLedgerStore{}, time.Now())

	got, err := scorer.ClosetHealth(t.Context(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ClosetHealth() error = %v", err)
	}
	if got.Score != 0 {
		t.Errorf("score = %d, want 0", got.Score)
	}
	want := []string{"Start adding clothes to your wardrobe!"}
	if !reflect.DeepEqual(got.Suggestions, want) {
		t.Errorf("suggestions = %v, want %v", got.Suggestions, want)
	}
	if got.Stats.Colors == nil || got.Stats.Categories == nil {
		t.Error("frequency tables must be empty slices, not nil")
	}
}

func TestClosetHealthPerfectWardrobe(t *testing.T) {
	now := time.Now()
	clothes := []models.Garment{
		{ID: primitive.NewObjectID(), Color: "red", Category: "dress"},
		{ID: primitive.NewObjectID(), Color: "blue", Category: "shirt"},
		{ID: primitive.NewObjectID(), Color: "green", Category: "pants"},
	}
	summary := map[string]Usage{}
	for _, g := range clothes {
		summary[g.ID.Hex()] = Usage{Count: 2, LastWorn: now.Add(-24 * time.Hour)}
	}

	scorer := newTestScorer(&fakeInventory{owned: clothes}, &fakeLedgerStore{summary: summary}, now)

	got, err := scorer.ClosetHealth(t.Context(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ClosetHealth() error = %v", err)
	}
	if got.Score != 100 {
		t.Errorf("score = %d, want 100", got.Score)
	}
	if len(got.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want none", got.Suggestions)
	}
	if got.Stats.Worn != 3 || got.Stats.Unused != 0 {
		t.Errorf("stats = %+v", got.Stats)
	}
}

func TestClosetHealthUnusedWindow(t *testing.T) {
	now := time.Now()
	recent := models.Garment{ID: primitive.NewObjectID(), Color: "red", Category: "dress"}
	stale := models.Garment{ID: primitive.NewObjectID(), Color: "blue", Category: "shirt"}
	never := models.Garment{ID: primitive.NewObjectID(), Color: "green", Category: "pants"}

	summary := map[string]Usage{
		recent.ID.Hex(): {Count: 1, LastWorn: now.Add(-29 * 24 * time.Hour)},
		stale.ID.Hex():  {Count: 5, LastWorn: now.Add(-31 * 24 * time.Hour)},
	}

	scorer := newTestScorer(
		&fakeInventory{owned: []models.Garment{recent, stale, never}},
		&fakeLedgerStore{summary: summary}, now)

	got, err := scorer.ClosetHealth(t.Context(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ClosetHealth() error = %v", err)
	}

	// 29 days ago counts as worn, 31 days ago and never-worn do not.
	if got.Stats.Worn != 1 {
		t.Errorf("worn = %d, want 1", got.Stats.Worn)
	}
	if got.Stats.Unused != 2 {
		t.Errorf("unused = %d, want 2", got.Stats.Unused)
	}
}

func TestClosetHealthDeductions(t *testing.T) {
	now := time.Now()
	wornRecently := Usage{Count: 1, LastWorn: now.Add(-24 * time.Hour)}

	tests := []struct {
		name            string
		clothes         []models.Garment
		summary         map[string]Usage
		wantScore       int
		wantSuggestions []string
	}{
		{
			name: "majority unused costs 20",
			clothes: []models.Garment{
				{ID: primitive.NewObjectID(), Color: "red", Category: "dress"},
				{ID: primitive.NewObjectID(), Color: "blue", Category: "shirt"},
				{ID: primitive.NewObjectID(), Color: "green", Category: "pants"},
			},
			summary:   map[string]Usage{},
			wantScore: 80,
			wantSuggestions: []string{
				"You have 3 unused items. Try wearing them more often.",
			},
		},
		{
			name:    "uniform large wardrobe stacks every diversity deduction",
			clothes: wardrobeOf(10, "black", "tshirt"),
			summary: nil,
			// 100 - 20 (all unused) - 15 (few colors) - 10 (dominant color)
			// - 10 (few categories) = 45
			wantScore: 45,
			wantSuggestions: []string{
				"You have 10 unused items. Try wearing them more often.",
				"Your wardrobe lacks color variety. Try adding more colorful items.",
				"You have a lot of black clothes. Add some variety!",
				"Try diversifying your wardrobe with different types of clothes.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := newTestScorer(
				&fakeInventory{owned: tt.clothes},
				&fakeLedgerStore{summary: tt.summary}, now)

			got, err := scorer.ClosetHealth(t.Context(), primitive.NewObjectID())
			if err != nil {
				t.Fatalf("ClosetHealth() error = %v", err)
			}
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if !reflect.DeepEqual(got.Suggestions, tt.wantSuggestions) {
				t.Errorf("suggestions = %v, want %v", got.Suggestions, tt.wantSuggestions)
			}
		})
	}

	// Keep the first case honest: a 3-item wardrobe skips the small-set
	// diversity deductions even when all items share a color.
	t.Run("small wardrobe skips diversity deductions", func(t *testing.T) {
		clothes := wardrobeOf(3, "black", "tshirt")
		summary := map[string]Usage{}
		for _, g := range clothes {
			summary[g.ID.Hex()] = wornRecently
		}
		scorer := newTestScorer(&fakeInventory{owned: clothes}, &fakeLedgerStore{summary: summary}, now)

		got, err := scorer.ClosetHealth(t.Context(), primitive.NewObjectID())
		if err != nil {
			t.Fatalf("ClosetHealth() error = %v", err)
		}
		if got.Score != 100 {
			t.Errorf("score = %d, want 100", got.Score)
		}
	})
}

func TestClosetHealthMajorityUnusedDiverseWardrobe(t *testing.T) {
	now := time.Now()
	colors := []string{"red", "blue", "green", "white", "black"}
	categories := []string{"dress", "shirt", "pants", "top", "skirt"}

	clothes := make([]models.Garment, 10)
	for i := range clothes {
		clothes[i] = models.Garment{
			ID:       primitive.NewObjectID(),
			Color:    colors[i%len(colors)],
			Category: categories[i%len(categories)],
		}
	}
	// 6 of 10 unused: only the majority-unused deduction applies, the
	// wardrobe is otherwise diverse.
	summary := map[string]Usage{}
	for _, g := range clothes[:4] {
		summary[g.ID.Hex()] = Usage{Count: 1, LastWorn: now.Add(-time.Hour)}
	}

	scorer := newTestScorer(&fakeInventory{owned: clothes}, &fakeLedgerStore{summary: summary}, now)

	got, err := scorer.ClosetHealth(t.Context(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ClosetHealth() error = %v", err)
	}
	if got.Score != 80 {
		t.Errorf("score = %d, want 80", got.Score)
	}
	want := []string{"You have 6 unused items. Try wearing them more often."}
	if !reflect.DeepEqual(got.Suggestions, want) {
		t.Errorf("suggestions = %v, want %v", got.Suggestions, want)
	}
}

func TestClosetHealthModerateUnusedShare(t *testing.T) {
	now := time.Now()
	clothes := []models.Garment{
		{ID: primitive.NewObjectID(), Color: "red", Category: "dress"},
		{ID: primitive.NewObjectID(), Color: "blue", Category: "shirt"},
		{ID: primitive.NewObjectID(), Color: "green", Category: "pants"},
		{ID: primitive.NewObjectID(), Color: "white", Category: "top"},
	}
	// 1 of 4 unused: 25% sits in the (20, 50] band, costing 10.
	summary := map[string]Usage{}
	for _, g := range clothes[:3] {
		summary[g.ID.Hex()] = Usage{Count: 1, LastWorn: now.Add(-time.Hour)}
	}

	scorer := newTestScorer(&fakeInventory{owned: clothes}, &fakeLedgerStore{summary: summary}, now)

	got, err := scorer.ClosetHealth(t.Context(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ClosetHealth() error = %v", err)
	}
	if got.Score != 90 {
		t.Errorf("score = %d, want 90", got.Score)
	}
	want := []string{"Consider donating or wearing your unused clothes."}
	if !reflect.DeepEqual(got.Suggestions, want) {
		t.Errorf("suggestions = %v, want %v", got.Suggestions, want)
	}
}

func TestFrequencyTableDeterministic(t *testing.T) {
	counts := map[string]int{"red": 2, "blue": 2, "green": 5}
	want := []FreqEntry{
		{Name: "green", Value: 5},
		{Name: "blue", Value: 2},
		{Name: "red", Value: 2},
	}

	for i := 0; i < 10; i++ {
		if got := frequencyTable(counts); !reflect.DeepEqual(got, want) {
			t.Fatalf("frequencyTable() = %v, want %v", got, want)
		}
	}
}
