package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const unusedWindow = 30 * 24 * time.Hour

// FreqEntry is one row of a color or category frequency table.
type FreqEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// HealthStats summarizes the wardrobe behind a health score.
type HealthStats struct {
	Total      int         `json:"total"`
	Worn       int         `json:"worn"`
	Unused     int         `json:"unused"`
	Colors     []FreqEntry `json:"colors"`
	Categories []FreqEntry `json:"categories"`
}

// HealthReport is the closet-health payload returned to the client.
type HealthReport struct {
	Score       int         `json:"score"`
	Stats       HealthStats `json:"stats"`
	Suggestions []string    `json:"suggestions"`
}

// HealthScorer rates a styler's wardrobe on usage and diversity. Wear
// counts and last-worn timestamps come from the ledger, so the score can
// never drift from the authoritative history even if the stored usage
// counter does.
type HealthScorer struct {
	inventory InventoryStore
	ledger    *Ledger
	now       func() time.Time
}

func NewHealthScorer(inventory InventoryStore, ledger *Ledger) *HealthScorer {
	return &HealthScorer{inventory: inventory, ledger: ledger, now: time.Now}
}

// ClosetHealth computes the 0-100 score and improvement suggestions for
// the user's full garment set, regardless of pagination.
func (h *HealthScorer) ClosetHealth(ctx context.Context, userID primitive.ObjectID) (*HealthReport, error) {
	clothes, err := h.inventory.AllOwnedByStyler(ctx, userID)
	if err != nil {
		return nil, upstream("load wardrobe", err)
	}

	total := len(clothes)
	if total == 0 {
		return &HealthReport{
			Score: 0,
			Stats: HealthStats{
				Colors:     []FreqEntry{},
				Categories: []FreqEntry{},
			},
			Suggestions: []string{"Start adding clothes to your wardrobe!"},
		}, nil
	}

	usage, err := h.ledger.UsageSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	cutoff := h.now().Add(-unusedWindow)

	unused := 0
	colorCounts := map[string]int{}
	categoryCounts := map[string]int{}

	for _, item := range clothes {
		colorCounts[strings.ToLower(item.Color)]++
		categoryCounts[strings.ToLower(item.Category)]++

		u, worn := usage[item.ID.Hex()]
		if !worn || u.Count == 0 || u.LastWorn.Before(cutoff) {
			unused++
		}
	}

	score := 100
	var suggestions []string

	unusedPct := float64(unused) / float64(total) * 100
	if unusedPct > 50 {
		score -= 20
		suggestions = append(suggestions, fmt.Sprintf("You have %d unused items. Try wearing them more often.", unused))
	} else if unusedPct > 20 {
		score -= 10
		suggestions = append(suggestions, "Consider donating or wearing your unused clothes.")
	}

	colors := frequencyTable(colorCounts)
	categories := frequencyTable(categoryCounts)

	if len(colors) < 3 && total > 5 {
		score -= 15
		suggestions = append(suggestions, "Your wardrobe lacks color variety. Try adding more colorful items.")
	}

	topColor := colors[0]
	if float64(topColor.Value)/float64(total) > 0.4 && total > 5 {
		score -= 10
		suggestions = append(suggestions, fmt.Sprintf("You have a lot of %s clothes. Add some variety!", topColor.Name))
	}

	if len(categories) < 3 && total > 5 {
		score -= 10
		suggestions = append(suggestions, "Try diversifying your wardrobe with different types of clothes.")
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if suggestions == nil {
		suggestions = []string{}
	}

	return &HealthReport{
		Score: score,
		Stats: HealthStats{
			Total:      total,
			Worn:       total - unused,
			Unused:     unused,
			Colors:     colors,
			Categories: categories,
		},
		Suggestions: suggestions,
	}, nil
}

// frequencyTable converts counts to entries sorted by count descending,
// name ascending on ties so the output is deterministic.
func frequencyTable(counts map[string]int) []FreqEntry {
	entries := make([]FreqEntry, 0, len(counts))
	for name, value := range counts {
		entries = append(entries, FreqEntry{Name: name, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
