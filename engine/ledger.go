package engine

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/models"
)

// DedupPolicy controls whether a garment can be recorded as worn more than
// once on the same calendar day.
type DedupPolicy string

const (
	// DedupAllow records every wear action, duplicates included.
	DedupAllow DedupPolicy = "allow"
	// DedupDaily refuses a second event per garment per UTC day.
	DedupDaily DedupPolicy = "daily"
)

// Ledger is the append-only wear history. Events are never updated or
// deleted; the ledger is the authoritative record the health scorer reads.
type Ledger struct {
	store     LedgerStore
	inventory InventoryStore
	policy    DedupPolicy
	now       func() time.Time
}

func NewLedger(store LedgerStore, inventory InventoryStore, policy DedupPolicy) *Ledger {
	if policy != DedupDaily {
		policy = DedupAllow
	}
	return &Ledger{store: store, inventory: inventory, policy: policy, now: time.Now}
}

// Record appends one immutable wear event. when defaults to now. The
// garment's stored usage counter is bumped afterwards with an atomic
// increment; the counter is advisory and the ledger stays authoritative,
// so a crash between the two writes is an accepted inconsistency.
func (l *Ledger) Record(ctx context.Context, dressID, userID primitive.ObjectID, color, category string, when time.Time) (*models.WearEvent, error) {
	if dressID.IsZero() {
		return nil, &ValidationError{Field: "dressId"}
	}
	if userID.IsZero() {
		return nil, &ValidationError{Field: "userId"}
	}
	if color == "" {
		return nil, &ValidationError{Field: "color"}
	}
	if category == "" {
		return nil, &ValidationError{Field: "category"}
	}
	if when.IsZero() {
		when = l.now()
	}

	if l.policy == DedupDaily {
		day := when.UTC().Truncate(24 * time.Hour)
		exists, err := l.store.HasEventOn(ctx, dressID, userID, day)
		if err != nil {
			return nil, upstream("check wear event", err)
		}
		if exists {
			return nil, &ValidationError{Field: "date", Reason: "already recorded for this garment today"}
		}
	}

	ev := models.WearEvent{
		DressID:  dressID,
		UserID:   userID,
		WornAt:   when,
		Color:    color,
		Category: category,
	}
	saved, err := l.store.Insert(ctx, ev)
	if err != nil {
		return nil, upstream("record wear", err)
	}

	if err := l.inventory.IncrementUsage(ctx, dressID); err != nil {
		return nil, upstream("increment usage count", err)
	}

	return &saved, nil
}

// UsageSummary returns per-garment wear count and last-worn timestamp for
// the user, computed in a single group aggregation.
func (l *Ledger) UsageSummary(ctx context.Context, userID primitive.ObjectID) (map[string]Usage, error) {
	summary, err := l.store.UsageSummary(ctx, userID)
	if err != nil {
		return nil, upstream("usage summary", err)
	}
	return summary, nil
}
