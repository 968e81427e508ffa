package engine

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLedgerRecordValidation(t *testing.T) {
	dressID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	tests := []struct {
		name      string
		dressID   primitive.ObjectID
		userID    primitive.ObjectID
		color     string
		category  string
		wantField string
	}{
		{"missing dress", primitive.NilObjectID, userID, "red", "dress", "dressId"},
		{"missing user", dressID, primitive.NilObjectID, "red", "dress", "userId"},
		{"missing color", dressID, userID, "", "dress", "color"},
		{"missing category", dressID, userID, "red", "", "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeLedgerStore{}
			ledger := NewLedger(store, &fakeInventory{}, DedupAllow)

			_, err := ledger.Record(t.Context(), tt.dressID, tt.userID, tt.color, tt.category, time.Time{})

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", vErr.Field, tt.wantField)
			}
			if len(store.events) != 0 {
				t.Error("validation failure must not write an event")
			}
		})
	}
}

func TestLedgerRecordDefaultsWornAtToNow(t *testing.T) {
	store := &fakeLedgerStore{}
	inventory := &fakeInventory{}
	ledger := NewLedger(store, inventory, DedupAllow)

	fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ledger.now = func() time.Time { return fixed }

	dressID := primitive.NewObjectID()
	ev, err := ledger.Record(t.Context(), dressID, primitive.NewObjectID(), "red", "dress", time.Time{})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !ev.WornAt.Equal(fixed) {
		t.Errorf("WornAt = %v, want %v", ev.WornAt, fixed)
	}
	if len(inventory.incremented) != 1 || inventory.incremented[0] != dressID {
		t.Errorf("usage counter not incremented for %s", dressID.Hex())
	}
}

func TestLedgerRecordKeepsExplicitTimestamp(t *testing.T) {
	store := &fakeLedgerStore{}
	ledger := NewLedger(store, &fakeInventory{}, DedupAllow)

	when := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ev, err := ledger.Record(t.Context(), primitive.NewObjectID(), primitive.NewObjectID(), "red", "dress", when)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !ev.WornAt.Equal(when) {
		t.Errorf("WornAt = %v, want %v", ev.WornAt, when)
	}
}

func TestLedgerDedupPolicies(t *testing.T) {
	t.Run("allow records duplicates on the same day", func(t *testing.T) {
		store := &fakeLedgerStore{hasEvent: true}
		ledger := NewLedger(store, &fakeInventory{}, DedupAllow)

		_, err := ledger.Record(t.Context(), primitive.NewObjectID(), primitive.NewObjectID(), "red", "dress", time.Time{})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if len(store.events) != 1 {
			t.Errorf("expected 1 event, got %d", len(store.events))
		}
	})

	t.Run("daily refuses a second event per garment per day", func(t *testing.T) {
		store := &fakeLedgerStore{hasEvent: true}
		ledger := NewLedger(store, &fakeInventory{}, DedupDaily)

		_, err := ledger.Record(t.Context(), primitive.NewObjectID(), primitive.NewObjectID(), "red", "dress", time.Time{})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if vErr.Field != "date" {
			t.Errorf("field = %q, want date", vErr.Field)
		}
		if len(store.events) != 0 {
			t.Error("refused event must not be written")
		}
	})

	t.Run("daily allows the first event of the day", func(t *testing.T) {
		store := &fakeLedgerStore{hasEvent: false}
		ledger := NewLedger(store, &fakeInventory{}, DedupDaily)

		_, err := ledger.Record(t.Context(), primitive.NewObjectID(), primitive.NewObjectID(), "red", "dress", time.Time{})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if len(store.events) != 1 {
			t.Errorf("expected 1 event, got %d", len(store.events))
		}
	})
}

func TestNewLedgerCoercesUnknownPolicy(t *testing.T) {
	store := &fakeLedgerStore{hasEvent: true}
	ledger := NewLedger(store, &fakeInventory{}, DedupPolicy("weekly"))

	// Unknown policies behave like allow, so the duplicate goes through.
	_, err := ledger.Record(t.Context(), primitive.NewObjectID(), primitive.NewObjectID(), "red", "dress", time.Time{})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
}

func TestLedgerRecordUpstreamFailures(t *testing.T) {
	t.Run("insert failure", func(t *testing.T) {
		store := &fakeLedgerStore{insertErr: errors.New("write refused")}
		ledger := NewLedger(store, &fakeInventory{}, DedupAllow)

		_, err := ledger.Record(t.Context(), primitive.NewObjectID(), primitive.NewObjectID(), "red", "dress", time.Time{})

		var uErr *UpstreamError
		if !errors.As(err, &uErr) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
	})

	t.Run("increment failure after insert", func(t *testing.T) {
		store := &fakeLedgerStore{}
		inventory := &fakeInventory{incErr: errors.New("write refused")}
		ledger := NewLedger(store, inventory, DedupAllow)

		_, err := ledger.Record(t.Context(), primitive.NewObjectID(), primitive.NewObjectID(), "red", "dress", time.Time{})

		var uErr *UpstreamError
		if !errors.As(err, &uErr) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
		// The event itself is already committed; the counter is advisory.
		if len(store.events) != 1 {
			t.Errorf("expected the event to remain recorded, got %d", len(store.events))
		}
	})
}
