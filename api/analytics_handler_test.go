package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/models"
)

func TestGroupInventoryByPartner(t *testing.T) {
	first := models.Partner{ID: primitive.NewObjectID(), Name: "Verve Boutique"}
	second := models.Partner{ID: primitive.NewObjectID(), Name: "Thread & Co"}
	foreign := primitive.NewObjectID()

	garments := []models.Garment{
		{ID: primitive.NewObjectID(), Name: "Silk Dress", OwnerID: first.ID},
		{ID: primitive.NewObjectID(), Name: "Linen Shirt", OwnerID: first.ID},
		{ID: primitive.NewObjectID(), Name: "Orphaned Coat", OwnerID: foreign},
	}

	rows := groupInventoryByPartner([]models.Partner{first, second}, garments)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Verve Boutique" || rows[1].Name != "Thread & Co" {
		t.Errorf("partner order not preserved: %q, %q", rows[0].Name, rows[1].Name)
	}
	if rows[0].GarmentCount != 2 || len(rows[0].Garments) != 2 {
		t.Errorf("first partner should carry 2 garments, got %d", len(rows[0].Garments))
	}
	if rows[0].Garments[0].Name != "Silk Dress" {
		t.Errorf("garment order not preserved: %q", rows[0].Garments[0].Name)
	}
	// A partner without listings still appears, with an empty slice.
	if rows[1].Garments == nil || len(rows[1].Garments) != 0 {
		t.Errorf("partner without garments should have an empty slice, got %#v", rows[1].Garments)
	}
	for _, row := range rows {
		for _, g := range row.Garments {
			if g.OwnerID == foreign {
				t.Error("garment with unknown owner must be dropped")
			}
		}
	}
}

func TestGroupInventoryByPartnerEmpty(t *testing.T) {
	rows := groupInventoryByPartner(nil, nil)
	if rows == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestRegistrationTrend(t *testing.T) {
	now := time.Date(2025, 6, 29, 12, 0, 0, 0, time.UTC)

	var windows [][2]time.Time
	counts := []int64{3, 1, 4, 1}
	trend, err := registrationTrend(context.Background(), now, func(ctx context.Context, start, end time.Time) (int64, error) {
		windows = append(windows, [2]time.Time{start, end})
		return counts[len(windows)-1], nil
	})
	if err != nil {
		t.Fatalf("registrationTrend() error = %v", err)
	}

	if len(trend) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(trend))
	}
	// Oldest week first, each window exactly seven days, contiguous.
	if trend[0].Week != "2025-06-01" || trend[3].Week != "2025-06-22" {
		t.Errorf("bucket weeks = %q .. %q", trend[0].Week, trend[3].Week)
	}
	for i, w := range windows {
		if !w[1].Equal(w[0].AddDate(0, 0, 7)) {
			t.Errorf("window %d is not seven days: %v .. %v", i, w[0], w[1])
		}
		if i > 0 && !w[0].Equal(windows[i-1][1]) {
			t.Errorf("window %d does not start where %d ended", i, i-1)
		}
	}
	for i, bucket := range trend {
		if bucket.Count != counts[i] {
			t.Errorf("bucket %d count = %d, want %d", i, bucket.Count, counts[i])
		}
	}
}

func TestRegistrationTrendPropagatesCountFailure(t *testing.T) {
	boom := errors.New("socket closed")
	calls := 0
	_, err := registrationTrend(context.Background(), time.Now(), func(ctx context.Context, start, end time.Time) (int64, error) {
		calls++
		if calls == 2 {
			return 0, boom
		}
		return 5, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the count error to propagate, got %v", err)
	}
	if calls != 2 {
		t.Errorf("counting should stop at the first failure, made %d calls", calls)
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{"exact multiple", 100, 10, 10},
		{"partial last page", 101, 10, 11},
		{"fewer items than one page", 3, 10, 1},
		{"empty", 0, 10, 0},
		{"limit one", 7, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageCount(tt.total, tt.limit); got != tt.want {
				t.Errorf("pageCount(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}
