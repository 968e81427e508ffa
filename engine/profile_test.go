package engine

import (
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stylewise/wardrobe-api/models"
)

func TestResolveFullProfile(t *testing.T) {
	stylers := &fakeStylers{styler: &models.Styler{Gender: "female", SkinTone: "tan"}}
	occasions := &fakeOccasions{types: []string{"wedding", "party"}}
	r := NewProfileResolver(stylers, occasions)

	got, err := r.Resolve(t.Context(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := Profile{Gender: "female", SkinTone: "tan", OccasionTypes: []string{"wedding", "party"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestResolveMissingStylerRecord(t *testing.T) {
	// A user without a styler record resolves to an empty profile, not an
	// error; the suggestion pool just stays wide.
	r := NewProfileResolver(&fakeStylers{}, &fakeOccasions{})

	got, err := r.Resolve(t.Context(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Gender != "" || got.SkinTone != "" {
		t.Errorf("Resolve() = %+v, want empty attributes", got)
	}
}

func TestResolveUpstreamErrors(t *testing.T) {
	t.Run("styler store failure", func(t *testing.T) {
		r := NewProfileResolver(&fakeStylers{err: errors.New("timeout")}, &fakeOccasions{})

		_, err := r.Resolve(t.Context(), primitive.NewObjectID())
		var uErr *UpstreamError
		if !errors.As(err, &uErr) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
	})

	t.Run("occasion store failure", func(t *testing.T) {
		r := NewProfileResolver(&fakeStylers{}, &fakeOccasions{typesErr: errors.New("timeout")})

		_, err := r.Resolve(t.Context(), primitive.NewObjectID())
		var uErr *UpstreamError
		if !errors.As(err, &uErr) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
	})
}
