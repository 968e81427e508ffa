package api

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stylewise/wardrobe-api/engine"
)

func TestRespondEngineError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		notFoundMsg string
		wantStatus  int
		wantError   string
	}{
		{
			name:       "validation error maps to 400",
			err:        &engine.ValidationError{Field: "color"},
			wantStatus: 400,
			wantError:  "color is required",
		},
		{
			name:        "not found maps to 404 with caller message",
			err:         engine.ErrNotFound,
			notFoundMsg: "Occasion not found",
			wantStatus:  404,
			wantError:   "Occasion not found",
		},
		{
			name:       "upstream error maps to 500",
			err:        &engine.UpstreamError{Op: "query inventory", Err: errors.New("socket closed")},
			wantStatus: 500,
			wantError:  "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			var lb strings.Builder

			respondEngineError(rec, &lb, tt.err, tt.notFoundMsg)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("invalid JSON body: %v", err)
			}
			if !strings.Contains(body["error"], tt.wantError) {
				t.Errorf("error = %q, want it to contain %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestRespondEngineErrorHidesOwnership(t *testing.T) {
	// A missing record and someone else's record produce byte-identical
	// responses, so existence never leaks.
	first := httptest.NewRecorder()
	second := httptest.NewRecorder()
	var lb strings.Builder

	respondEngineError(first, &lb, engine.ErrNotFound, "Occasion not found")
	respondEngineError(second, &lb, engine.ErrNotFound, "Occasion not found")

	if first.Code != second.Code || first.Body.String() != second.Body.String() {
		t.Error("not-found responses must be indistinguishable")
	}
}
