package models

import (
	"testing"
	"time"
)

func TestStylerAgeAt(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		dob  time.Time
		now  time.Time
		want int
	}{
		{"unset date of birth", time.Time{}, date(2025, 6, 15), -1},
		{"birthday already passed", date(1995, 3, 10), date(2025, 6, 15), 30},
		{"birthday not yet reached", date(1995, 9, 10), date(2025, 6, 15), 29},
		{"birthday today", date(2000, 6, 15), date(2025, 6, 15), 25},
		{"day before birthday", date(2000, 6, 16), date(2025, 6, 15), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Styler{DateOfBirth: tt.dob}
			if got := s.AgeAt(tt.now); got != tt.want {
				t.Errorf("AgeAt() = %d, want %d", got, tt.want)
			}
		})
	}
}
