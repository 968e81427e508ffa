package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Styler holds the profile details of a styler account. It shares its ID
// with the owning User record.
type Styler struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Bio         string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Gender      string             `bson:"gender,omitempty" json:"gender,omitempty"` // male, female, other
	DateOfBirth time.Time          `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	Country     string             `bson:"country,omitempty" json:"country,omitempty"`
	SkinTone    string             `bson:"skin_tone,omitempty" json:"skin_tone,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Age derives the styler's age from the date of birth, or -1 when unset.
func (s *Styler) Age() int {
	return s.AgeAt(time.Now())
}

// AgeAt returns the styler's age on the given date, or -1 when the date
// of birth is unset.
func (s *Styler) AgeAt(now time.Time) int {
	if s.DateOfBirth.IsZero() {
		return -1
	}
	age := now.Year() - s.DateOfBirth.Year()
	if now.YearDay() < s.DateOfBirth.YearDay() {
		age--
	}
	return age
}
