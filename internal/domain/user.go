package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeightUnit is the unit a user records body weight in.
type WeightUnit string

// HeightUnit is the unit a user records height in.
type HeightUnit string

const (
	WeightUnitKg WeightUnit = "kg"
	WeightUnitLb WeightUnit = "lb"

	HeightUnitCm HeightUnit = "cm"
	HeightUnitFt HeightUnit = "ft"
)

// Preferences holds per-user display settings.
type Preferences struct {
	WeightUnit WeightUnit `bson:"weightUnit" json:"weightUnit"`
	HeightUnit HeightUnit `bson:"heightUnit" json:"heightUnit"`
	DarkMode   bool       `bson:"darkMode" json:"darkMode"`
}

// DefaultPreferences returns the preferences assigned to new accounts.
func DefaultPreferences() Preferences {
	return Preferences{
		WeightUnit: WeightUnitKg,
		HeightUnit: HeightUnitCm,
	}
}

// User represents an account. A user owns their workouts, progress entries
// and any custom exercises they create.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // Unique
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	GoogleID     string             `bson:"googleId,omitempty" json:"-"` // Set for accounts created via Google OAuth
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Preferences  Preferences        `bson:"preferences" json:"preferences"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
