package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordUnit is the unit of a personal record value.
type RecordUnit string

// ValidRecordUnits lists the accepted personal record units.
var ValidRecordUnits = []RecordUnit{
	"kg", "lb", "seconds", "minutes", "meters", "kilometers", "miles",
}

// BodyWeight is a recorded body weight with its unit. No unit conversion is
// done server-side; mixed kg/lb entries are stored and returned as-is.
type BodyWeight struct {
	Value *float64   `bson:"value,omitempty" json:"value,omitempty"`
	Unit  WeightUnit `bson:"unit,omitempty" json:"unit,omitempty"`
}

// Measurements holds body measurements in centimeters. All optional.
type Measurements struct {
	Chest  *float64 `bson:"chest,omitempty" json:"chest,omitempty"`
	Waist  *float64 `bson:"waist,omitempty" json:"waist,omitempty"`
	Hips   *float64 `bson:"hips,omitempty" json:"hips,omitempty"`
	Biceps *float64 `bson:"biceps,omitempty" json:"biceps,omitempty"`
	Thighs *float64 `bson:"thighs,omitempty" json:"thighs,omitempty"`
}

// Metrics bundles the measurable values of one progress entry.
type Metrics struct {
	Weight       *BodyWeight   `bson:"weight,omitempty" json:"weight,omitempty"`
	BodyFat      *float64      `bson:"bodyFat,omitempty" json:"bodyFat,omitempty"` // percentage
	Measurements *Measurements `bson:"measurements,omitempty" json:"measurements,omitempty"`
}

// PersonalRecord is a user's best value for an exercise, captured inside a
// progress entry. Date defaults to the entry's date when unset.
type PersonalRecord struct {
	ExerciseID primitive.ObjectID `bson:"exercise" json:"exercise"`
	Value      float64            `bson:"value" json:"value"`
	Unit       RecordUnit         `bson:"unit,omitempty" json:"unit,omitempty"`
	Date       *time.Time         `bson:"date,omitempty" json:"date,omitempty"`
}

// Progress is one dated progress entry for a user.
type Progress struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	Date            time.Time          `bson:"date" json:"date"`
	Metrics         Metrics            `bson:"metrics" json:"metrics"`
	PersonalRecords []PersonalRecord   `bson:"personalRecords,omitempty" json:"personalRecords,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
