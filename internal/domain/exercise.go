package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory classifies an exercise. Set requirements on workouts
// depend on it (see Workout).
type ExerciseCategory string

const (
	CategoryStrength    ExerciseCategory = "strength"
	CategoryCardio      ExerciseCategory = "cardio"
	CategoryFlexibility ExerciseCategory = "flexibility"
	CategoryBalance     ExerciseCategory = "balance"
	CategorySport       ExerciseCategory = "sport"
	CategoryOther       ExerciseCategory = "other"
)

// ValidCategories lists the accepted exercise categories.
var ValidCategories = []ExerciseCategory{
	CategoryStrength, CategoryCardio, CategoryFlexibility,
	CategoryBalance, CategorySport, CategoryOther,
}

// MuscleGroup tags the muscles an exercise targets.
type MuscleGroup string

// ValidMuscleGroups lists the accepted muscle group tags.
var ValidMuscleGroups = []MuscleGroup{
	"chest", "back", "shoulders", "biceps", "triceps", "forearms",
	"quadriceps", "hamstrings", "calves", "glutes", "core", "fullBody",
	"none",
}

// Equipment describes what an exercise needs.
type Equipment string

// ValidEquipment lists the accepted equipment values.
var ValidEquipment = []Equipment{
	"none", "barbell", "dumbbell", "kettlebell", "machine",
	"cables", "bands", "bodyweight", "other",
}

// Difficulty grades an exercise.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ValidDifficulties lists the accepted difficulty levels.
var ValidDifficulties = []Difficulty{
	DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced,
}

// Exercise is a single exercise definition. Public exercises
// (IsCustom == false) are shared reference data readable by everyone and
// immutable by everyone; custom exercises belong to the user who created
// them and only that user may change or delete them.
type Exercise struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name            string              `bson:"name" json:"name"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	Category        ExerciseCategory    `bson:"category" json:"category"`
	MuscleGroups    []MuscleGroup       `bson:"muscleGroups,omitempty" json:"muscleGroups,omitempty"`
	EquipmentNeeded Equipment           `bson:"equipmentNeeded" json:"equipmentNeeded"`
	DifficultyLevel Difficulty          `bson:"difficultyLevel" json:"difficultyLevel"`
	Instructions    string              `bson:"instructions,omitempty" json:"instructions,omitempty"`
	ImageURL        string              `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	VideoURL        string              `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	ImageKey        string              `bson:"imageKey,omitempty" json:"-"` // S3 object key for uploaded image media
	VideoKey        string              `bson:"videoKey,omitempty" json:"-"` // S3 object key for uploaded video media
	IsCustom        bool                `bson:"isCustom" json:"isCustom"`
	UserID          *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"` // Owner; nil for public exercises
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// OwnedBy reports whether the exercise is a custom exercise owned by userID.
func (e *Exercise) OwnedBy(userID primitive.ObjectID) bool {
	return e.IsCustom && e.UserID != nil && *e.UserID == userID
}
