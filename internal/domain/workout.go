package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recurrence describes how a scheduled workout repeats.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// ValidRecurrences lists the accepted recurrence values.
var ValidRecurrences = []Recurrence{
	RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly,
}

// Set is a single set of an exercise within a workout. Which fields are
// required depends on the category of the referenced exercise: reps unless
// cardio, weight for strength, duration for cardio and flexibility,
// distance for cardio.
type Set struct {
	SetNumber int      `bson:"setNumber" json:"setNumber"`
	Reps      *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight    *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Duration  *int     `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	Distance  *float64 `bson:"distance,omitempty" json:"distance,omitempty"` // meters
	RestTime  int      `bson:"restTime" json:"restTime"`                     // seconds
	Completed bool     `bson:"completed" json:"completed"`
	Notes     string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DefaultRestTime is applied to sets that don't specify one.
const DefaultRestTime = 60

// WorkoutExercise is one exercise entry in a workout with its ordered sets.
type WorkoutExercise struct {
	ExerciseID primitive.ObjectID `bson:"exercise" json:"exercise"`
	Sets       []Set              `bson:"sets" json:"sets"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Schedule places a workout in time.
type Schedule struct {
	Date       *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	Recurrence Recurrence `bson:"recurrence" json:"recurrence"`
	DaysOfWeek []int      `bson:"daysOfWeek,omitempty" json:"daysOfWeek,omitempty"` // 0 = Sunday
}

// Workout is an ordered list of exercises with sets, owned by a user.
// Templates (IsTemplate) are meant to be cloned, not performed directly.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   []WorkoutExercise  `bson:"exercises" json:"exercises"`
	Duration    int                `bson:"duration" json:"duration"` // minutes
	Schedule    Schedule           `bson:"schedule" json:"schedule"`
	IsTemplate  bool               `bson:"isTemplate" json:"isTemplate"`
	IsCompleted bool               `bson:"isCompleted" json:"isCompleted"`
	UserID      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalVolume returns the sum of weight × reps over all completed sets.
// Sets missing weight or reps contribute nothing.
func (w *Workout) TotalVolume() float64 {
	var volume float64
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.Completed && set.Weight != nil && set.Reps != nil {
				volume += *set.Weight * float64(*set.Reps)
			}
		}
	}
	return volume
}

// CompletedSets returns the number of completed sets across all exercises.
func (w *Workout) CompletedSets() int {
	var completed int
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.Completed {
				completed++
			}
		}
	}
	return completed
}

// TotalSets returns the number of sets across all exercises.
func (w *Workout) TotalSets() int {
	var total int
	for _, ex := range w.Exercises {
		total += len(ex.Sets)
	}
	return total
}
