package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound       = errors.New("workout not found")
	ErrWorkoutAccessDenied   = errors.New("not authorized to access this workout")
	ErrExerciseRefsMissing   = errors.New("one or more exercises not found or not accessible")
	ErrInvalidWorkoutPayload = errors.New("workout validation failed")
)

// WorkoutInput carries the caller-supplied fields of a workout. PUT is a
// full-document replace, so every field is taken as given.
type WorkoutInput struct {
	Name        string
	Description string
	Exercises   []domain.WorkoutExercise
	Duration    int
	Schedule    domain.Schedule
	IsTemplate  bool
	IsCompleted bool
}

// WorkoutService manages user workouts, including validation of embedded
// exercise references and their sets.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error)
	GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, userID primitive.ObjectID, q repository.ListQuery) ([]domain.Workout, int64, error)
	UpdateWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error)
	DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error
	ToggleComplete(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// validateWorkout checks the payload and the referenced exercises. All
// referenced exercises must exist and be accessible to the user (owned or
// public) — all-or-nothing, no partial creation. Set requirements depend on
// the referenced exercise's category: reps required unless cardio, weight
// required for strength, duration required for cardio and flexibility,
// distance required for cardio.
func (s *workoutService) validateWorkout(ctx context.Context, userID primitive.ObjectID, input *WorkoutInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidWorkoutPayload)
	}
	if len(input.Name) > 100 {
		return fmt.Errorf("%w: name cannot be more than 100 characters", ErrInvalidWorkoutPayload)
	}
	if len(input.Description) > 500 {
		return fmt.Errorf("%w: description cannot be more than 500 characters", ErrInvalidWorkoutPayload)
	}
	if input.Schedule.Recurrence == "" {
		input.Schedule.Recurrence = domain.RecurrenceNone
	} else if !slices.Contains(domain.ValidRecurrences, input.Schedule.Recurrence) {
		return fmt.Errorf("%w: invalid recurrence %q", ErrInvalidWorkoutPayload, input.Schedule.Recurrence)
	}
	for _, day := range input.Schedule.DaysOfWeek {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: days of week must be between 0 and 6", ErrInvalidWorkoutPayload)
		}
	}

	if len(input.Exercises) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(input.Exercises))
	for _, we := range input.Exercises {
		if we.ExerciseID == primitive.NilObjectID {
			return fmt.Errorf("%w: exercise reference is required", ErrInvalidWorkoutPayload)
		}
		if !slices.Contains(ids, we.ExerciseID) {
			ids = append(ids, we.ExerciseID)
		}
	}

	accessible, err := s.exerciseRepo.FindAccessibleByIDs(ctx, userID, ids)
	if err != nil {
		return err
	}
	if len(accessible) != len(ids) {
		return ErrExerciseRefsMissing
	}

	categories := make(map[primitive.ObjectID]domain.ExerciseCategory, len(accessible))
	for _, ex := range accessible {
		categories[ex.ID] = ex.Category
	}

	for i := range input.Exercises {
		we := &input.Exercises[i]
		category := categories[we.ExerciseID]
		for j := range we.Sets {
			set := &we.Sets[j]
			if set.SetNumber < 1 {
				return fmt.Errorf("%w: set number must be 1 or greater", ErrInvalidWorkoutPayload)
			}
			if set.RestTime == 0 {
				set.RestTime = domain.DefaultRestTime
			}
			if err := validateSetForCategory(set, category); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateSetForCategory enforces the category-dependent set requirements.
func validateSetForCategory(set *domain.Set, category domain.ExerciseCategory) error {
	if category != domain.CategoryCardio && set.Reps == nil {
		return fmt.Errorf("%w: reps are required for set %d", ErrInvalidWorkoutPayload, set.SetNumber)
	}
	if category == domain.CategoryStrength && set.Weight == nil {
		return fmt.Errorf("%w: weight is required for set %d", ErrInvalidWorkoutPayload, set.SetNumber)
	}
	if (category == domain.CategoryCardio || category == domain.CategoryFlexibility) && set.Duration == nil {
		return fmt.Errorf("%w: duration is required for set %d", ErrInvalidWorkoutPayload, set.SetNumber)
	}
	if category == domain.CategoryCardio && set.Distance == nil {
		return fmt.Errorf("%w: distance is required for set %d", ErrInvalidWorkoutPayload, set.SetNumber)
	}
	return nil
}

// CreateWorkout creates a workout owned by the user.
func (s *workoutService) CreateWorkout(ctx context.Context, userID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a workout")
	}
	if err := s.validateWorkout(ctx, userID, &input); err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		Name:        input.Name,
		Description: input.Description,
		Exercises:   input.Exercises,
		Duration:    input.Duration,
		Schedule:    input.Schedule,
		IsTemplate:  input.IsTemplate,
		IsCompleted: input.IsCompleted,
		UserID:      userID,
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID
	return s.workoutRepo.GetByID(ctx, workoutID)
}

// GetWorkoutByID retrieves a single workout, ensuring ownership.
func (s *workoutService) GetWorkoutByID(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrWorkoutAccessDenied
	}
	return workout, nil
}

// ListWorkouts returns a page of the user's workouts.
func (s *workoutService) ListWorkouts(ctx context.Context, userID primitive.ObjectID, q repository.ListQuery) ([]domain.Workout, int64, error) {
	return s.workoutRepo.List(ctx, userID, q)
}

// UpdateWorkout replaces a workout's fields, ensuring ownership and
// re-validating all exercise references.
func (s *workoutService) UpdateWorkout(ctx context.Context, userID, workoutID primitive.ObjectID, input WorkoutInput) (*domain.Workout, error) {
	existing, err := s.GetWorkoutByID(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	if err := s.validateWorkout(ctx, userID, &input); err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Exercises = input.Exercises
	existing.Duration = input.Duration
	existing.Schedule = input.Schedule
	existing.IsTemplate = input.IsTemplate
	existing.IsCompleted = input.IsCompleted

	if err := s.workoutRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteWorkout removes a workout, ensuring ownership.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if _, err := s.GetWorkoutByID(ctx, userID, workoutID); err != nil {
		return err
	}

	if err := s.workoutRepo.Delete(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// ToggleComplete flips the workout's completion flag.
func (s *workoutService) ToggleComplete(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.GetWorkoutByID(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	workout.IsCompleted = !workout.IsCompleted

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}
