package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests. They implement the
// behavior the mongo repositories guarantee: not-found sentinels, ownership
// scoping on list/find and date defaulting on progress creation.

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.ID == primitive.NilObjectID {
		exercise.ID = primitive.NewObjectID()
	}
	exercise.CreatedAt = time.Now()
	exercise.UpdatedAt = exercise.CreatedAt
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &exercise, nil
}

func (r *fakeExerciseRepo) List(_ context.Context, userID primitive.ObjectID, q repository.ListQuery) ([]domain.Exercise, int64, error) {
	var visible []domain.Exercise
	for _, exercise := range r.exercises {
		if !exercise.IsCustom || exercise.OwnedBy(userID) {
			visible = append(visible, exercise)
		}
	}
	return visible, int64(len(visible)), nil
}

func (r *fakeExerciseRepo) FindAccessibleByIDs(_ context.Context, userID primitive.ObjectID, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	var found []domain.Exercise
	for _, id := range ids {
		exercise, ok := r.exercises[id]
		if !ok {
			continue
		}
		if !exercise.IsCustom || exercise.OwnedBy(userID) {
			found = append(found, exercise)
		}
	}
	return found, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	exercise.UpdatedAt = time.Now()
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

type fakeWorkoutRepo struct {
	workouts map[primitive.ObjectID]domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]domain.Workout)}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.ID == primitive.NilObjectID {
		workout.ID = primitive.NewObjectID()
	}
	workout.CreatedAt = time.Now()
	workout.UpdatedAt = workout.CreatedAt
	r.workouts[workout.ID] = *workout
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &workout, nil
}

func (r *fakeWorkoutRepo) List(_ context.Context, userID primitive.ObjectID, q repository.ListQuery) ([]domain.Workout, int64, error) {
	var owned []domain.Workout
	for _, workout := range r.workouts {
		if workout.UserID == userID {
			owned = append(owned, workout)
		}
	}
	return owned, int64(len(owned)), nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	workout.UpdatedAt = time.Now()
	r.workouts[workout.ID] = *workout
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

type fakeProgressRepo struct {
	entries map[primitive.ObjectID]domain.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{entries: make(map[primitive.ObjectID]domain.Progress)}
}

func (r *fakeProgressRepo) Create(_ context.Context, entry *domain.Progress) (primitive.ObjectID, error) {
	if entry.ID == primitive.NilObjectID {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	r.entries[entry.ID] = *entry
	return entry.ID, nil
}

func (r *fakeProgressRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Progress, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &entry, nil
}

func (r *fakeProgressRepo) List(_ context.Context, userID primitive.ObjectID, q repository.ListQuery) ([]domain.Progress, int64, error) {
	var owned []domain.Progress
	for _, entry := range r.entries {
		if entry.UserID == userID {
			owned = append(owned, entry)
		}
	}
	return owned, int64(len(owned)), nil
}

func (r *fakeProgressRepo) FindByDateRange(_ context.Context, userID primitive.ObjectID, start, end time.Time) ([]domain.Progress, error) {
	var matched []domain.Progress
	for _, entry := range r.entries {
		if entry.UserID == userID && !entry.Date.Before(start) && !entry.Date.After(end) {
			matched = append(matched, entry)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.Before(matched[j].Date) })
	return matched, nil
}

func (r *fakeProgressRepo) Update(_ context.Context, entry *domain.Progress) error {
	if _, ok := r.entries[entry.ID]; !ok {
		return repository.ErrNotFound
	}
	entry.UpdatedAt = time.Now()
	r.entries[entry.ID] = *entry
	return nil
}

func (r *fakeProgressRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// fakeFileStorage records deletions and hands out deterministic URLs.
type fakeFileStorage struct {
	deleted []string
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

// Pointer helpers for optional fields.
func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }
