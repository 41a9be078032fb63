package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/storage"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("not authorized to access this exercise")
	ErrExerciseImmutable    = errors.New("public exercises cannot be modified or deleted")
	ErrValidationFailed     = errors.New("validation failed")
)

// MediaType selects which media slot of an exercise an upload targets.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// ExerciseInput carries the caller-supplied fields of an exercise.
type ExerciseInput struct {
	Name            string
	Description     string
	Category        domain.ExerciseCategory
	MuscleGroups    []domain.MuscleGroup
	EquipmentNeeded domain.Equipment
	DifficultyLevel domain.Difficulty
	Instructions    string
	ImageURL        string
	VideoURL        string
}

// MediaUpload is the result of requesting a media upload slot: a presigned
// PUT URL the client uploads to, and the object key now recorded on the
// exercise.
type MediaUpload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ExerciseService manages the shared public exercise library and per-user
// custom exercises.
type ExerciseService interface {
	CreateExercise(ctx context.Context, userID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context, userID primitive.ObjectID, q repository.ListQuery) ([]domain.Exercise, int64, error)
	UpdateExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) error
	RequestMediaUpload(ctx context.Context, userID, exerciseID primitive.ObjectID, mediaType MediaType, contentType string) (*MediaUpload, error)
	MediaDownloadURL(ctx context.Context, userID, exerciseID primitive.ObjectID, mediaType MediaType) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

// validateInput checks required fields and enum membership, applying enum
// defaults where the input leaves them empty.
func validateInput(input *ExerciseInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if len(input.Name) > 100 {
		return fmt.Errorf("%w: name cannot be more than 100 characters", ErrValidationFailed)
	}
	if len(input.Description) > 500 {
		return fmt.Errorf("%w: description cannot be more than 500 characters", ErrValidationFailed)
	}
	if len(input.Instructions) > 1000 {
		return fmt.Errorf("%w: instructions cannot be more than 1000 characters", ErrValidationFailed)
	}
	if !slices.Contains(domain.ValidCategories, input.Category) {
		return fmt.Errorf("%w: invalid category %q", ErrValidationFailed, input.Category)
	}
	for _, mg := range input.MuscleGroups {
		if !slices.Contains(domain.ValidMuscleGroups, mg) {
			return fmt.Errorf("%w: invalid muscle group %q", ErrValidationFailed, mg)
		}
	}
	if input.EquipmentNeeded == "" {
		input.EquipmentNeeded = "none"
	} else if !slices.Contains(domain.ValidEquipment, input.EquipmentNeeded) {
		return fmt.Errorf("%w: invalid equipment %q", ErrValidationFailed, input.EquipmentNeeded)
	}
	if input.DifficultyLevel == "" {
		input.DifficultyLevel = domain.DifficultyIntermediate
	} else if !slices.Contains(domain.ValidDifficulties, input.DifficultyLevel) {
		return fmt.Errorf("%w: invalid difficulty %q", ErrValidationFailed, input.DifficultyLevel)
	}
	return nil
}

// CreateExercise creates a custom exercise owned by the user. Exercises
// created through the API are always custom; the public library is seeded
// out of band.
func (s *exerciseService) CreateExercise(ctx context.Context, userID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create an exercise")
	}
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		MuscleGroups:    input.MuscleGroups,
		EquipmentNeeded: input.EquipmentNeeded,
		DifficultyLevel: input.DifficultyLevel,
		Instructions:    input.Instructions,
		ImageURL:        input.ImageURL,
		VideoURL:        input.VideoURL,
		IsCustom:        true,
		UserID:          &userID,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// GetExerciseByID retrieves a single exercise. Public exercises are
// readable by any authenticated user; custom exercises only by their owner.
func (s *exerciseService) GetExerciseByID(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	if exercise.IsCustom && !exercise.OwnedBy(userID) {
		return nil, ErrExerciseAccessDenied
	}
	return exercise, nil
}

// ListExercises returns a page of exercises visible to the user.
func (s *exerciseService) ListExercises(ctx context.Context, userID primitive.ObjectID, q repository.ListQuery) ([]domain.Exercise, int64, error) {
	return s.exerciseRepo.List(ctx, userID, q)
}

// UpdateExercise replaces a custom exercise's fields, ensuring ownership.
// Public exercises are immutable for every caller.
func (s *exerciseService) UpdateExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	if !existing.IsCustom {
		return nil, ErrExerciseImmutable
	}
	if !existing.OwnedBy(userID) {
		return nil, ErrExerciseAccessDenied
	}

	if err := validateInput(&input); err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Category = input.Category
	existing.MuscleGroups = input.MuscleGroups
	existing.EquipmentNeeded = input.EquipmentNeeded
	existing.DifficultyLevel = input.DifficultyLevel
	existing.Instructions = input.Instructions
	existing.ImageURL = input.ImageURL
	existing.VideoURL = input.VideoURL

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise removes a custom exercise, ensuring ownership. Uploaded
// media objects are deleted best-effort; a storage failure doesn't resurrect
// the exercise.
func (s *exerciseService) DeleteExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if !existing.IsCustom {
		return ErrExerciseImmutable
	}
	if !existing.OwnedBy(userID) {
		return ErrExerciseAccessDenied
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if s.fileStorage != nil {
		for _, key := range []string{existing.ImageKey, existing.VideoKey} {
			if key != "" {
				_ = s.fileStorage.DeleteObject(ctx, key)
			}
		}
	}

	return nil
}

// RequestMediaUpload issues a presigned PUT URL for attaching image or video
// media to a custom exercise and records the object key on the exercise.
// Uploading to the returned URL replaces any previous media of that type on
// the next download.
func (s *exerciseService) RequestMediaUpload(ctx context.Context, userID, exerciseID primitive.ObjectID, mediaType MediaType, contentType string) (*MediaUpload, error) {
	if s.fileStorage == nil {
		return nil, errors.New("file storage is not configured")
	}
	if mediaType != MediaTypeImage && mediaType != MediaTypeVideo {
		return nil, fmt.Errorf("%w: media type must be image or video", ErrValidationFailed)
	}
	if contentType == "" {
		return nil, fmt.Errorf("%w: content type is required", ErrValidationFailed)
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if !existing.IsCustom {
		return nil, ErrExerciseImmutable
	}
	if !existing.OwnedBy(userID) {
		return nil, ErrExerciseAccessDenied
	}

	objectKey := fmt.Sprintf("exercises/%s/%s/%s", exerciseID.Hex(), mediaType, uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	oldKey := existing.ImageKey
	if mediaType == MediaTypeVideo {
		oldKey = existing.VideoKey
		existing.VideoKey = objectKey
	} else {
		existing.ImageKey = objectKey
	}

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if oldKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, oldKey)
	}

	return &MediaUpload{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// MediaDownloadURL returns a presigned GET URL for previously uploaded
// exercise media. Visibility follows the exercise itself.
func (s *exerciseService) MediaDownloadURL(ctx context.Context, userID, exerciseID primitive.ObjectID, mediaType MediaType) (string, error) {
	if s.fileStorage == nil {
		return "", errors.New("file storage is not configured")
	}

	exercise, err := s.GetExerciseByID(ctx, userID, exerciseID)
	if err != nil {
		return "", err
	}

	key := exercise.ImageKey
	if mediaType == MediaTypeVideo {
		key = exercise.VideoKey
	}
	if key == "" {
		return "", ErrExerciseNotFound
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
}
