package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newExerciseFixture(t *testing.T) (ExerciseService, *fakeExerciseRepo, *fakeFileStorage, primitive.ObjectID) {
	t.Helper()
	repo := newFakeExerciseRepo()
	storage := &fakeFileStorage{}
	return NewExerciseService(repo, storage), repo, storage, primitive.NewObjectID()
}

func validExerciseInput() ExerciseInput {
	return ExerciseInput{
		Name:     "Goblet Squat",
		Category: domain.CategoryStrength,
	}
}

func TestCreateExerciseForcesCustomOwnership(t *testing.T) {
	svc, _, _, userID := newExerciseFixture(t)

	exercise, err := svc.CreateExercise(context.Background(), userID, validExerciseInput())
	require.NoError(t, err)

	assert.True(t, exercise.IsCustom)
	require.NotNil(t, exercise.UserID)
	assert.Equal(t, userID, *exercise.UserID)
}

func TestCreateExerciseAppliesDefaults(t *testing.T) {
	svc, _, _, userID := newExerciseFixture(t)

	exercise, err := svc.CreateExercise(context.Background(), userID, validExerciseInput())
	require.NoError(t, err)

	assert.Equal(t, domain.Equipment("none"), exercise.EquipmentNeeded)
	assert.Equal(t, domain.DifficultyIntermediate, exercise.DifficultyLevel)
}

func TestCreateExerciseValidation(t *testing.T) {
	svc, _, _, userID := newExerciseFixture(t)

	_, err := svc.CreateExercise(context.Background(), userID, ExerciseInput{Category: domain.CategoryStrength})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateExercise(context.Background(), userID, ExerciseInput{Name: "Yoga", Category: "stretching"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	input := validExerciseInput()
	input.MuscleGroups = []domain.MuscleGroup{"wings"}
	_, err = svc.CreateExercise(context.Background(), userID, input)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestPublicExerciseImmutableForEveryone(t *testing.T) {
	svc, repo, _, userID := newExerciseFixture(t)
	publicID, err := repo.Create(context.Background(), &domain.Exercise{
		Name:     "Push Up",
		Category: domain.CategoryStrength,
		IsCustom: false,
	})
	require.NoError(t, err)

	_, err = svc.UpdateExercise(context.Background(), userID, publicID, validExerciseInput())
	assert.ErrorIs(t, err, ErrExerciseImmutable)

	err = svc.DeleteExercise(context.Background(), userID, publicID)
	assert.ErrorIs(t, err, ErrExerciseImmutable)

	// Reading public exercises is open to everyone.
	exercise, err := svc.GetExerciseByID(context.Background(), userID, publicID)
	require.NoError(t, err)
	assert.False(t, exercise.IsCustom)
}

func TestCustomExerciseHiddenFromOtherUsers(t *testing.T) {
	svc, _, _, userID := newExerciseFixture(t)
	otherUser := primitive.NewObjectID()

	exercise, err := svc.CreateExercise(context.Background(), userID, validExerciseInput())
	require.NoError(t, err)

	_, err = svc.GetExerciseByID(context.Background(), otherUser, exercise.ID)
	assert.ErrorIs(t, err, ErrExerciseAccessDenied)

	_, err = svc.UpdateExercise(context.Background(), otherUser, exercise.ID, validExerciseInput())
	assert.ErrorIs(t, err, ErrExerciseAccessDenied)

	err = svc.DeleteExercise(context.Background(), otherUser, exercise.ID)
	assert.ErrorIs(t, err, ErrExerciseAccessDenied)
}

func TestUpdateExerciseReplacesFields(t *testing.T) {
	svc, _, _, userID := newExerciseFixture(t)

	exercise, err := svc.CreateExercise(context.Background(), userID, validExerciseInput())
	require.NoError(t, err)

	input := ExerciseInput{
		Name:            "Front Squat",
		Category:        domain.CategoryStrength,
		MuscleGroups:    []domain.MuscleGroup{"quadriceps", "core"},
		EquipmentNeeded: "barbell",
		DifficultyLevel: domain.DifficultyAdvanced,
	}
	updated, err := svc.UpdateExercise(context.Background(), userID, exercise.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "Front Squat", updated.Name)
	assert.Equal(t, domain.Equipment("barbell"), updated.EquipmentNeeded)
	assert.Equal(t, domain.DifficultyAdvanced, updated.DifficultyLevel)
}

func TestDeleteExerciseRemovesMedia(t *testing.T) {
	svc, repo, storage, userID := newExerciseFixture(t)

	exercise, err := svc.CreateExercise(context.Background(), userID, validExerciseInput())
	require.NoError(t, err)

	exercise.ImageKey = "exercises/abc/image/key1"
	exercise.VideoKey = "exercises/abc/video/key2"
	require.NoError(t, repo.Update(context.Background(), exercise))

	require.NoError(t, svc.DeleteExercise(context.Background(), userID, exercise.ID))
	assert.ElementsMatch(t, []string{"exercises/abc/image/key1", "exercises/abc/video/key2"}, storage.deleted)
}

func TestRequestMediaUpload(t *testing.T) {
	svc, repo, _, userID := newExerciseFixture(t)

	exercise, err := svc.CreateExercise(context.Background(), userID, validExerciseInput())
	require.NoError(t, err)

	upload, err := svc.RequestMediaUpload(context.Background(), userID, exercise.ID, MediaTypeImage, "image/png")
	require.NoError(t, err)
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)

	stored, err := repo.GetByID(context.Background(), exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, upload.ObjectKey, stored.ImageKey)
	assert.Empty(t, stored.VideoKey)
}

func TestRequestMediaUploadReplacesOldKey(t *testing.T) {
	svc, _, storage, userID := newExerciseFixture(t)

	exercise, err := svc.CreateExercise(context.Background(), userID, validExerciseInput())
	require.NoError(t, err)

	first, err := svc.RequestMediaUpload(context.Background(), userID, exercise.ID, MediaTypeImage, "image/png")
	require.NoError(t, err)
	second, err := svc.RequestMediaUpload(context.Background(), userID, exercise.ID, MediaTypeImage, "image/png")
	require.NoError(t, err)

	assert.NotEqual(t, first.ObjectKey, second.ObjectKey)
	assert.Equal(t, []string{first.ObjectKey}, storage.deleted)
}

func TestRequestMediaUploadRejectsPublicExercise(t *testing.T) {
	svc, repo, _, userID := newExerciseFixture(t)
	publicID, err := repo.Create(context.Background(), &domain.Exercise{
		Name:     "Plank",
		Category: domain.CategoryStrength,
	})
	require.NoError(t, err)

	_, err = svc.RequestMediaUpload(context.Background(), userID, publicID, MediaTypeImage, "image/png")
	assert.ErrorIs(t, err, ErrExerciseImmutable)
}

func TestMediaDownloadURL(t *testing.T) {
	svc, _, _, userID := newExerciseFixture(t)

	exercise, err := svc.CreateExercise(context.Background(), userID, validExerciseInput())
	require.NoError(t, err)

	// No media uploaded yet.
	_, err = svc.MediaDownloadURL(context.Background(), userID, exercise.ID, MediaTypeImage)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	upload, err := svc.RequestMediaUpload(context.Background(), userID, exercise.ID, MediaTypeImage, "image/png")
	require.NoError(t, err)

	url, err := svc.MediaDownloadURL(context.Background(), userID, exercise.ID, MediaTypeImage)
	require.NoError(t, err)
	assert.Contains(t, url, upload.ObjectKey)
}

func TestMediaUnavailableWithoutStorage(t *testing.T) {
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo, nil)
	userID := primitive.NewObjectID()

	exercise, err := svc.CreateExercise(context.Background(), userID, validExerciseInput())
	require.NoError(t, err)

	_, err = svc.RequestMediaUpload(context.Background(), userID, exercise.ID, MediaTypeImage, "image/png")
	assert.Error(t, err)
}
