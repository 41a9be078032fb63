package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newProgressFixture(t *testing.T) (ProgressService, *fakeProgressRepo, primitive.ObjectID) {
	t.Helper()
	repo := newFakeProgressRepo()
	return NewProgressService(repo), repo, primitive.NewObjectID()
}

func daysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n)
}

func TestCreateEntryDefaultsDate(t *testing.T) {
	svc, _, userID := newProgressFixture(t)

	entry, err := svc.CreateEntry(context.Background(), userID, ProgressInput{Notes: "feeling good"})
	require.NoError(t, err)

	assert.False(t, entry.Date.IsZero())
	assert.Equal(t, userID, entry.UserID)
}

func TestCreateEntryValidation(t *testing.T) {
	svc, _, userID := newProgressFixture(t)

	_, err := svc.CreateEntry(context.Background(), userID, ProgressInput{
		Metrics: domain.Metrics{Weight: &domain.BodyWeight{Value: floatPtr(80), Unit: "stone"}},
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateEntry(context.Background(), userID, ProgressInput{
		PersonalRecords: []domain.PersonalRecord{{Value: 100}},
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateEntry(context.Background(), userID, ProgressInput{
		PersonalRecords: []domain.PersonalRecord{{ExerciseID: primitive.NewObjectID(), Value: 100, Unit: "bananas"}},
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestEntryOwnership(t *testing.T) {
	svc, _, userID := newProgressFixture(t)
	otherUser := primitive.NewObjectID()

	entry, err := svc.CreateEntry(context.Background(), userID, ProgressInput{Notes: "private"})
	require.NoError(t, err)

	_, err = svc.GetEntryByID(context.Background(), otherUser, entry.ID)
	assert.ErrorIs(t, err, ErrProgressAccessDenied)

	_, err = svc.UpdateEntry(context.Background(), otherUser, entry.ID, ProgressInput{})
	assert.ErrorIs(t, err, ErrProgressAccessDenied)

	err = svc.DeleteEntry(context.Background(), otherUser, entry.ID)
	assert.ErrorIs(t, err, ErrProgressAccessDenied)

	_, err = svc.GetEntryByID(context.Background(), userID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrProgressNotFound)
}

func TestGetStatsSeriesPresence(t *testing.T) {
	svc, _, userID := newProgressFixture(t)

	// Entry with weight only.
	_, err := svc.CreateEntry(context.Background(), userID, ProgressInput{
		Date:    timePtr(daysAgo(10)),
		Metrics: domain.Metrics{Weight: &domain.BodyWeight{Value: floatPtr(82), Unit: domain.WeightUnitKg}},
	})
	require.NoError(t, err)

	// Entry with body fat only.
	_, err = svc.CreateEntry(context.Background(), userID, ProgressInput{
		Date:    timePtr(daysAgo(5)),
		Metrics: domain.Metrics{BodyFat: floatPtr(18.5)},
	})
	require.NoError(t, err)

	// Entry with weight and one measurement.
	_, err = svc.CreateEntry(context.Background(), userID, ProgressInput{
		Date: timePtr(daysAgo(1)),
		Metrics: domain.Metrics{
			Weight:       &domain.BodyWeight{Value: floatPtr(81), Unit: domain.WeightUnitKg},
			Measurements: &domain.Measurements{Waist: floatPtr(84)},
		},
	})
	require.NoError(t, err)

	stats, err := svc.GetStats(context.Background(), userID, nil, nil)
	require.NoError(t, err)

	require.Len(t, stats.WeightProgress, 2)
	assert.Equal(t, 82.0, stats.WeightProgress[0].Weight) // ascending by date
	assert.Equal(t, 81.0, stats.WeightProgress[1].Weight)

	require.Len(t, stats.BodyFatProgress, 1)
	assert.Equal(t, 18.5, stats.BodyFatProgress[0].BodyFat)

	require.Len(t, stats.MeasurementsProgress.Waist, 1)
	assert.Empty(t, stats.MeasurementsProgress.Chest)
	assert.Empty(t, stats.MeasurementsProgress.Hips)
}

func TestGetStatsDefaultWindow(t *testing.T) {
	svc, _, userID := newProgressFixture(t)

	_, err := svc.CreateEntry(context.Background(), userID, ProgressInput{
		Date:    timePtr(daysAgo(45)), // outside the 30-day default window
		Metrics: domain.Metrics{Weight: &domain.BodyWeight{Value: floatPtr(85), Unit: domain.WeightUnitKg}},
	})
	require.NoError(t, err)
	_, err = svc.CreateEntry(context.Background(), userID, ProgressInput{
		Date:    timePtr(daysAgo(3)),
		Metrics: domain.Metrics{Weight: &domain.BodyWeight{Value: floatPtr(83), Unit: domain.WeightUnitKg}},
	})
	require.NoError(t, err)

	stats, err := svc.GetStats(context.Background(), userID, nil, nil)
	require.NoError(t, err)
	require.Len(t, stats.WeightProgress, 1)
	assert.Equal(t, 83.0, stats.WeightProgress[0].Weight)

	// An explicit window picks the older entry back up.
	start := daysAgo(60)
	end := time.Now().UTC()
	stats, err = svc.GetStats(context.Background(), userID, &start, &end)
	require.NoError(t, err)
	assert.Len(t, stats.WeightProgress, 2)
}

func TestGetStatsEmptyWindow(t *testing.T) {
	svc, _, userID := newProgressFixture(t)

	stats, err := svc.GetStats(context.Background(), userID, nil, nil)
	require.NoError(t, err)

	// Empty series marshal as [], not null.
	assert.NotNil(t, stats.WeightProgress)
	assert.Empty(t, stats.WeightProgress)
	assert.NotNil(t, stats.BodyFatProgress)
	assert.NotNil(t, stats.PersonalRecords)
	assert.NotNil(t, stats.MeasurementsProgress.Biceps)
}

func TestGetStatsBestRecordPerExercise(t *testing.T) {
	svc, _, userID := newProgressFixture(t)
	benchID := primitive.NewObjectID()
	squatID := primitive.NewObjectID()

	_, err := svc.CreateEntry(context.Background(), userID, ProgressInput{
		Date: timePtr(daysAgo(20)),
		PersonalRecords: []domain.PersonalRecord{
			{ExerciseID: benchID, Value: 100, Unit: "kg"},
			{ExerciseID: squatID, Value: 140, Unit: "kg"},
		},
	})
	require.NoError(t, err)
	_, err = svc.CreateEntry(context.Background(), userID, ProgressInput{
		Date: timePtr(daysAgo(2)),
		PersonalRecords: []domain.PersonalRecord{
			{ExerciseID: benchID, Value: 120, Unit: "kg"},
		},
	})
	require.NoError(t, err)

	stats, err := svc.GetStats(context.Background(), userID, nil, nil)
	require.NoError(t, err)

	require.Len(t, stats.PersonalRecords, 2)
	assert.Equal(t, benchID, stats.PersonalRecords[0].ExerciseID)
	assert.Equal(t, 120.0, stats.PersonalRecords[0].Value)
	assert.Equal(t, squatID, stats.PersonalRecords[1].ExerciseID)
	assert.Equal(t, 140.0, stats.PersonalRecords[1].Value)
}

func TestGetStatsTieKeepsFirstRecord(t *testing.T) {
	svc, _, userID := newProgressFixture(t)
	benchID := primitive.NewObjectID()
	firstDate := daysAgo(15)

	_, err := svc.CreateEntry(context.Background(), userID, ProgressInput{
		Date:            timePtr(firstDate),
		PersonalRecords: []domain.PersonalRecord{{ExerciseID: benchID, Value: 110, Unit: "kg"}},
	})
	require.NoError(t, err)
	_, err = svc.CreateEntry(context.Background(), userID, ProgressInput{
		Date:            timePtr(daysAgo(4)),
		PersonalRecords: []domain.PersonalRecord{{ExerciseID: benchID, Value: 110, Unit: "kg"}},
	})
	require.NoError(t, err)

	stats, err := svc.GetStats(context.Background(), userID, nil, nil)
	require.NoError(t, err)

	require.Len(t, stats.PersonalRecords, 1)
	assert.WithinDuration(t, firstDate, stats.PersonalRecords[0].Date, time.Second)
}

func TestGetStatsScopedToUser(t *testing.T) {
	svc, _, userID := newProgressFixture(t)
	otherUser := primitive.NewObjectID()

	_, err := svc.CreateEntry(context.Background(), otherUser, ProgressInput{
		Date:    timePtr(daysAgo(2)),
		Metrics: domain.Metrics{BodyFat: floatPtr(22)},
	})
	require.NoError(t, err)

	stats, err := svc.GetStats(context.Background(), userID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, stats.BodyFatProgress)
}

func TestUpdateEntryReplacesFields(t *testing.T) {
	svc, _, userID := newProgressFixture(t)

	entry, err := svc.CreateEntry(context.Background(), userID, ProgressInput{
		Metrics: domain.Metrics{BodyFat: floatPtr(20)},
		Notes:   "before",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEntry(context.Background(), userID, entry.ID, ProgressInput{
		Metrics: domain.Metrics{BodyFat: floatPtr(19)},
		Notes:   "after",
	})
	require.NoError(t, err)

	assert.Equal(t, 19.0, *updated.Metrics.BodyFat)
	assert.Equal(t, "after", updated.Notes)
	assert.Equal(t, entry.Date.Unix(), updated.Date.Unix()) // date kept when not supplied
}
