package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgressNotFound     = errors.New("progress entry not found")
	ErrProgressAccessDenied = errors.New("not authorized to access this progress entry")
)

// StatsWindowDays is the default statistics window when no start date is
// given: the last 30 days ending now.
const StatsWindowDays = 30

// ProgressInput carries the caller-supplied fields of a progress entry.
type ProgressInput struct {
	Date            *time.Time
	Metrics         domain.Metrics
	PersonalRecords []domain.PersonalRecord
	Notes           string
}

// WeightPoint is one point of the body-weight time series.
type WeightPoint struct {
	Date   time.Time         `json:"date"`
	Weight float64           `json:"weight"`
	Unit   domain.WeightUnit `json:"unit"`
}

// BodyFatPoint is one point of the body-fat time series.
type BodyFatPoint struct {
	Date    time.Time `json:"date"`
	BodyFat float64   `json:"bodyFat"`
}

// MeasurementPoint is one point of a body-measurement time series.
type MeasurementPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MeasurementSeries holds the five independent measurement time series. An
// entry contributes to a series only if that specific measurement was
// recorded.
type MeasurementSeries struct {
	Chest  []MeasurementPoint `json:"chest"`
	Waist  []MeasurementPoint `json:"waist"`
	Hips   []MeasurementPoint `json:"hips"`
	Biceps []MeasurementPoint `json:"biceps"`
	Thighs []MeasurementPoint `json:"thighs"`
}

// RecordSummary is the best personal record for one exercise in the window.
type RecordSummary struct {
	Date       time.Time          `json:"date"`
	ExerciseID primitive.ObjectID `json:"exercise"`
	Value      float64            `json:"value"`
	Unit       domain.RecordUnit  `json:"unit,omitempty"`
}

// ProgressStats is the aggregated view of a user's progress over a date
// window. Values are returned with their original units; no conversion or
// smoothing is done.
type ProgressStats struct {
	WeightProgress       []WeightPoint     `json:"weightProgress"`
	BodyFatProgress      []BodyFatPoint    `json:"bodyFatProgress"`
	MeasurementsProgress MeasurementSeries `json:"measurementsProgress"`
	PersonalRecords      []RecordSummary   `json:"personalRecords"`
}

// ProgressService manages progress entries and the statistics aggregation.
type ProgressService interface {
	CreateEntry(ctx context.Context, userID primitive.ObjectID, input ProgressInput) (*domain.Progress, error)
	GetEntryByID(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.Progress, error)
	ListEntries(ctx context.Context, userID primitive.ObjectID, q repository.ListQuery) ([]domain.Progress, int64, error)
	UpdateEntry(ctx context.Context, userID, entryID primitive.ObjectID, input ProgressInput) (*domain.Progress, error)
	DeleteEntry(ctx context.Context, userID, entryID primitive.ObjectID) error
	GetStats(ctx context.Context, userID primitive.ObjectID, startDate, endDate *time.Time) (*ProgressStats, error)
}

// progressService implements the ProgressService interface.
type progressService struct {
	progressRepo repository.ProgressRepository
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(progressRepo repository.ProgressRepository) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
	}
}

// validateEntry checks field lengths and enum membership.
func validateEntry(input *ProgressInput) error {
	if len(input.Notes) > 500 {
		return fmt.Errorf("%w: notes cannot be more than 500 characters", ErrValidationFailed)
	}
	if input.Metrics.Weight != nil && input.Metrics.Weight.Unit != "" {
		if input.Metrics.Weight.Unit != domain.WeightUnitKg && input.Metrics.Weight.Unit != domain.WeightUnitLb {
			return fmt.Errorf("%w: weight unit must be kg or lb", ErrValidationFailed)
		}
	}
	for _, pr := range input.PersonalRecords {
		if pr.ExerciseID == primitive.NilObjectID {
			return fmt.Errorf("%w: personal record exercise is required", ErrValidationFailed)
		}
		if pr.Unit != "" && !slices.Contains(domain.ValidRecordUnits, pr.Unit) {
			return fmt.Errorf("%w: invalid record unit %q", ErrValidationFailed, pr.Unit)
		}
	}
	return nil
}

// CreateEntry creates a progress entry owned by the user. The date defaults
// to now when unset.
func (s *progressService) CreateEntry(ctx context.Context, userID primitive.ObjectID, input ProgressInput) (*domain.Progress, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a progress entry")
	}
	if err := validateEntry(&input); err != nil {
		return nil, err
	}

	entry := &domain.Progress{
		UserID:          userID,
		Metrics:         input.Metrics,
		PersonalRecords: input.PersonalRecords,
		Notes:           input.Notes,
	}
	if input.Date != nil {
		entry.Date = *input.Date
	}

	entryID, err := s.progressRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return s.progressRepo.GetByID(ctx, entryID)
}

// GetEntryByID retrieves a single progress entry, ensuring ownership.
func (s *progressService) GetEntryByID(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.Progress, error) {
	entry, err := s.progressRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrProgressAccessDenied
	}
	return entry, nil
}

// ListEntries returns a page of the user's progress entries.
func (s *progressService) ListEntries(ctx context.Context, userID primitive.ObjectID, q repository.ListQuery) ([]domain.Progress, int64, error) {
	return s.progressRepo.List(ctx, userID, q)
}

// UpdateEntry replaces an entry's fields, ensuring ownership.
func (s *progressService) UpdateEntry(ctx context.Context, userID, entryID primitive.ObjectID, input ProgressInput) (*domain.Progress, error) {
	existing, err := s.GetEntryByID(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if err := validateEntry(&input); err != nil {
		return nil, err
	}

	if input.Date != nil {
		existing.Date = *input.Date
	}
	existing.Metrics = input.Metrics
	existing.PersonalRecords = input.PersonalRecords
	existing.Notes = input.Notes

	if err := s.progressRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteEntry removes a progress entry, ensuring ownership.
func (s *progressService) DeleteEntry(ctx context.Context, userID, entryID primitive.ObjectID) error {
	if _, err := s.GetEntryByID(ctx, userID, entryID); err != nil {
		return err
	}

	if err := s.progressRepo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgressNotFound
		}
		return err
	}
	return nil
}

// GetStats aggregates the user's entries in [startDate, endDate] into time
// series for charting. The window defaults to the last 30 days ending now.
func (s *progressService) GetStats(ctx context.Context, userID primitive.ObjectID, startDate, endDate *time.Time) (*ProgressStats, error) {
	end := time.Now().UTC()
	if endDate != nil {
		end = *endDate
	}
	start := end.AddDate(0, 0, -StatsWindowDays)
	if startDate != nil {
		start = *startDate
	}

	entries, err := s.progressRepo.FindByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	return aggregateStats(entries), nil
}

// aggregateStats builds the four series from entries sorted ascending by
// date. An entry contributes to a series only when that metric is present.
func aggregateStats(entries []domain.Progress) *ProgressStats {
	stats := &ProgressStats{
		WeightProgress:  []WeightPoint{},
		BodyFatProgress: []BodyFatPoint{},
		MeasurementsProgress: MeasurementSeries{
			Chest:  []MeasurementPoint{},
			Waist:  []MeasurementPoint{},
			Hips:   []MeasurementPoint{},
			Biceps: []MeasurementPoint{},
			Thighs: []MeasurementPoint{},
		},
		PersonalRecords: []RecordSummary{},
	}

	for _, entry := range entries {
		if w := entry.Metrics.Weight; w != nil && w.Value != nil {
			stats.WeightProgress = append(stats.WeightProgress, WeightPoint{
				Date:   entry.Date,
				Weight: *w.Value,
				Unit:   w.Unit,
			})
		}
		if entry.Metrics.BodyFat != nil {
			stats.BodyFatProgress = append(stats.BodyFatProgress, BodyFatPoint{
				Date:    entry.Date,
				BodyFat: *entry.Metrics.BodyFat,
			})
		}
		if m := entry.Metrics.Measurements; m != nil {
			appendMeasurement(&stats.MeasurementsProgress.Chest, entry.Date, m.Chest)
			appendMeasurement(&stats.MeasurementsProgress.Waist, entry.Date, m.Waist)
			appendMeasurement(&stats.MeasurementsProgress.Hips, entry.Date, m.Hips)
			appendMeasurement(&stats.MeasurementsProgress.Biceps, entry.Date, m.Biceps)
			appendMeasurement(&stats.MeasurementsProgress.Thighs, entry.Date, m.Thighs)
		}
	}

	stats.PersonalRecords = bestRecords(entries)
	return stats
}

func appendMeasurement(series *[]MeasurementPoint, date time.Time, value *float64) {
	if value != nil {
		*series = append(*series, MeasurementPoint{Date: date, Value: *value})
	}
}

// bestRecords flattens every entry's personal records, groups them by
// exercise and keeps the maximum value per exercise. A record replaces the
// current best only on a strictly greater value, so on ties the first
// maximum in input order wins. Record dates default to their entry's date.
func bestRecords(entries []domain.Progress) []RecordSummary {
	best := make(map[primitive.ObjectID]RecordSummary)
	var order []primitive.ObjectID

	for _, entry := range entries {
		for _, record := range entry.PersonalRecords {
			date := entry.Date
			if record.Date != nil {
				date = *record.Date
			}

			current, seen := best[record.ExerciseID]
			if !seen {
				order = append(order, record.ExerciseID)
			}
			if !seen || record.Value > current.Value {
				best[record.ExerciseID] = RecordSummary{
					Date:       date,
					ExerciseID: record.ExerciseID,
					Value:      record.Value,
					Unit:       record.Unit,
				}
			}
		}
	}

	records := make([]RecordSummary, 0, len(order))
	for _, id := range order {
		records = append(records, best[id])
	}
	return records
}
