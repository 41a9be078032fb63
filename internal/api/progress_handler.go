package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// progressFilterFields is the allow-list of progress fields accepted as list
// filter parameters.
var progressFilterFields = map[string]fieldType{
	"date":      fieldDate,
	"createdAt": fieldDate,
}

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- Request Structs ---

type PersonalRecordRequest struct {
	Exercise string     `json:"exercise" binding:"required"`
	Value    float64    `json:"value" binding:"required"`
	Unit     string     `json:"unit"`
	Date     *time.Time `json:"date"`
}

// ProgressRequest defines the JSON payload for creating or replacing a
// progress entry.
type ProgressRequest struct {
	Date            *time.Time              `json:"date"`
	Metrics         domain.Metrics          `json:"metrics"`
	PersonalRecords []PersonalRecordRequest `json:"personalRecords"`
	Notes           string                  `json:"notes" binding:"max=500"`
}

func (r ProgressRequest) toInput() (service.ProgressInput, error) {
	input := service.ProgressInput{
		Date:    r.Date,
		Metrics: r.Metrics,
		Notes:   r.Notes,
	}
	for _, pr := range r.PersonalRecords {
		exerciseID, err := primitive.ObjectIDFromHex(pr.Exercise)
		if err != nil {
			return input, fmt.Errorf("invalid exercise ID %q", pr.Exercise)
		}
		input.PersonalRecords = append(input.PersonalRecords, domain.PersonalRecord{
			ExerciseID: exerciseID,
			Value:      pr.Value,
			Unit:       domain.RecordUnit(pr.Unit),
			Date:       pr.Date,
		})
	}
	return input, nil
}

// handleProgressError maps progress service errors to HTTP statuses.
func handleProgressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProgressNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgressAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Handler Methods ---

// ListProgress godoc
// @Summary List the user's progress entries
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "List envelope"
// @Router /progress [get]
func (h *ProgressHandler) ListProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	q := parseListQuery(c.Request.URL.Query(), progressFilterFields)
	entries, total, err := h.progressService.ListEntries(c.Request.Context(), userID, q)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve progress entries")
		return
	}

	respondList(c, len(entries), q.Paginate(total), entries)
}

// GetProgress godoc
// @Summary Get a single progress entry
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Router /progress/{id} [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress entry ID")
		return
	}

	entry, err := h.progressService.GetEntryByID(c.Request.Context(), userID, entryID)
	if err != nil {
		handleProgressError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, entry)
}

// CreateProgress godoc
// @Summary Create a progress entry
// @Description The entry date defaults to the current time when omitted.
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /progress [post]
func (h *ProgressHandler) CreateProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.progressService.CreateEntry(c.Request.Context(), userID, input)
	if err != nil {
		handleProgressError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, entry)
}

// UpdateProgress godoc
// @Summary Replace a progress entry
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /progress/{id} [put]
func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress entry ID")
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.progressService.UpdateEntry(c.Request.Context(), userID, entryID, input)
	if err != nil {
		handleProgressError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, entry)
}

// DeleteProgress godoc
// @Summary Delete a progress entry
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Router /progress/{id} [delete]
func (h *ProgressHandler) DeleteProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	entryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid progress entry ID")
		return
	}

	if err := h.progressService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		handleProgressError(c, err)
		return
	}

	respondDeleted(c)
}

// GetStats godoc
// @Summary Aggregate progress statistics over a date window
// @Description Accepts optional startDate and endDate query parameters in
// @Description RFC3339 or YYYY-MM-DD form; defaults to the last 30 days.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Router /progress/stats [get]
func (h *ProgressHandler) GetStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	var start, end *time.Time
	if raw := c.Query("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid startDate")
			return
		}
		start = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid endDate")
			return
		}
		end = &t
	}

	stats, err := h.progressService.GetStats(c.Request.Context(), userID, start, end)
	if err != nil {
		handleProgressError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, stats)
}
