package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// workoutFilterFields is the allow-list of workout fields accepted as list
// filter parameters.
var workoutFilterFields = map[string]fieldType{
	"name":        fieldString,
	"isTemplate":  fieldBool,
	"isCompleted": fieldBool,
	"duration":    fieldNumber,
	"createdAt":   fieldDate,
}

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type SetRequest struct {
	SetNumber int      `json:"setNumber" binding:"required,min=1"`
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
	Duration  *int     `json:"duration"`
	Distance  *float64 `json:"distance"`
	RestTime  int      `json:"restTime"`
	Completed bool     `json:"completed"`
	Notes     string   `json:"notes" binding:"max=200"`
}

type WorkoutExerciseRequest struct {
	Exercise string       `json:"exercise" binding:"required"`
	Sets     []SetRequest `json:"sets"`
	Notes    string       `json:"notes" binding:"max=200"`
}

// WorkoutRequest defines the JSON payload for creating or replacing a
// workout.
type WorkoutRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description"`
	Exercises   []WorkoutExerciseRequest `json:"exercises"`
	Duration    int                      `json:"duration"`
	Schedule    domain.Schedule          `json:"schedule"`
	IsTemplate  bool                     `json:"isTemplate"`
	IsCompleted bool                     `json:"isCompleted"`
}

func (r WorkoutRequest) toInput() (service.WorkoutInput, error) {
	input := service.WorkoutInput{
		Name:        r.Name,
		Description: r.Description,
		Duration:    r.Duration,
		Schedule:    r.Schedule,
		IsTemplate:  r.IsTemplate,
		IsCompleted: r.IsCompleted,
	}

	for _, we := range r.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(we.Exercise)
		if err != nil {
			return input, fmt.Errorf("invalid exercise ID %q", we.Exercise)
		}
		entry := domain.WorkoutExercise{
			ExerciseID: exerciseID,
			Notes:      we.Notes,
		}
		for _, set := range we.Sets {
			entry.Sets = append(entry.Sets, domain.Set{
				SetNumber: set.SetNumber,
				Reps:      set.Reps,
				Weight:    set.Weight,
				Duration:  set.Duration,
				Distance:  set.Distance,
				RestTime:  set.RestTime,
				Completed: set.Completed,
				Notes:     set.Notes,
			})
		}
		input.Exercises = append(input.Exercises, entry)
	}

	return input, nil
}

// WorkoutResponse is a workout plus its derived totals, which are computed
// per response and never stored.
type WorkoutResponse struct {
	*domain.Workout
	TotalVolume   float64 `json:"totalVolume"`
	CompletedSets int     `json:"completedSets"`
	TotalSets     int     `json:"totalSets"`
}

func toWorkoutResponse(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		Workout:       w,
		TotalVolume:   w.TotalVolume(),
		CompletedSets: w.CompletedSets(),
		TotalSets:     w.TotalSets(),
	}
}

func toWorkoutResponses(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i := range workouts {
		responses[i] = toWorkoutResponse(&workouts[i])
	}
	return responses
}

// handleWorkoutError maps workout service errors to HTTP statuses.
func handleWorkoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound), errors.Is(err, service.ErrExerciseRefsMissing):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidWorkoutPayload):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Handler Methods ---

// ListWorkouts godoc
// @Summary List the user's workouts
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "List envelope"
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	q := parseListQuery(c.Request.URL.Query(), workoutFilterFields)
	workouts, total, err := h.workoutService.ListWorkouts(c.Request.Context(), userID, q)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts")
		return
	}

	respondList(c, len(workouts), q.Paginate(total), toWorkoutResponses(workouts))
}

// GetWorkout godoc
// @Summary Get a single workout
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID")
		return
	}

	workout, err := h.workoutService.GetWorkoutByID(c.Request.Context(), userID, workoutID)
	if err != nil {
		handleWorkoutError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, toWorkoutResponse(workout))
}

// CreateWorkout godoc
// @Summary Create a workout
// @Description All referenced exercises must exist and be accessible to the
// @Description user; the whole operation fails if any are missing.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, input)
	if err != nil {
		handleWorkoutError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, toWorkoutResponse(workout))
}

// UpdateWorkout godoc
// @Summary Replace a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID")
		return
	}

	var req WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), userID, workoutID, input)
	if err != nil {
		handleWorkoutError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, toWorkoutResponse(workout))
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID")
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), userID, workoutID); err != nil {
		handleWorkoutError(c, err)
		return
	}

	respondDeleted(c)
}

// ToggleComplete godoc
// @Summary Toggle a workout's completion status
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Router /workouts/{id}/complete [put]
func (h *WorkoutHandler) ToggleComplete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID")
		return
	}

	workout, err := h.workoutService.ToggleComplete(c.Request.Context(), userID, workoutID)
	if err != nil {
		handleWorkoutError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, toWorkoutResponse(workout))
}
