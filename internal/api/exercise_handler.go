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

// exerciseFilterFields is the allow-list of exercise fields accepted as
// list filter parameters. Keys are the stored field names.
var exerciseFilterFields = map[string]fieldType{
	"name":            fieldString,
	"category":        fieldString,
	"muscleGroups":    fieldString,
	"equipmentNeeded": fieldString,
	"difficultyLevel": fieldString,
	"isCustom":        fieldBool,
}

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request Structs ---

// ExerciseRequest defines the JSON payload for creating or replacing an
// exercise.
type ExerciseRequest struct {
	Name            string                  `json:"name" binding:"required"`
	Description     string                  `json:"description"`
	Category        domain.ExerciseCategory `json:"category" binding:"required"`
	MuscleGroups    []domain.MuscleGroup    `json:"muscleGroups"`
	EquipmentNeeded domain.Equipment        `json:"equipmentNeeded"`
	DifficultyLevel domain.Difficulty       `json:"difficultyLevel"`
	Instructions    string                  `json:"instructions"`
	ImageURL        string                  `json:"imageUrl" binding:"omitempty,url"`
	VideoURL        string                  `json:"videoUrl" binding:"omitempty,url"`
}

func (r ExerciseRequest) toInput() service.ExerciseInput {
	return service.ExerciseInput{
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		MuscleGroups:    r.MuscleGroups,
		EquipmentNeeded: r.EquipmentNeeded,
		DifficultyLevel: r.DifficultyLevel,
		Instructions:    r.Instructions,
		ImageURL:        r.ImageURL,
		VideoURL:        r.VideoURL,
	}
}

// MediaUploadRequest asks for a presigned upload slot for exercise media.
type MediaUploadRequest struct {
	MediaType   service.MediaType `json:"mediaType" binding:"required,oneof=image video"`
	ContentType string            `json:"contentType" binding:"required"`
}

// handleExerciseError maps exercise service errors to HTTP statuses.
func handleExerciseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseImmutable), errors.Is(err, service.ErrExerciseAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List exercises visible to the user
// @Description Returns the user's custom exercises plus the public library,
// @Description filtered, sorted and paginated.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "List envelope"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	q := parseListQuery(c.Request.URL.Query(), exerciseFilterFields)
	exercises, total, err := h.exerciseService.ListExercises(c.Request.Context(), userID, q)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises")
		return
	}

	respondList(c, len(exercises), q.Paginate(total), exercises)
}

// GetExercise godoc
// @Summary Get a single exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), userID, exerciseID)
	if err != nil {
		handleExerciseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, exercise)
}

// CreateExercise godoc
// @Summary Create a custom exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, req.toInput())
	if err != nil {
		handleExerciseError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, exercise)
}

// UpdateExercise godoc
// @Summary Replace a custom exercise
// @Description Public exercises are immutable; updating one fails for every
// @Description caller.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), userID, exerciseID, req.toInput())
	if err != nil {
		handleExerciseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, exercise)
}

// DeleteExercise godoc
// @Summary Delete a custom exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), userID, exerciseID); err != nil {
		handleExerciseError(c, err)
		return
	}

	respondDeleted(c)
}

// RequestMediaUpload godoc
// @Summary Request a presigned upload URL for exercise media
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /exercises/{id}/media [post]
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.exerciseService.RequestMediaUpload(c.Request.Context(), userID, exerciseID, req.MediaType, req.ContentType)
	if err != nil {
		handleExerciseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, upload)
}

// GetMediaDownloadURL godoc
// @Summary Get a presigned download URL for exercise media
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Router /exercises/{id}/media/{type} [get]
func (h *ExerciseHandler) GetMediaDownloadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID")
		return
	}

	mediaType := service.MediaType(c.Param("type"))
	if mediaType != service.MediaTypeImage && mediaType != service.MediaTypeVideo {
		abortWithError(c, http.StatusBadRequest, "Media type must be image or video")
		return
	}

	url, err := h.exerciseService.MediaDownloadURL(c.Request.Context(), userID, exerciseID, mediaType)
	if err != nil {
		handleExerciseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"url": url})
}
