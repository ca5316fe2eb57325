package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sheetwise/sheetwise-backend/internal/model"
	"github.com/sheetwise/sheetwise-backend/internal/response"
	"github.com/sheetwise/sheetwise-backend/internal/service"
	"github.com/sheetwise/sheetwise-backend/internal/validator"
)

// AttemptHandler handles the attempt lifecycle endpoints.
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// CreateAttempt godoc
// POST /attempts
// Starts an attempt for an existing sheet. Any caller-supplied start
// time is discarded; the server clock wins.
func (h *AttemptHandler) CreateAttempt(c *gin.Context) {
	var req model.CreateAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.Start(c.Request.Context(), req.SheetID, toAnswers(req.Answers))
	if err != nil {
		// An unresolvable sheet id in the payload is a bad request, not
		// a missing resource: the attempt itself has no id yet.
		if failAsBadRequest(c, err) {
			return
		}
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// GetAttempt godoc
// GET /attempts/:id
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	attempt, err := h.attemptService.GetByID(c.Request.Context(), id)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// PatchAttempt godoc
// PATCH /attempts/:id
// Submits the attempt: replaces the answer sequence wholesale when one
// is provided, sets the end time and scores synchronously. Submission is
// single-shot; a second PATCH fails with ALREADY_SUBMITTED.
func (h *AttemptHandler) PatchAttempt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.PatchAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.Submit(c.Request.Context(), id, toAnswers(req.Answers))
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// RecordAnswer godoc
// POST /attempts/:id/answers
// Upserts a single answer while the attempt is in progress.
func (h *AttemptHandler) RecordAnswer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.RecordAnswer(c.Request.Context(), id, req.QuestionID, *req.SelectedOption)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// ApplySuggestion godoc
// POST /attempts/:id/suggestions
// Applies an analysis suggestion as if it were a manual answer and keeps
// the advisory record on the attempt for review display.
func (h *AttemptHandler) ApplySuggestion(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ApplySuggestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.ApplySuggestion(c.Request.Context(), id, model.ImageAnalysis{
		QuestionID:      req.QuestionID,
		Confidence:      req.Confidence,
		SuggestedOption: *req.SuggestedOption,
	})
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// ListBySheet godoc
// GET /sheets/:id/attempts
// Lists all attempts for a sheet in creation order.
func (h *AttemptHandler) ListBySheet(c *gin.Context) {
	sheetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	attempts, err := h.attemptService.ListBySheet(c.Request.Context(), sheetID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}

// toAnswers converts bound answer requests into domain answers.
func toAnswers(reqs []model.AnswerRequest) []model.Answer {
	if reqs == nil {
		return nil
	}
	answers := make([]model.Answer, 0, len(reqs))
	for _, r := range reqs {
		answers = append(answers, model.Answer{
			QuestionID:     r.QuestionID,
			SelectedOption: *r.SelectedOption,
		})
	}
	return answers
}
