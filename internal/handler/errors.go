package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sheetwise/sheetwise-backend/internal/model"
	"github.com/sheetwise/sheetwise-backend/internal/response"
)

// failDomain maps a domain error onto an HTTP status and response code.
// Not-found, validation and state errors each surface distinctly so
// callers can render the right failure; anything unrecognized is a 500.
func failDomain(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrSheetNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSheetNotFound)
	case errors.Is(err, model.ErrAttemptNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrAttemptNotFound)

	case errors.Is(err, model.ErrInvalidQuestion):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidQuestion)
	case errors.Is(err, model.ErrDuplicateQuestion):
		response.Fail(c, http.StatusBadRequest, response.ErrDuplicateQuestion)
	case errors.Is(err, model.ErrUnknownQuestion):
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownQuestion)
	case errors.Is(err, model.ErrOptionOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrOptionOutOfRange)

	case errors.Is(err, model.ErrAlreadySubmitted):
		response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
	case errors.Is(err, model.ErrKeyIncomplete):
		response.Fail(c, http.StatusConflict, response.ErrKeyIncomplete)
	case errors.Is(err, model.ErrNoQuestions):
		response.Fail(c, http.StatusConflict, response.ErrNoQuestions)

	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// failAsBadRequest downgrades a sheet-not-found to 400 for endpoints
// where the sheet id arrived in the payload rather than the path: the
// request referenced something unresolvable, it did not miss a resource.
func failAsBadRequest(c *gin.Context, err error) bool {
	if errors.Is(err, model.ErrSheetNotFound) {
		response.Fail(c, http.StatusBadRequest, response.ErrSheetNotFound)
		return true
	}
	return false
}
