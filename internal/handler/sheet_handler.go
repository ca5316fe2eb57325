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

// SheetHandler handles sheet authoring and retrieval endpoints.
type SheetHandler struct {
	sheetService *service.SheetService
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(sheetService *service.SheetService) *SheetHandler {
	return &SheetHandler{sheetService: sheetService}
}

// CreateSheet godoc
// POST /sheets
// Creates a sheet whole: questions, marking weights and time limit.
func (h *SheetHandler) CreateSheet(c *gin.Context) {
	var req model.CreateSheetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sheet, err := h.sheetService.Create(c.Request.Context(), &req)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sheet": sheet})
}

// ListSheets godoc
// GET /sheets
// Lists all sheets in creation order.
func (h *SheetHandler) ListSheets(c *gin.Context) {
	sheets, err := h.sheetService.List(c.Request.Context())
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sheets": sheets})
}

// GetSheet godoc
// GET /sheets/:id
func (h *SheetHandler) GetSheet(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sheet, err := h.sheetService.GetByID(c.Request.Context(), id)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sheet": sheet})
}

// SetAnswerKey godoc
// PUT /sheets/:id/answer-key
// Supplies the correct-option mapping for sheets authored without
// embedded answers. Replaces any previously supplied key wholesale.
func (h *SheetHandler) SetAnswerKey(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SetAnswerKeyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.sheetService.SetAnswerKey(c.Request.Context(), id, &req); err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "answer key saved"})
}
