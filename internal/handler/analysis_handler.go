package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sheetwise/sheetwise-backend/internal/analysis"
	"github.com/sheetwise/sheetwise-backend/internal/model"
	"github.com/sheetwise/sheetwise-backend/internal/response"
	"github.com/sheetwise/sheetwise-backend/internal/validator"
)

// AnalysisHandler exposes the image-analysis stub.
type AnalysisHandler struct {
	analyzer *analysis.Analyzer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzer *analysis.Analyzer) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer}
}

// AnalyzeImage godoc
// POST /analyze-image
// Returns an advisory suggestion for a question after the simulated
// processing delay. The result carries no correctness guarantee.
func (h *AnalysisHandler) AnalyzeImage(c *gin.Context) {
	var req model.AnalyzeImageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), req.QuestionID)
	if err != nil {
		// The client went away mid-delay; nothing was written, so there
		// is nothing to recover.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.Abort()
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"analysis": result})
}
