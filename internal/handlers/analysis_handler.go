package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/M1doriya/Analysis-PRO/internal/dto"
	apierrors "github.com/M1doriya/Analysis-PRO/internal/errors"
	"github.com/M1doriya/Analysis-PRO/internal/services"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler handles statement analysis requests
type AnalysisHandler struct {
	analysisService services.AnalysisServiceInterface
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService services.AnalysisServiceInterface) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Analyze runs the full integrity analysis over a bundle of account statements
// @Summary Analyze bank statements
// @Description Merges the supplied account statements into one transaction pool, matches
// @Description inter-account transfers, classifies every transaction, and returns the
// @Description consolidated integrity report. Processing is synchronous and in-memory;
// @Description nothing is persisted between requests.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Company profile and statement bundle"
// @Success 200 {object} dto.AnalyzeResponse "Analysis report"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Malformed request body"
// @Failure 422 {object} errors.ErrorResponse "ANALYSIS_001 / ANALYSIS_002 - No usable statement data"
// @Failure 429 {object} errors.ErrorResponse "SYSTEM_005 - Rate limit exceeded"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /analyze [post]
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	result, err := h.analysisService.Analyze(req.ToAnalysisInput())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AnalyzeResponse{
		Message:             analysisMessage(result.DroppedTransactions),
		DroppedTransactions: result.DroppedTransactions,
		Report:              result.Report,
	})
}

func (h *AnalysisHandler) handleServiceError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrNoStatements) {
		return SendError(c, apierrors.AnalysisNoStatements)
	}

	if errors.Is(err, services.ErrEmptyTransactionPool) {
		return SendError(c, apierrors.AnalysisEmptyPool)
	}

	return SendSystemError(c, err)
}

// analysisMessage surfaces how many malformed rows sanitation discarded, so
// callers know when the report covers a reduced pool.
func analysisMessage(dropped int) string {
	if dropped > 0 {
		return fmt.Sprintf("Analysis completed; %d malformed transactions were dropped during sanitation", dropped)
	}
	return "Analysis completed"
}
