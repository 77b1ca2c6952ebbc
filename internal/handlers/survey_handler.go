package handlers

import (
	"net/http"

	"github.com/Criterio-inc/mognadsmataren/internal/services"
	"github.com/Criterio-inc/mognadsmataren/internal/utils"
	"github.com/gin-gonic/gin"
)

// SurveyHandler serves the public respondent flow. Respondents are anonymous;
// the share code in the URL is the only credential.
type SurveyHandler struct {
	BaseHandler
	surveyService  services.SurveyService
	insightService services.InsightService
	validator      *utils.Validator
}

func NewSurveyHandler(
	surveyService services.SurveyService,
	insightService services.InsightService,
	validator *utils.Validator,
	logger utils.Logger,
) *SurveyHandler {
	return &SurveyHandler{
		BaseHandler:    NewBaseHandler(logger),
		surveyService:  surveyService,
		insightService: insightService,
		validator:      validator,
	}
}

// GetSurvey returns the localized question catalog for a share code
// @Summary Get survey
// @Tags survey
// @Produce json
// @Param code path string true "Share code"
// @Param locale query string false "Locale override (sv or en)"
// @Success 200 {object} services.SurveyResponse
// @Failure 404 {object} ErrorResponse
// @Router /survey/{code} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	code := ParseStringParam(c, "code")
	if code == "" {
		return
	}

	survey, err := h.surveyService.GetSurvey(c.Request.Context(), code, c.Query("locale"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, survey)
}

// StartSession opens a new respondent session
// @Summary Start session
// @Tags survey
// @Accept json
// @Produce json
// @Param code path string true "Share code"
// @Param session body services.StartSessionRequest false "Respondent details"
// @Success 201 {object} models.AssessmentSession
// @Failure 404 {object} ErrorResponse
// @Router /survey/{code}/sessions [post]
func (h *SurveyHandler) StartSession(c *gin.Context) {
	code := ParseStringParam(c, "code")
	if code == "" {
		return
	}

	// Respondent details are optional; an empty body is fine.
	var req services.StartSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid request payload",
				Details: err.Error(),
			})
			return
		}
	}

	session, err := h.surveyService.StartSession(c.Request.Context(), code, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// SubmitAnswer records one answer in an open session
func (h *SurveyHandler) SubmitAnswer(c *gin.Context) {
	sessionID := parseIDParam(c, "session_id")
	if sessionID == 0 {
		return
	}

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.surveyService.SubmitAnswer(c.Request.Context(), sessionID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SubmitAnswers records a batch of answers in one transaction
func (h *SurveyHandler) SubmitAnswers(c *gin.Context) {
	sessionID := parseIDParam(c, "session_id")
	if sessionID == 0 {
		return
	}

	var req services.SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.surveyService.SubmitAnswers(c.Request.Context(), sessionID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CompleteSession finalizes the session and returns the scored result
// @Summary Complete session
// @Tags survey
// @Produce json
// @Param session_id path uint true "Session ID"
// @Success 200 {object} services.SessionResult
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /survey/sessions/{session_id}/complete [post]
func (h *SurveyHandler) CompleteSession(c *gin.Context) {
	sessionID := parseIDParam(c, "session_id")
	if sessionID == 0 {
		return
	}

	h.LogRequest(c, "Completing session", "session_id", sessionID)

	result, err := h.surveyService.CompleteSession(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResult returns the stored result of a completed session
func (h *SurveyHandler) GetResult(c *gin.Context) {
	sessionID := parseIDParam(c, "session_id")
	if sessionID == 0 {
		return
	}

	result, err := h.surveyService.GetResult(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSessionInsights returns the narrative bundle for a completed session
func (h *SurveyHandler) GetSessionInsights(c *gin.Context) {
	sessionID := parseIDParam(c, "session_id")
	if sessionID == 0 {
		return
	}

	bundle, err := h.insightService.GetSessionInsights(c.Request.Context(), sessionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bundle)
}
