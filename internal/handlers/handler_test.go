package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Criterio-inc/mognadsmataren/internal/services"
	"github.com/Criterio-inc/mognadsmataren/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProjectService overrides only what a test reaches; everything else
// panics through the nil embedded interface.
type stubProjectService struct {
	services.ProjectService
	deleteErr error
}

func (s stubProjectService) Delete(ctx context.Context, id uint, userID string) error {
	return s.deleteErr
}

func newTestContext(t *testing.T, method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func TestDeleteProjectSuccessEnvelope(t *testing.T) {
	h := NewProjectHandler(stubProjectService{}, nil, nil, utils.NewValidator(), utils.NewDevelopmentLogger())

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/projects/3")
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Set("user_id", "consultant-1")

	h.DeleteProject(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Project deleted successfully", resp.Message)
}

func TestDeleteProjectRequiresAuth(t *testing.T) {
	h := NewProjectHandler(stubProjectService{}, nil, nil, utils.NewValidator(), utils.NewDevelopmentLogger())

	c, w := newTestContext(t, http.MethodDelete, "/api/v1/projects/3")
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	h.DeleteProject(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleServiceErrorMapping(t *testing.T) {
	h := NewBaseHandler(utils.NewDevelopmentLogger())

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"project not found", services.ErrProjectNotFound, http.StatusNotFound},
		{"session not found", services.ErrSessionNotFound, http.StatusNotFound},
		{"project closed", services.ErrProjectClosed, http.StatusConflict},
		{"project not active", services.ErrProjectNotActive, http.StatusConflict},
		{"session completed", services.ErrSessionCompleted, http.StatusConflict},
		{"report not ready", services.ErrProjectReportNotReady, http.StatusConflict},
		{"unknown question", services.ErrUnknownQuestion, http.StatusBadRequest},
		{"answer out of range", services.ErrAnswerValueOutOfRange, http.StatusBadRequest},
		{"permission", services.NewPermissionError("u1", 1, "project", "read", "not the project owner"), http.StatusForbidden},
		{"business rule", services.NewBusinessRuleError("project_has_sessions", "cannot delete", nil), http.StatusUnprocessableEntity},
		{"incomplete assessment", &services.IncompleteAssessmentError{Answered: 12, Total: 32}, http.StatusUnprocessableEntity},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodGet, "/api/v1/projects/1")
			h.handleServiceError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandleServiceErrorIncompleteDetails(t *testing.T) {
	h := NewBaseHandler(utils.NewDevelopmentLogger())

	c, w := newTestContext(t, http.MethodPost, "/api/v1/sessions/7/complete")
	h.handleServiceError(c, &services.IncompleteAssessmentError{Answered: 12, Total: 32})

	var resp struct {
		Details struct {
			Answered int `json:"answered"`
			Total    int `json:"total"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Details.Answered)
	assert.Equal(t, 32, resp.Details.Total)
}
