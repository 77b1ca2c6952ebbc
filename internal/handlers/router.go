package handlers

import (
	"net/http"

	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"github.com/Criterio-inc/mognadsmataren/internal/services"
	"github.com/Criterio-inc/mognadsmataren/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	projectHandler *ProjectHandler
	surveyHandler  *SurveyHandler
	repo           repositories.Repository
	logger         utils.Logger
}

type Services struct {
	Project services.ProjectService
	Survey  services.SurveyService
	Insight services.InsightService
	Export  services.ExportService
}

func NewHandlerManager(
	svcs Services,
	repo repositories.Repository,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		projectHandler: NewProjectHandler(svcs.Project, svcs.Insight, svcs.Export, validator, logger),
		surveyHandler:  NewSurveyHandler(svcs.Survey, svcs.Insight, validator, logger),
		repo:           repo,
		logger:         logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		// Consultant routes, casdoor token required
		projects := v1.Group("/projects")
		projects.Use(AuthMiddleware(hm.logger))
		{
			projects.POST("", hm.projectHandler.CreateProject)
			projects.GET("", hm.projectHandler.ListProjects)
			projects.GET("/:id", hm.projectHandler.GetProject)
			projects.PUT("/:id", hm.projectHandler.UpdateProject)
			projects.DELETE("/:id", hm.projectHandler.DeleteProject)

			// Lifecycle
			projects.POST("/:id/activate", hm.projectHandler.ActivateProject)
			projects.POST("/:id/close", hm.projectHandler.CloseProject)
			projects.POST("/:id/share-code", hm.projectHandler.RegenerateShareCode)

			// Reporting
			projects.GET("/:id/report", hm.projectHandler.GetProjectReport)
			projects.GET("/:id/insights", hm.projectHandler.GetProjectInsights)
			projects.GET("/:id/export", hm.projectHandler.ExportProjectResults)
		}

		// Public respondent routes, share code is the only credential
		survey := v1.Group("/survey")
		{
			survey.GET("/:code", hm.surveyHandler.GetSurvey)
			survey.POST("/:code/sessions", hm.surveyHandler.StartSession)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("/:session_id/answers", hm.surveyHandler.SubmitAnswer)
			sessions.PUT("/:session_id/answers", hm.surveyHandler.SubmitAnswers)
			sessions.POST("/:session_id/complete", hm.surveyHandler.CompleteSession)
			sessions.GET("/:session_id/result", hm.surveyHandler.GetResult)
			sessions.GET("/:session_id/insights", hm.surveyHandler.GetSessionInsights)
		}
	}
}

func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "mognadsmataren",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "mognadsmataren",
	})
}
