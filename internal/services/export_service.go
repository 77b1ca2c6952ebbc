package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
	"github.com/Criterio-inc/mognadsmataren/internal/models"
	"github.com/Criterio-inc/mognadsmataren/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportProjectResults renders all sessions of a project into an Excel
// workbook: one summary sheet and one row per session with its dimension
// scores. Returns the file bytes and a suggested filename.
func (s *exportService) ExportProjectResults(ctx context.Context, projectID uint, userID string) ([]byte, string, error) {
	s.logger.Info("Exporting project results", "project_id", projectID, "user_id", userID)

	project, err := s.repo.Project().GetByID(ctx, projectID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, "", ErrProjectNotFound
		}
		return nil, "", fmt.Errorf("failed to get project: %w", err)
	}
	if project.CreatedBy != userID {
		return nil, "", NewPermissionError(userID, projectID, "project", "export", "not the project owner")
	}

	sessions, _, err := s.repo.Session().GetByProject(ctx, projectID, repositories.SessionFilters{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to load sessions: %w", err)
	}

	locale := assessment.ParseLocale(project.Locale)

	f := excelize.NewFile()
	if err := s.writeSummarySheet(ctx, f, project, locale); err != nil {
		return nil, "", err
	}
	if err := s.writeSessionsSheet(f, sessions, locale); err != nil {
		return nil, "", err
	}

	// Drop the default sheet excelize creates.
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("%s-results-%s.xlsx", project.ShareCode, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *exportService) writeSummarySheet(ctx context.Context, f *excelize.File, project *models.Project, locale assessment.Locale) error {
	sheetName := "Summary"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	rows := [][]interface{}{
		{"Project", project.Name},
		{"Client", project.ClientName},
		{"Status", string(project.Status)},
		{"Share code", project.ShareCode},
		{"Exported at", time.Now().Format("2006-01-02 15:04:05")},
	}

	stats, err := s.repo.Project().GetStats(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("failed to load project stats: %w", err)
	}
	rows = append(rows,
		[]interface{}{"Total sessions", stats.TotalSessions},
		[]interface{}{"Completed sessions", stats.CompletedSessions},
		[]interface{}{"Completion rate", stats.CompletionRate},
	)

	aggregate, ok, err := AggregateProjectScores(ctx, s.repo, project.ID)
	if err != nil {
		return err
	}
	if ok {
		level := assessment.LevelByNumber(aggregate.MaturityLevel)
		rows = append(rows,
			[]interface{}{"Overall score", aggregate.OverallScore},
			[]interface{}{"Maturity level", fmt.Sprintf("%d - %s", aggregate.MaturityLevel, level.Name[locale])},
		)
		for _, dim := range assessment.Dimensions {
			rows = append(rows, []interface{}{dim.Name(locale), aggregate.DimensionScores[dim]})
		}
	}

	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+1)
			f.SetCellValue(sheetName, cell, value)
		}
	}
	return nil
}

func (s *exportService) writeSessionsSheet(f *excelize.File, sessions []*models.AssessmentSession, locale assessment.Locale) error {
	sheetName := "Sessions"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{"Session ID", "Respondent", "Status", "Started At", "Completed At", "Overall Score", "Maturity Level"}
	for _, dim := range assessment.Dimensions {
		headers = append(headers, dim.Name(locale))
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell name: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, sess := range sessions {
		row := []interface{}{
			sess.ID,
			stringOrEmpty(sess.RespondentName),
			string(sess.Status),
			sess.StartedAt.Format("2006-01-02 15:04:05"),
		}
		if sess.CompletedAt != nil {
			row = append(row, sess.CompletedAt.Format("2006-01-02 15:04:05"))
		} else {
			row = append(row, "")
		}
		if sess.OverallScore != nil {
			row = append(row, *sess.OverallScore)
		} else {
			row = append(row, "")
		}
		if sess.MaturityLevel != nil {
			row = append(row, *sess.MaturityLevel)
		} else {
			row = append(row, "")
		}

		if len(sess.ScoreSet) > 0 {
			scores, err := unmarshalScoreSet(sess.ScoreSet)
			if err != nil {
				s.logger.Warn("Skipping corrupt score set in export", "session_id", sess.ID, "error", err)
				scores.DimensionScores = nil
			}
			for _, dim := range assessment.Dimensions {
				if score, found := scores.DimensionScores[dim]; found {
					row = append(row, score)
				} else {
					row = append(row, "")
				}
			}
		} else {
			for range assessment.Dimensions {
				row = append(row, "")
			}
		}

		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				return fmt.Errorf("failed to resolve cell name: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}
	return nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
