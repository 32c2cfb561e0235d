package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/careerkit/careerkit-service/internal/models"
	"github.com/careerkit/careerkit-service/internal/repositories"
)

const (
	rosterSheet      = "Roster"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	rosterTimeLayout = "2006-01-02 15:04"
)

var rosterHeaders = []string{"Name", "Email", "Status", "Payment Method", "Transaction ID", "Enrolled At", "Approved At", "Notes"}

type exportService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

func (s *exportService) ExportRoster(ctx context.Context, courseID uint, actorID string) (*RosterExport, error) {
	course, err := loadOwnedCourse(ctx, s.repo, s.db, courseID, actorID, "export_roster")
	if err != nil {
		return nil, err
	}

	enrollments, err := s.repo.Enrollment().ListByCourse(ctx, s.db, courseID, repositories.EnrollmentFilters{SortOrder: "asc"})
	if err != nil {
		return nil, fmt.Errorf("failed to list course enrollments: %w", err)
	}

	data, err := buildRosterWorkbook(enrollments)
	if err != nil {
		return nil, fmt.Errorf("failed to build roster: %w", err)
	}

	s.logger.Info("Roster exported", "course_id", courseID, "rows", len(enrollments))

	return &RosterExport{
		FileName:    fmt.Sprintf("course-%d-roster-%s.xlsx", course.ID, time.Now().Format("20060102")),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

func buildRosterWorkbook(enrollments []*models.CourseEnrollment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, err
	}

	for i, h := range rosterHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(rosterSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, e := range enrollments {
		row := []interface{}{
			"", "",
			string(e.Status),
			derefString(e.PaymentMethod),
			derefString(e.TransactionID),
			e.EnrolledAt.Format(rosterTimeLayout),
			"",
			derefString(e.Notes),
		}
		if e.User != nil {
			row[0] = e.User.Name
			row[1] = e.User.Email
		} else {
			row[0] = e.UserID
		}
		if e.ApprovedAt != nil {
			row[6] = e.ApprovedAt.Format(rosterTimeLayout)
		}

		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(rosterSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
