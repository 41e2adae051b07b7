package service

import (
	"context"
	"time"

	"github.com/raindropsacademy/tuition-backend/internal/billing"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/repository"
)

type ReportService interface {
	// AdminReport lists every active enrollment with its computed payment
	// state, most urgent first.
	AdminReport(ctx context.Context) ([]*dto.ReportEntryResponse, error)
	// TeacherReport is the same view restricted to the teacher's own courses.
	TeacherReport(ctx context.Context, teacherID string) ([]*dto.ReportEntryResponse, error)
}

type reportService struct {
	enrollments repository.EnrollmentRepository
	now         func() time.Time
}

func NewReportService(enrollments repository.EnrollmentRepository) ReportService {
	return &reportService{
		enrollments: enrollments,
		now:         time.Now,
	}
}

func (s *reportService) AdminReport(ctx context.Context) ([]*dto.ReportEntryResponse, error) {
	enrollments, err := s.enrollments.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	return toReportResponse(billing.BuildReport(enrollments, s.now().UTC())), nil
}

func (s *reportService) TeacherReport(ctx context.Context, teacherID string) ([]*dto.ReportEntryResponse, error) {
	enrollments, err := s.enrollments.FindActiveByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return toReportResponse(billing.BuildReport(enrollments, s.now().UTC())), nil
}

func toReportResponse(rows []billing.ReportRow) []*dto.ReportEntryResponse {
	response := make([]*dto.ReportEntryResponse, 0, len(rows))
	for _, row := range rows {
		entry := &dto.ReportEntryResponse{
			EnrollmentID:   row.Enrollment.ID,
			MonthlyFee:     row.MonthlyFee,
			NextPaymentDue: row.Enrollment.NextPaymentDue,
			LastPaymentAt:  row.Enrollment.LastPaymentAt,
			Billing:        row.Classification,
		}
		if row.Student != nil {
			entry.StudentName = row.Student.FullName
			entry.StudentEmail = row.Student.Email
		}
		if row.Course != nil {
			entry.CourseName = row.Course.Name
		}
		response = append(response, entry)
	}

	return response
}
