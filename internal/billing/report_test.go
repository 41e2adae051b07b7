package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportEnrollment(student, course string, fee float64, due *time.Time) model.Enrollment {
	return model.Enrollment{
		ID:             uuid.New(),
		Status:         model.EnrollmentActive,
		NextPaymentDue: due,
		User:           &model.User{ID: uuid.New(), FullName: student},
		Course:         &model.Course{ID: uuid.New(), Name: course, TuitionFee: fee},
	}
}

func TestBuildReportOrdersByUrgency(t *testing.T) {
	now := mustParse(t, "2024-03-15T12:00:00Z")

	overdue := now.Add(-5 * 24 * time.Hour)
	dueSoon := now.Add(2 * 24 * time.Hour)
	current := now.Add(20 * 24 * time.Hour)

	enrollments := []model.Enrollment{
		reportEnrollment("Current Student", "Islamic Studies", 180, &current),
		reportEnrollment("Overdue Student", "Learning Quran", 150, &overdue),
		reportEnrollment("Unscheduled Student", "Tajweed Mastery", 120, nil),
		reportEnrollment("Due Soon Student", "Memorizing Quran", 200, &dueSoon),
	}

	rows := BuildReport(enrollments, now)

	require.Len(t, rows, 4)
	assert.Equal(t, "Overdue Student", rows[0].Student.FullName)
	assert.Equal(t, "Due Soon Student", rows[1].Student.FullName)
	assert.Equal(t, "Current Student", rows[2].Student.FullName)
	assert.Equal(t, "Unscheduled Student", rows[3].Student.FullName)

	assert.Equal(t, StatusOverdue, rows[0].Classification.Status)
	assert.Equal(t, 5, rows[0].Classification.OverdueDays)
	assert.Equal(t, StatusDueSoon, rows[1].Classification.Status)
	assert.Equal(t, StatusCurrent, rows[2].Classification.Status)
	assert.Equal(t, StatusPending, rows[3].Classification.Status)

	assert.Equal(t, 150.0, rows[0].MonthlyFee)
}

func TestBuildReportStableOnTies(t *testing.T) {
	now := mustParse(t, "2024-03-15T12:00:00Z")
	due := now.Add(2 * 24 * time.Hour)

	enrollments := []model.Enrollment{
		reportEnrollment("First In", "Learning Quran", 150, &due),
		reportEnrollment("Second In", "Tajweed Mastery", 120, &due),
	}

	rows := BuildReport(enrollments, now)

	require.Len(t, rows, 2)
	assert.Equal(t, "First In", rows[0].Student.FullName)
	assert.Equal(t, "Second In", rows[1].Student.FullName)
}

func TestBuildReportEmpty(t *testing.T) {
	rows := BuildReport(nil, time.Now().UTC())

	assert.Empty(t, rows)
}
