package billing

import (
	"sort"
	"time"

	"github.com/raindropsacademy/tuition-backend/internal/model"
)

// ReportRow is one active enrollment annotated with its computed payment state.
type ReportRow struct {
	Enrollment     *model.Enrollment `json:"enrollment"`
	Student        *model.User       `json:"student"`
	Course         *model.Course     `json:"course"`
	MonthlyFee     float64           `json:"monthly_fee"`
	Classification Classification    `json:"classification"`
}

// BuildReport classifies the given enrollments and orders them for the
// dashboard: overdue first (most overdue leading), then ascending days until
// due, enrollments without a scheduled due date last. The sort is stable, so
// ties keep their input order. The input is not mutated.
func BuildReport(enrollments []model.Enrollment, now time.Time) []ReportRow {
	rows := make([]ReportRow, 0, len(enrollments))
	for i := range enrollments {
		e := &enrollments[i]
		row := ReportRow{
			Enrollment:     e,
			Student:        e.User,
			Course:         e.Course,
			Classification: Classify(e.NextPaymentDue, now),
		}
		if e.Course != nil {
			row.MonthlyFee = e.Course.TuitionFee
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return reportRank(rows[i]) < reportRank(rows[j])
	})

	return rows
}

// reportRank orders rows by the signed day delta, pushing unscheduled rows
// past every scheduled one.
func reportRank(r ReportRow) int {
	if r.Classification.Status == StatusPending {
		return int(^uint(0) >> 1)
	}
	return r.Classification.DaysUntilDue
}
