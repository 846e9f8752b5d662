package report

import "time"

// MonthlyReport is a saved financial summary. Its totals are a snapshot
// taken when the report was created or its period last changed; ledger
// writes after that point do not touch the stored numbers.
type MonthlyReport struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	Title            string     `json:"title" gorm:"not null"`
	ReportDate       time.Time  `json:"report_date" gorm:"type:date;not null"`
	PeriodStart      *time.Time `json:"period_start" gorm:"type:date"`
	PeriodEnd        *time.Time `json:"period_end" gorm:"type:date"`
	TotalKas         int64      `json:"total_kas"`
	TotalIncome      int64      `json:"total_income"`
	TotalExpense     int64      `json:"total_expense"`
	RemainingBalance int64      `json:"remaining_balance"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (MonthlyReport) TableName() string {
	return "monthly_reports"
}

// CoversDate reports whether the entry date falls inside this report's
// period. Open-ended reports cover nothing.
func (r *MonthlyReport) CoversDate(date time.Time) bool {
	if r.PeriodStart == nil || r.PeriodEnd == nil {
		return false
	}
	return !date.Before(*r.PeriodStart) && !date.After(*r.PeriodEnd)
}
