package postgres

import (
	"context"
	"time"

	"github.com/mputra/treasury-management/internal/report"
	"gorm.io/gorm"
)

// ReportRepository implements the report.Repository interface using GORM
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.Repository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(rep *report.MonthlyReport) error {
	return r.db.Create(rep).Error
}

func (r *ReportRepository) GetByID(id int64) (*report.MonthlyReport, error) {
	var rep report.MonthlyReport
	err := r.db.Where("id = ?", id).First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) GetAll(limit, offset int) ([]*report.MonthlyReport, error) {
	var reports []*report.MonthlyReport
	err := r.db.Order("report_date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	return reports, err
}

// GetByPeriodContaining finds reports whose period covers the given
// date. Open-ended reports never match.
func (r *ReportRepository) GetByPeriodContaining(ctx context.Context, date time.Time) ([]*report.MonthlyReport, error) {
	var reports []*report.MonthlyReport
	err := r.db.WithContext(ctx).
		Where("period_start IS NOT NULL AND period_end IS NOT NULL").
		Where("? BETWEEN period_start AND period_end", date).
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) Update(rep *report.MonthlyReport) error {
	rep.UpdatedAt = time.Now()
	return r.db.Save(rep).Error
}

func (r *ReportRepository) Delete(id int64) error {
	return r.db.Delete(&report.MonthlyReport{}, id).Error
}
