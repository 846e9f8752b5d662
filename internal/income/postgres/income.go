package postgres

import (
	"context"
	"time"

	"github.com/mputra/treasury-management/internal/income"
	"gorm.io/gorm"
)

// IncomeRepository implements the income.Repository interface using GORM
type IncomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) income.Repository {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Create(entry *income.Income) error {
	return r.db.Create(entry).Error
}

func (r *IncomeRepository) GetByID(id int64) (*income.Income, error) {
	var entry income.Income
	err := r.db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *IncomeRepository) GetAll(limit, offset int) ([]*income.Income, error) {
	var entries []*income.Income
	err := r.db.Order("date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *IncomeRepository) Update(entry *income.Income) error {
	entry.UpdatedAt = time.Now()
	return r.db.Save(entry).Error
}

func (r *IncomeRepository) Delete(id int64) error {
	return r.db.Delete(&income.Income{}, id).Error
}

func (r *IncomeRepository) SumAmountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&income.Income{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	return total, err
}
