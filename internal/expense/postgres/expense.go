package postgres

import (
	"context"
	"time"

	"github.com/mputra/treasury-management/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(entry *expense.Expense) error {
	return r.db.Create(entry).Error
}

func (r *ExpenseRepository) GetByID(id int64) (*expense.Expense, error) {
	var entry expense.Expense
	err := r.db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ExpenseRepository) GetAll(limit, offset int) ([]*expense.Expense, error) {
	var entries []*expense.Expense
	err := r.db.Order("date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *ExpenseRepository) Update(entry *expense.Expense) error {
	entry.UpdatedAt = time.Now()
	return r.db.Save(entry).Error
}

func (r *ExpenseRepository) Delete(id int64) error {
	return r.db.Delete(&expense.Expense{}, id).Error
}

func (r *ExpenseRepository) SumAmountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&expense.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	return total, err
}
