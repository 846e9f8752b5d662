package postgres

import (
	"context"
	"time"

	"github.com/mputra/treasury-management/internal/kas"
	"gorm.io/gorm"
)

// KasRepository implements the kas.Repository interface using GORM
type KasRepository struct {
	db *gorm.DB
}

func NewKasRepository(db *gorm.DB) kas.Repository {
	return &KasRepository{db: db}
}

func (r *KasRepository) Create(entry *kas.Kas) error {
	return r.db.Create(entry).Error
}

func (r *KasRepository) GetByID(id int64) (*kas.Kas, error) {
	var entry kas.Kas
	err := r.db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *KasRepository) GetAll(limit, offset int) ([]*kas.Kas, error) {
	var entries []*kas.Kas
	err := r.db.Order("date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *KasRepository) GetByUserID(userID int64, limit, offset int) ([]*kas.Kas, error) {
	var entries []*kas.Kas
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *KasRepository) Update(entry *kas.Kas) error {
	entry.UpdatedAt = time.Now()
	return r.db.Save(entry).Error
}

func (r *KasRepository) Delete(id int64) error {
	return r.db.Delete(&kas.Kas{}, id).Error
}

// SumAmountBetween sums the amount column over the closed date interval.
// An interval matching no rows sums to zero; query failures propagate.
func (r *KasRepository) SumAmountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&kas.Kas{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&total).Error
	return total, err
}
