package postgres

import (
	"time"

	"github.com/mputra/treasury-management/internal/activity"
	"gorm.io/gorm"
)

// ActivityRepository implements the activity.Repository interface using GORM
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.Repository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(act *activity.Activity) error {
	return r.db.Create(act).Error
}

func (r *ActivityRepository) GetByID(id int64) (*activity.Activity, error) {
	var act activity.Activity
	err := r.db.Where("id = ?", id).First(&act).Error
	if err != nil {
		return nil, err
	}
	return &act, nil
}

func (r *ActivityRepository) GetByName(name string) (*activity.Activity, error) {
	var act activity.Activity
	err := r.db.Where("name = ?", name).First(&act).Error
	if err != nil {
		return nil, err
	}
	return &act, nil
}

func (r *ActivityRepository) GetAll(limit, offset int) ([]*activity.Activity, error) {
	var activities []*activity.Activity
	err := r.db.Order("date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&activities).Error
	return activities, err
}

func (r *ActivityRepository) Update(act *activity.Activity) error {
	act.UpdatedAt = time.Now()
	return r.db.Save(act).Error
}

func (r *ActivityRepository) Delete(id int64) error {
	return r.db.Delete(&activity.Activity{}, id).Error
}
