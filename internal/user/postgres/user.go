package postgres

import (
	"time"

	"github.com/mputra/treasury-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM.
// Delete is a soft delete through gorm.DeletedAt; Restore and ForceDelete
// go through Unscoped to reach soft-deleted rows.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByNPM(npm string) (*user.User, error) {
	var u user.User
	err := r.db.Where("npm = ?", npm).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll(limit, offset int) ([]*user.User, error) {
	var users []*user.User
	err := r.db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&user.User{}, id).Error
}

func (r *UserRepository) Restore(id int64) error {
	result := r.db.Unscoped().
		Model(&user.User{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) ForceDelete(id int64) error {
	return r.db.Unscoped().Delete(&user.User{}, id).Error
}
