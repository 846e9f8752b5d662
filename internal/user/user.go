package user

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered member of the organization. NPM is the student
// identity number and doubles as the login identifier. Role and Position
// together describe the member's board assignment.
type User struct {
	ID           int64          `json:"id" gorm:"primaryKey"`
	NPM          string         `json:"npm" gorm:"column:npm;uniqueIndex;not null"`
	Name         string         `json:"name" gorm:"not null"`
	PasswordHash string         `json:"-" gorm:"column:password_hash;not null"`
	Role         string         `json:"role" gorm:"not null;default:user"`
	Position     string         `json:"position"`
	IsActive     bool           `json:"is_active" gorm:"column:is_active;default:false"`
	CreatedAt    time.Time      `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"column:updated_at;default:now()"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
}

func (u *User) Activate() {
	u.IsActive = true
	u.UpdatedAt = time.Now()
}
