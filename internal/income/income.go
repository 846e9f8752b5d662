package income

import "time"

// Income is non-kas revenue: donations, sponsorships, and similar inflows.
type Income struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Amount      int64     `json:"amount" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"type:date;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Income) TableName() string {
	return "incomes"
}
