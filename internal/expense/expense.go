package expense

import "time"

// Expense is money spent by the organization: consumption, equipment,
// activity costs.
type Expense struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Amount      int64     `json:"amount" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"type:date;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Expense) TableName() string {
	return "expenses"
}
