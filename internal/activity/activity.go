package activity

import "time"

// Activity is an organization event that kas contributions can reference.
type Activity struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" gorm:"type:date;not null"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Activity) TableName() string {
	return "activities"
}
