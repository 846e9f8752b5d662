package kas

import (
	"time"
)

// Kas is one cash-box ledger entry: a contribution recorded against a member,
// optionally tied to an activity. Aggregation treats every amount as additive
// to the balance regardless of type; the schema does not enforce a sign.
type Kas struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	UserID     int64     `json:"user_id" gorm:"column:user_id;not null"`
	ActivityID *int64    `json:"activity_id,omitempty" gorm:"column:activity_id"`
	Amount     int64     `json:"amount" gorm:"not null"`
	Date       time.Time `json:"date" gorm:"type:date;not null"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

func (Kas) TableName() string {
	return "kas"
}

const (
	TypeInflow  = "inflow"
	TypeOutflow = "outflow"
)
