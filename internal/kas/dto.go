package kas

import (
	"errors"
	"time"
)

type CreateKasDTO struct {
	UserID     int64     `json:"user_id"`
	ActivityID *int64    `json:"activity_id,omitempty"`
	Amount     int64     `json:"amount"`
	Date       time.Time `json:"date"`
	Type       string    `json:"type"`
}

func (dto CreateKasDTO) Validate() error {
	if dto.UserID <= 0 {
		return errors.New("user_id is required")
	}
	if dto.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if dto.Date.IsZero() {
		return errors.New("date is required")
	}
	if dto.Type != "" && dto.Type != TypeInflow && dto.Type != TypeOutflow {
		return errors.New("type must be either 'inflow' or 'outflow'")
	}
	return nil
}

type UpdateKasDTO struct {
	ActivityID *int64     `json:"activity_id,omitempty"`
	Amount     *int64     `json:"amount,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Type       *string    `json:"type,omitempty"`
}

func (dto UpdateKasDTO) Validate() error {
	if dto.Amount != nil && *dto.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if dto.Type != nil && *dto.Type != TypeInflow && *dto.Type != TypeOutflow {
		return errors.New("type must be either 'inflow' or 'outflow'")
	}
	return nil
}
