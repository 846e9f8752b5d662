package income

import (
	"errors"
	"time"
)

type CreateIncomeDTO struct {
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

func (dto CreateIncomeDTO) Validate() error {
	if dto.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if dto.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

type UpdateIncomeDTO struct {
	Amount      *int64     `json:"amount,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

func (dto UpdateIncomeDTO) Validate() error {
	if dto.Amount != nil && *dto.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	return nil
}
