package expense

import (
	"errors"
	"time"
)

type CreateExpenseDTO struct {
	Amount      int64     `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

func (dto CreateExpenseDTO) Validate() error {
	if dto.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if dto.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

type UpdateExpenseDTO struct {
	Amount      *int64     `json:"amount,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

func (dto UpdateExpenseDTO) Validate() error {
	if dto.Amount != nil && *dto.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	return nil
}
