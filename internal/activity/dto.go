package activity

import (
	"errors"
	"strings"
	"time"
)

type CreateActivityDTO struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
}

func (dto CreateActivityDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	if dto.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

type UpdateActivityDTO struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

func (dto UpdateActivityDTO) Validate() error {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}
