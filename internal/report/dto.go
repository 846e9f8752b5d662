package report

import (
	"errors"
	"strings"
	"time"
)

type CreateReportDTO struct {
	Title       string     `json:"title"`
	ReportDate  time.Time  `json:"report_date"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
	Notes       string     `json:"notes"`
}

func (dto CreateReportDTO) Validate() error {
	if strings.TrimSpace(dto.Title) == "" {
		return errors.New("title is required")
	}
	if dto.ReportDate.IsZero() {
		return errors.New("report_date is required")
	}
	return nil
}

type UpdateReportDTO struct {
	Title       *string    `json:"title,omitempty"`
	ReportDate  *time.Time `json:"report_date,omitempty"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

func (dto UpdateReportDTO) Validate() error {
	if dto.Title != nil && strings.TrimSpace(*dto.Title) == "" {
		return errors.New("title cannot be empty")
	}
	return nil
}
