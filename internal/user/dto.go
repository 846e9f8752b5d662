package user

import (
	"errors"
	"strings"
	"unicode"
)

// CreateUserDTO registers a member. New members start inactive and cannot
// authenticate until an admin activates them; is_active lets an admin
// activate at creation time.
type CreateUserDTO struct {
	NPM      string `json:"npm"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Position string `json:"position"`
	IsActive bool   `json:"is_active"`
}

func (dto CreateUserDTO) Validate() error {
	if strings.TrimSpace(dto.NPM) == "" {
		return errors.New("npm is required")
	}
	for _, r := range dto.NPM {
		if !unicode.IsDigit(r) {
			return errors.New("npm must contain digits only")
		}
	}
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type UpdateUserDTO struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// AssignmentDTO updates a member's board assignment: role drives
// authorization, position is a display label.
type AssignmentDTO struct {
	Role     string `json:"role"`
	Position string `json:"position"`
}

func (dto AssignmentDTO) Validate() error {
	if strings.TrimSpace(dto.Role) == "" {
		return errors.New("role is required")
	}
	return nil
}
