package user

import (
	"log/slog"

	"github.com/mputra/treasury-management/internal"
	"github.com/mputra/treasury-management/internal/auth"
)

type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByNPM(npm string) (*User, error)
	GetAll(limit, offset int) ([]*User, error)
	Update(u *User) error
	Delete(id int64) error
	Restore(id int64) error
	ForceDelete(id int64) error
}

// Service handles member management. Member records are the most
// restricted entity: even viewing is limited to admin and super admin.
type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) CreateMember(role auth.Role, dto CreateUserDTO) (*User, error) {
	if !auth.Authorize(role, auth.ActionCreate, auth.EntityMember) {
		s.logger.Warn("member create denied", "role", string(role))
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByNPM(dto.NPM); err == nil && existing != nil {
		return nil, internal.NewConflictError("member with this npm already exists", internal.ErrCodeDuplicateNPM)
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	memberRole := string(auth.NormalizeRole(dto.Role))
	if dto.Role == "" {
		memberRole = string(auth.RoleUser)
	}

	u := &User{
		NPM:          dto.NPM,
		Name:         dto.Name,
		PasswordHash: hash,
		Role:         memberRole,
		Position:     dto.Position,
		IsActive:     dto.IsActive,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create member", "error", err)
		return nil, internal.NewInternalError("failed to create member", err)
	}

	s.logger.Info("member created", "member_id", u.ID, "npm", u.NPM, "role", u.Role)
	return u, nil
}

func (s *Service) GetMember(role auth.Role, id int64) (*User, error) {
	if !auth.Authorize(role, auth.ActionView, auth.EntityMember) {
		return nil, internal.ErrActionForbidden
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrMemberNotFound
	}
	return u, nil
}

func (s *Service) ListMembers(role auth.Role, limit, offset int) ([]*User, error) {
	if !auth.Authorize(role, auth.ActionViewAny, auth.EntityMember) {
		return nil, internal.ErrActionForbidden
	}

	members, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list members", "error", err)
		return nil, internal.NewInternalError("failed to list members", err)
	}
	return members, nil
}

func (s *Service) UpdateMember(role auth.Role, id int64, dto UpdateUserDTO) (*User, error) {
	if !auth.Authorize(role, auth.ActionUpdate, auth.EntityMember) {
		s.logger.Warn("member update denied", "role", string(role), "member_id", id)
		return nil, internal.ErrActionForbidden
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrMemberNotFound
	}

	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.IsActive != nil {
		if *dto.IsActive {
			u.Activate()
		} else {
			u.Deactivate()
		}
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update member", "error", err, "member_id", id)
		return nil, internal.NewInternalError("failed to update member", err)
	}

	return u, nil
}

// UpdateAssignment changes a member's role and board position. The stored
// role is normalized so authorization sees canonical values.
func (s *Service) UpdateAssignment(role auth.Role, id int64, dto AssignmentDTO) (*User, error) {
	if !auth.Authorize(role, auth.ActionUpdate, auth.EntityMember) {
		s.logger.Warn("member assignment denied", "role", string(role), "member_id", id)
		return nil, internal.ErrActionForbidden
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrMemberNotFound
	}

	u.Role = string(auth.NormalizeRole(dto.Role))
	u.Position = dto.Position

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update member assignment", "error", err, "member_id", id)
		return nil, internal.NewInternalError("failed to update member assignment", err)
	}

	s.logger.Info("member assignment updated", "member_id", u.ID, "role", u.Role, "position", u.Position)
	return u, nil
}

// DeleteMember soft deletes: the row keeps its historical kas entries and
// can be restored later.
func (s *Service) DeleteMember(role auth.Role, id int64) error {
	if !auth.Authorize(role, auth.ActionDelete, auth.EntityMember) {
		s.logger.Warn("member delete denied", "role", string(role), "member_id", id)
		return internal.ErrActionForbidden
	}

	if _, err := s.repo.GetByID(id); err != nil {
		return internal.ErrMemberNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete member", "error", err, "member_id", id)
		return internal.NewInternalError("failed to delete member", err)
	}

	return nil
}

func (s *Service) RestoreMember(role auth.Role, id int64) error {
	if !auth.Authorize(role, auth.ActionRestore, auth.EntityMember) {
		s.logger.Warn("member restore denied", "role", string(role), "member_id", id)
		return internal.ErrActionForbidden
	}

	if err := s.repo.Restore(id); err != nil {
		s.logger.Error("failed to restore member", "error", err, "member_id", id)
		return internal.ErrMemberNotFound
	}

	return nil
}

// ForceDeleteMember removes the row permanently, soft-deleted or not.
func (s *Service) ForceDeleteMember(role auth.Role, id int64) error {
	if !auth.Authorize(role, auth.ActionForceDelete, auth.EntityMember) {
		s.logger.Warn("member force delete denied", "role", string(role), "member_id", id)
		return internal.ErrActionForbidden
	}

	if err := s.repo.ForceDelete(id); err != nil {
		s.logger.Error("failed to force delete member", "error", err, "member_id", id)
		return internal.NewInternalError("failed to force delete member", err)
	}

	return nil
}
