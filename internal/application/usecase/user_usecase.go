package usecase

import (
	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/domain"
	"github.com/jhoicas/ordena-api/internal/domain/authz"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
	"github.com/jhoicas/ordena-api/internal/domain/repository"
)

// UserUseCase gestión de usuarios: listado por empresa y cambio de rol.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// ListByCompany lista usuarios de la empresa del actor.
func (uc *UserUseCase) ListByCompany(actor authz.Actor, limit, offset int) (*dto.UserListResponse, error) {
	list, err := uc.repo.ListByCompany(actor.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.UserResponse{
			ID:          u.ID,
			CompanyID:   u.CompanyID,
			Email:       u.Email,
			Name:        u.Name,
			Role:        u.Role,
			IsSuperuser: u.IsSuperuser,
			IsStaff:     u.IsStaff,
			Status:      u.Status,
			CreatedAt:   u.CreatedAt,
			UpdatedAt:   u.UpdatedAt,
		})
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateRole cambia el rol de un usuario. Solo admins (o superusuarios), y
// solo dentro de su propia empresa.
func (uc *UserUseCase) UpdateRole(actor authz.Actor, userID string, in dto.UpdateRoleRequest) error {
	if !entity.ValidRole(in.Role) {
		return domain.ErrInvalidInput
	}
	if !actor.IsSuperuser && actor.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !actor.IsSuperuser && user.CompanyID != actor.CompanyID {
		return domain.ErrUserNotFound
	}
	return uc.repo.UpdateRole(userID, in.Role)
}
