package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/domain"
	"github.com/jhoicas/ordena-api/internal/domain/authz"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
	"github.com/jhoicas/ordena-api/internal/domain/repository"
)

// CompanyUseCase casos de uso para empresas (tenants). Crear empresas es
// exclusivo del superusuario; los usuarios regulares solo ven la suya.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa (solo superusuario).
func (uc *CompanyUseCase) Create(actor authz.Actor, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !actor.IsSuperuser {
		return nil, domain.ErrForbidden
	}
	existing, _ := uc.repo.GetByName(in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa aplicando aislamiento: un no-superusuario solo ve la propia.
func (uc *CompanyUseCase) GetByID(actor authz.Actor, id string) (*dto.CompanyResponse, error) {
	if !actor.IsSuperuser && actor.CompanyID != id {
		return nil, domain.ErrNotFound
	}
	company, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista empresas: todas para el superusuario, la propia para el resto.
func (uc *CompanyUseCase) List(actor authz.Actor, limit, offset int) (*dto.CompanyListResponse, error) {
	if !actor.IsSuperuser {
		own, err := uc.GetByID(actor, actor.CompanyID)
		if err != nil {
			return nil, err
		}
		return &dto.CompanyListResponse{
			Items: []dto.CompanyResponse{*own},
			Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: 1},
		}, nil
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
