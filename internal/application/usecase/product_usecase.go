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

// ProductUseCase casos de uso CRUD para productos. El stock solo lo muta el
// motor de órdenes (descuento condicional); aquí la baja es lógica, nunca física.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto en la empresa del actor. (empresa, nombre) es único.
func (uc *ProductUseCase) Create(actor authz.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !authz.CanProduct(actor, authz.ActionAdd, nil) {
		return nil, domain.ErrForbidden
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndName(actor.CompanyID, in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	createdBy := actor.ID
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		Name:      in.Name,
		Price:     in.Price.Round(2),
		Stock:     in.Stock,
		IsActive:  true,
		CreatedBy: &createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto aplicando aislamiento por empresa.
func (uc *ProductUseCase) GetByID(actor authz.Actor, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsSuperuser && product.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre/precio. Stock e IsActive no se tocan por aquí.
func (uc *ProductUseCase) Update(actor authz.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsSuperuser && product.CompanyID != actor.CompanyID {
		return nil, domain.ErrNotFound
	}
	if !authz.CanProduct(actor, authz.ActionEdit, &authz.ProductTarget{CompanyID: product.CompanyID}) {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		if dup, _ := uc.repo.GetByCompanyAndName(product.CompanyID, *in.Name); dup != nil && dup.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		product.Price = in.Price.Round(2)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos activos de la empresa del actor (paginado).
func (uc *ProductUseCase) List(actor authz.Actor, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByCompany(actor.CompanyID, true, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// BulkDeactivate marca productos como inactivos (baja lógica masiva), scoped a
// la empresa del actor: IDs ajenos simplemente no se afectan.
func (uc *ProductUseCase) BulkDeactivate(actor authz.Actor, in dto.BulkDeactivateRequest) (*dto.BulkDeactivateResponse, error) {
	if !authz.CanProduct(actor, authz.ActionDelete, &authz.ProductTarget{CompanyID: actor.CompanyID}) {
		return nil, domain.ErrForbidden
	}
	if len(in.ProductIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	scope := actor.CompanyID
	if actor.IsSuperuser {
		scope = "" // sin scoping
	}
	count, err := uc.repo.Deactivate(in.ProductIDs, scope)
	if err != nil {
		return nil, err
	}
	return &dto.BulkDeactivateResponse{
		Count:   count,
		Message: "productos marcados como inactivos",
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		IsActive:  p.IsActive,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
