package usecase_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ordena-api/internal/application/dto"
	"github.com/jhoicas/ordena-api/internal/application/usecase"
	"github.com/jhoicas/ordena-api/internal/domain"
	"github.com/jhoicas/ordena-api/internal/domain/authz"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
)

const (
	companyA = "00000000-0000-0000-0000-00000000000a"
	companyB = "00000000-0000-0000-0000-00000000000b"
)

// fake mínimo de ProductRepository para los casos de uso CRUD.
type productRepoFake struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newProductRepoFake() *productRepoFake {
	return &productRepoFake{products: map[string]*entity.Product{}}
}

func (r *productRepoFake) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *productRepoFake) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepoFake) GetByCompanyAndName(companyID, name string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.CompanyID == companyID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepoFake) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *productRepoFake) ListByCompany(companyID string, activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID != companyID || (activeOnly && !p.IsActive) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *productRepoFake) DecrementStock(productID string, qty int64) (int64, error) {
	panic("el CRUD de productos no descuenta stock")
}

func (r *productRepoFake) Deactivate(ids []string, companyID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		if companyID != "" && p.CompanyID != companyID {
			continue
		}
		if p.IsActive {
			p.IsActive = false
			n++
		}
	}
	return n, nil
}

func adminOf(companyID string) authz.Actor {
	return authz.Actor{ID: "adm", CompanyID: companyID, Role: entity.RoleAdmin, IsStaff: true}
}

func TestProductCreate_RedondeaPrecioYMarcaCreador(t *testing.T) {
	repo := newProductRepoFake()
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.Create(adminOf(companyA), dto.CreateProductRequest{
		Name:  "Teclado",
		Price: decimal.RequireFromString("19.999"),
		Stock: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "20.00", out.Price.StringFixed(2))
	assert.True(t, out.IsActive)
	require.NotNil(t, out.CreatedBy)
	assert.Equal(t, "adm", *out.CreatedBy)
}

func TestProductCreate_NombreDuplicadoEnLaEmpresa(t *testing.T) {
	repo := newProductRepoFake()
	uc := usecase.NewProductUseCase(repo)
	actor := adminOf(companyA)

	_, err := uc.Create(actor, dto.CreateProductRequest{Name: "Teclado", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = uc.Create(actor, dto.CreateProductRequest{Name: "Teclado", Price: decimal.NewFromInt(2)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo nombre en OTRA empresa sí es válido
	_, err = uc.Create(adminOf(companyB), dto.CreateProductRequest{Name: "Teclado", Price: decimal.NewFromInt(3)})
	assert.NoError(t, err)
}

func TestProductCreate_ViewerDenegado(t *testing.T) {
	repo := newProductRepoFake()
	uc := usecase.NewProductUseCase(repo)
	viewer := authz.Actor{ID: "v", CompanyID: companyA, Role: entity.RoleViewer, IsStaff: true}

	_, err := uc.Create(viewer, dto.CreateProductRequest{Name: "Teclado", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestProductGetByID_AisladoPorEmpresa(t *testing.T) {
	repo := newProductRepoFake()
	uc := usecase.NewProductUseCase(repo)

	created, err := uc.Create(adminOf(companyA), dto.CreateProductRequest{Name: "Mouse", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)

	_, err = uc.GetByID(adminOf(companyB), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.GetByID(adminOf(companyA), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, out.ID)
}

func TestProductBulkDeactivate_ScopedYSoloAdmin(t *testing.T) {
	repo := newProductRepoFake()
	uc := usecase.NewProductUseCase(repo)

	mine, err := uc.Create(adminOf(companyA), dto.CreateProductRequest{Name: "Mío", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	foreign, err := uc.Create(adminOf(companyB), dto.CreateProductRequest{Name: "Ajeno", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	// El operador no puede dar de baja
	operator := authz.Actor{ID: "op", CompanyID: companyA, Role: entity.RoleOperator, IsStaff: true}
	_, err = uc.BulkDeactivate(operator, dto.BulkDeactivateRequest{ProductIDs: []string{mine.ID}})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// IDs ajenos simplemente no se afectan
	out, err := uc.BulkDeactivate(adminOf(companyA), dto.BulkDeactivateRequest{ProductIDs: []string{mine.ID, foreign.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Count)

	deactivated, _ := repo.GetByID(mine.ID)
	assert.False(t, deactivated.IsActive)
	untouched, _ := repo.GetByID(foreign.ID)
	assert.True(t, untouched.IsActive)

	// Lista por defecto solo activos
	list, err := uc.List(adminOf(companyA), 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
