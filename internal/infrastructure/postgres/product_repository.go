package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ordena-api/internal/domain"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
	"github.com/jhoicas/ordena-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, name, price, stock, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.Name, product.Price, product.Stock,
		product.IsActive, product.CreatedBy, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, name, price, stock, is_active, created_by, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Price, &p.Stock, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByCompanyAndName obtiene un producto por empresa y nombre (el par es único).
func (r *ProductRepo) GetByCompanyAndName(companyID, name string) (*entity.Product, error) {
	query := `
		SELECT id, company_id, name, price, stock, is_active, created_by, created_at, updated_at
		FROM products WHERE company_id = $1 AND name = $2`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, companyID, name).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Price, &p.Stock, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return &p, nil
}

// Update actualiza nombre y precio. Stock e is_active no se tocan por aquí.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Price, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByCompany lista productos por empresa con paginación (opcionalmente solo activos).
func (r *ProductRepo) ListByCompany(companyID string, activeOnly bool, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, company_id, name, price, stock, is_active, created_by, created_at, updated_at
		FROM products
		WHERE company_id = $1 AND ($2 = false OR is_active = true)
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Price, &p.Stock, &p.IsActive,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DecrementStock descuenta qty con un UPDATE condicional: el chequeo
// stock >= qty y la escritura ocurren en una sola sentencia, serializada por el
// lock de fila de PostgreSQL. Dos colocaciones concurrentes sobre el mismo
// producto nunca dejan stock negativo; la que pierde recibe el disponible vigente.
func (r *ProductRepo) DecrementStock(productID string, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	query := `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
		RETURNING stock`
	var newStock int64
	err := r.q.QueryRow(context.Background(), query, productID, qty).Scan(&newStock)
	if err == nil {
		return newStock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isCheckViolation(err) {
			return 0, &domain.InsufficientStockError{Available: 0}
		}
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	// La condición falló: reportar el disponible post-carrera, no el valor leído antes.
	var current int64
	err = r.q.QueryRow(context.Background(), `SELECT stock FROM products WHERE id = $1`, productID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrProductNotFound
		}
		return 0, fmt.Errorf("read stock: %w", err)
	}
	return current, &domain.InsufficientStockError{Available: current}
}

// Deactivate marca is_active=false para los IDs indicados, scoped por empresa
// (companyID vacío omite el scoping). Devuelve cuántas filas afectó.
func (r *ProductRepo) Deactivate(ids []string, companyID string) (int64, error) {
	query := `
		UPDATE products SET is_active = false, updated_at = now()
		WHERE id = ANY($1) AND ($2 = '' OR company_id = $2)`
	cmd, err := r.q.Exec(context.Background(), query, ids, companyID)
	if err != nil {
		return 0, fmt.Errorf("deactivate products: %w", err)
	}
	return cmd.RowsAffected(), nil
}
