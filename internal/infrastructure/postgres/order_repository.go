package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ordena-api/internal/domain"
	"github.com/jhoicas/ordena-api/internal/domain/entity"
	"github.com/jhoicas/ordena-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
//
// La empresa de una orden es derivada: LEFT JOIN users por created_by. Los
// listados scoped usan INNER JOIN, así que una orden sin creador solo aparece
// en las variantes All (superusuario).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderSelect = `
	SELECT o.id, o.product_id, o.quantity, o.status, o.created_by, o.created_at, o.shipped_at,
	       p.name, u.company_id, COALESCE(u.name, '')
	FROM orders o
	JOIN products p ON p.id = o.product_id
	LEFT JOIN users u ON u.id = o.created_by`

// Create persiste una orden nueva (estado pending, shipped_at NULL).
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, product_id, quantity, status, created_by, created_at, shipped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ProductID, order.Quantity, order.Status,
		order.CreatedBy, order.CreatedAt, order.ShippedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID con su empresa derivada.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(context.Background(), orderSelect+` WHERE o.id = $1`, id).Scan(
		&o.ID, &o.ProductID, &o.Quantity, &o.Status, &o.CreatedBy, &o.CreatedAt, &o.ShippedAt,
		&o.ProductName, &o.CompanyID, &o.CreatedByName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// MarkShipped transiciona a success y estampa shipped_at, exactamente una vez.
func (r *OrderRepo) MarkShipped(orderID string, shippedAt time.Time) error {
	query := `
		UPDATE orders SET status = $2, shipped_at = $3
		WHERE id = $1 AND shipped_at IS NULL`
	cmd, err := r.q.Exec(context.Background(), query, orderID, entity.OrderStatusSuccess, shippedAt)
	if err != nil {
		return fmt.Errorf("mark shipped: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict // ya enviada o inexistente
	}
	return nil
}

// UpdateStatus cambia solo el estado (edición administrativa).
func (r *OrderRepo) UpdateStatus(orderID, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista órdenes de una empresa (INNER JOIN por creador) paginadas.
func (r *OrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT o.id, o.product_id, o.quantity, o.status, o.created_by, o.created_at, o.shipped_at,
		       p.name, u.company_id, COALESCE(u.name, '')
		FROM orders o
		JOIN products p ON p.id = o.product_id
		JOIN users u ON u.id = o.created_by
		WHERE u.company_id = $1
		ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`
	return r.queryOrders(query, companyID, limit, offset)
}

// ListAll lista todas las órdenes (superusuario) paginadas.
func (r *OrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	query := orderSelect + ` ORDER BY o.created_at DESC LIMIT $1 OFFSET $2`
	return r.queryOrders(query, limit, offset)
}

// ListByCompanyForExport lista todas las órdenes de la empresa, sin paginar.
func (r *OrderRepo) ListByCompanyForExport(companyID string) ([]*entity.Order, error) {
	query := `
		SELECT o.id, o.product_id, o.quantity, o.status, o.created_by, o.created_at, o.shipped_at,
		       p.name, u.company_id, COALESCE(u.name, '')
		FROM orders o
		JOIN products p ON p.id = o.product_id
		JOIN users u ON u.id = o.created_by
		WHERE u.company_id = $1
		ORDER BY o.created_at DESC`
	return r.queryOrders(query, companyID)
}

// ListAllForExport lista todas las órdenes del sistema, sin paginar.
func (r *OrderRepo) ListAllForExport() ([]*entity.Order, error) {
	return r.queryOrders(orderSelect + ` ORDER BY o.created_at DESC`)
}

// Delete borra una orden por ID.
func (r *OrderRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) queryOrders(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.Status, &o.CreatedBy,
			&o.CreatedAt, &o.ShippedAt, &o.ProductName, &o.CompanyID, &o.CreatedByName); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
