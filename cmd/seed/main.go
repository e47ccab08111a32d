// seed puebla la base de datos con datos de demostración: una empresa, un
// superusuario global y un usuario por rol (admin, operator, viewer), más un
// puñado de productos con stock.
//
// Uso: go run ./cmd/seed
// Idempotente a nivel de empresa: si "Demo SAS" ya existe, no hace nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ordena-api/internal/domain/entity"
	"github.com/jhoicas/ordena-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ordena-api/pkg/config"
)

const demoPassword = "demo1234!"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	if existing, _ := companyRepo.GetByName("Demo SAS"); existing != nil {
		fmt.Println("la empresa demo ya existe, nada que hacer")
		return
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      "Demo SAS",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := companyRepo.Create(company); err != nil {
		fmt.Fprintf(os.Stderr, "crear empresa: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
		os.Exit(1)
	}

	users := []struct {
		email     string
		role      string
		superuser bool
	}{
		{"root@demo.local", entity.RoleAdmin, true},
		{"admin@demo.local", entity.RoleAdmin, false},
		{"operator@demo.local", entity.RoleOperator, false},
		{"viewer@demo.local", entity.RoleViewer, false},
	}
	var adminID string
	for _, u := range users {
		user := &entity.User{
			ID:           uuid.New().String(),
			CompanyID:    company.ID,
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.email,
			Role:         u.role,
			IsSuperuser:  u.superuser,
			IsStaff:      true,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(user); err != nil {
			fmt.Fprintf(os.Stderr, "crear usuario %s: %v\n", u.email, err)
			os.Exit(1)
		}
		if u.role == entity.RoleAdmin && !u.superuser {
			adminID = user.ID
		}
		fmt.Printf("usuario %s (%s) creado\n", u.email, u.role)
	}

	products := []struct {
		name  string
		price string
		stock int64
	}{
		{"Teclado mecánico", "189900.00", 25},
		{"Mouse inalámbrico", "79900.00", 40},
		{"Monitor 27\"", "1249900.00", 8},
		{"Base refrigerante", "59900.00", 0},
	}
	for _, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "precio inválido %q: %v\n", p.price, err)
			os.Exit(1)
		}
		product := &entity.Product{
			ID:        uuid.New().String(),
			CompanyID: company.ID,
			Name:      p.name,
			Price:     price,
			Stock:     p.stock,
			IsActive:  true,
			CreatedBy: &adminID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := productRepo.Create(product); err != nil {
			fmt.Fprintf(os.Stderr, "crear producto %s: %v\n", p.name, err)
			os.Exit(1)
		}
		fmt.Printf("producto %q creado (stock %d)\n", p.name, p.stock)
	}

	fmt.Printf("\nempresa %s lista; password de todos los usuarios: %s\n", company.Name, demoPassword)
}
