package entity

import "time"

// Company representa una organización/tenant del sistema. Todo Product y User
// pertenece exactamente a una Company; solo un superusuario puede crearlas.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
