package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleCliente = "cliente"
)

// User representa un usuario de la tienda.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	Role         string // admin, cliente
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
