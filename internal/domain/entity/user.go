package entity

import "time"

// User representa un usuario del sistema. Las cotizaciones, clientes y
// perfiles de empresa pertenecen cada uno a un usuario.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca en claro después de persistir
	Name         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
