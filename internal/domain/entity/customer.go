package entity

import "time"

// Customer representa un cliente guardado en el catálogo del usuario.
// El catálogo sirve para autocompletar el bloque de cliente de una cotización;
// la cotización en sí guarda su propia copia (CustomerInfo).
type Customer struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
