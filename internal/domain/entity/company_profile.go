package entity

import "time"

// CompanyProfile perfil de empresa emisora administrado por el usuario.
// Un usuario puede tener varios perfiles; exactamente uno puede estar marcado
// como predeterminado, y ese es el que se copia como CompanySnapshot al crear
// o editar una cotización.
type CompanyProfile struct {
	ID             string
	UserID         string
	Name           string
	Email          string
	Phone          string
	Address        string
	Website        string
	Representative string
	IsDefault      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Snapshot devuelve la copia inmutable que viaja dentro de la cotización.
func (p *CompanyProfile) Snapshot() CompanySnapshot {
	return CompanySnapshot{
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
		Website:        p.Website,
		Representative: p.Representative,
	}
}
