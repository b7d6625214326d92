package dto

// CompanyProfileRequest alta o edición de los datos de la empresa emisora.
type CompanyProfileRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required"`
	Address        string `json:"address" validate:"required"`
	Website        string `json:"website,omitempty"`
	Representative string `json:"representative,omitempty"`
	IsDefault      bool   `json:"is_default"`
}

// CompanyProfileResponse perfil de empresa persistido.
type CompanyProfileResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Website        string `json:"website,omitempty"`
	Representative string `json:"representative,omitempty"`
	IsDefault      bool   `json:"is_default"`
}
