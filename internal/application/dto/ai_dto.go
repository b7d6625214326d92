package dto

// GenerateDescriptionRequest pide una descripción comercial para un concepto.
type GenerateDescriptionRequest struct {
	Name  string `json:"name" validate:"required"`
	Hints string `json:"hints,omitempty"`
}

// GenerateDescriptionResponse descripción generada.
type GenerateDescriptionResponse struct {
	Description string `json:"description"`
}
