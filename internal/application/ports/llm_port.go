package ports

import "context"

// LLMService puerto hacia el proveedor de lenguaje que redacta descripciones
// comerciales de conceptos.
type LLMService interface {
	GenerateItemDescription(ctx context.Context, name, hints string) (string, error)
}
