package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/application/ports"
	"github.com/spekmx/cotizador-api/internal/domain"
)

// Tope de espera hacia el proveedor de lenguaje.
const llmTimeout = 10 * time.Second

// AIUseCase redacta descripciones comerciales para los conceptos de una
// cotización.
type AIUseCase struct {
	llm ports.LLMService
}

func NewAIUseCase(llm ports.LLMService) *AIUseCase {
	return &AIUseCase{llm: llm}
}

func (uc *AIUseCase) GenerateDescription(ctx context.Context, in dto.GenerateDescriptionRequest) (*dto.GenerateDescriptionResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	description, err := uc.llm.GenerateItemDescription(ctx, name, strings.TrimSpace(in.Hints))
	if err != nil {
		return nil, fmt.Errorf("generando descripción: %w", err)
	}
	return &dto.GenerateDescriptionResponse{Description: description}, nil
}
