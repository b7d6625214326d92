package quotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/quote"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase operaciones de captura y ciclo de vida de cotizaciones.
type UseCase struct {
	txRunner    TxRunner
	quotRepo    repository.QuotationRepository
	profileRepo repository.CompanyProfileRepository
}

func NewUseCase(txRunner TxRunner, quotRepo repository.QuotationRepository, profileRepo repository.CompanyProfileRepository) *UseCase {
	return &UseCase{txRunner: txRunner, quotRepo: quotRepo, profileRepo: profileRepo}
}

// Create da de alta una cotización. El número COT-YYMM-NNN se asigna dentro de
// la misma transacción que persiste la cabecera, así dos altas concurrentes
// jamás comparten folio. Si el request trae ID y ya existe una cotización del
// usuario con ese ID, el alta es idempotente y se devuelve la existente.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	if in.ID != "" {
		existing, err := uc.quotRepo.GetByID(in.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("verificando reintento: %w", err)
		}
		if existing != nil {
			if existing.UserID != userID {
				return nil, domain.ErrForbidden
			}
			return uc.toResponse(existing)
		}
	}

	company, err := uc.defaultCompany(userID)
	if err != nil {
		return nil, err
	}

	d := quote.NewDraft(userID, company)
	d.SetID(in.ID)
	if err := applyRequest(d, in); err != nil {
		return nil, err
	}

	q, items, err := d.Finalize(in.Status)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunQuotation(ctx, func(repo repository.QuotationRepository) error {
		seq, err := repo.NextSequence(userID, quote.Period(q.Date))
		if err != nil {
			return fmt.Errorf("reservando consecutivo: %w", err)
		}
		if err := d.AssignNumber(quote.FormatNumber(q.Date, seq)); err != nil {
			return err
		}
		q.QuotationNumber = d.Number()
		if err := repo.Create(&q); err != nil {
			return fmt.Errorf("creando cotización: %w", err)
		}
		for i := range items {
			if err := repo.CreateItem(&items[i]); err != nil {
				return fmt.Errorf("creando ítem: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buildResponse(q, items), nil
}

// Get devuelve una cotización del usuario con sus líneas. Los totales se
// verifican contra las líneas antes de responder; una discrepancia se repara
// en memoria y los valores recalculados mandan.
func (uc *UseCase) Get(userID, id string) (*dto.QuotationResponse, error) {
	q, items, err := uc.load(userID, id)
	if err != nil {
		return nil, err
	}
	return buildResponse(*q, items), nil
}

// List devuelve el listado paginado de cotizaciones del usuario.
func (uc *UseCase) List(userID string, page dto.PageRequest) (*dto.QuotationListResponse, error) {
	page.DefaultPage()
	qs, err := uc.quotRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listando cotizaciones: %w", err)
	}
	out := &dto.QuotationListResponse{
		Items:  make([]dto.QuotationSummaryResponse, 0, len(qs)),
		Total:  int64(len(qs)),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, q := range qs {
		out.Items = append(out.Items, toSummary(q))
	}
	return out, nil
}

// Update edita una cotización en borrador. El snapshot de empresa se vuelve a
// capturar del perfil predeterminado vigente; el número asignado no cambia.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	q, items, err := uc.load(userID, id)
	if err != nil {
		return nil, err
	}

	d, err := quote.DraftFrom(*q, items)
	if err != nil {
		return nil, err
	}
	company, err := uc.defaultCompany(userID)
	if err != nil {
		return nil, err
	}
	d.SetCompany(company)
	if err := applyRequest(d, in); err != nil {
		return nil, err
	}

	updated, updatedItems, err := d.Finalize(in.Status)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunQuotation(ctx, func(repo repository.QuotationRepository) error {
		if err := repo.Update(&updated); err != nil {
			return fmt.Errorf("actualizando cotización: %w", err)
		}
		refs := make([]*entity.QuotationItem, len(updatedItems))
		for i := range updatedItems {
			refs[i] = &updatedItems[i]
		}
		if err := repo.ReplaceItems(updated.ID, refs); err != nil {
			return fmt.Errorf("reemplazando ítems: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buildResponse(updated, updatedItems), nil
}

// ChangeStatus aplica una transición del ciclo de vida:
// draft → sent → accepted | rejected.
func (uc *UseCase) ChangeStatus(userID, id, target string) (*dto.QuotationResponse, error) {
	if !entity.ValidStatus(target) {
		return nil, domain.ErrInvalidInput
	}
	q, items, err := uc.load(userID, id)
	if err != nil {
		return nil, err
	}
	if entity.IsTerminalStatus(q.Status) {
		return nil, domain.ErrQuotationFrozen
	}
	if !entity.CanTransition(q.Status, target) {
		return nil, domain.ErrConflict
	}
	if target == entity.StatusSent && len(items) == 0 {
		return nil, quote.ValidationErrors{{Field: "items", Message: "debe agregar al menos un ítem"}}
	}

	q.Status = target
	q.UpdatedAt = time.Now()
	if err := uc.quotRepo.UpdateStatus(q); err != nil {
		return nil, fmt.Errorf("actualizando estado: %w", err)
	}
	return buildResponse(*q, items), nil
}

// Delete elimina una cotización del usuario junto con sus líneas.
func (uc *UseCase) Delete(userID, id string) error {
	q, err := uc.quotRepo.GetByID(id)
	if err != nil {
		return err
	}
	if q.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.quotRepo.Delete(id)
}

// NextNumberPreview devuelve el folio tentativo del periodo actual sin
// reservarlo. El folio definitivo se asigna al crear; bajo concurrencia puede
// diferir del mostrado.
func (uc *UseCase) NextNumberPreview(userID string) (*dto.NumberPreviewResponse, error) {
	now := time.Now()
	seq, err := uc.quotRepo.PeekSequence(userID, quote.Period(now))
	if err != nil {
		return nil, fmt.Errorf("consultando consecutivo: %w", err)
	}
	return &dto.NumberPreviewResponse{QuotationNumber: quote.FormatNumber(now, seq)}, nil
}

// load trae la cotización con sus líneas, verifica la propiedad y repara los
// totales si la fila persistida quedó inconsistente.
func (uc *UseCase) load(userID, id string) (*entity.Quotation, []entity.QuotationItem, error) {
	q, err := uc.quotRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if q.UserID != userID {
		return nil, nil, domain.ErrForbidden
	}
	itemRefs, err := uc.quotRepo.GetItemsByQuotationID(id)
	if err != nil {
		return nil, nil, fmt.Errorf("leyendo ítems: %w", err)
	}
	items := make([]entity.QuotationItem, len(itemRefs))
	for i, it := range itemRefs {
		items[i] = *it
	}
	if quote.VerifyTotals(q, items) {
		log.Warn().
			Str("quotation_id", q.ID).
			Str("quotation_number", q.QuotationNumber).
			Msg("Totales inconsistentes en almacenamiento; recalculados antes de responder")
	}
	return q, items, nil
}

func (uc *UseCase) defaultCompany(userID string) (entity.CompanySnapshot, error) {
	profile, err := uc.profileRepo.GetDefaultByUser(userID)
	if err != nil {
		return entity.CompanySnapshot{}, fmt.Errorf("leyendo perfil de empresa: %w", err)
	}
	if profile == nil {
		return entity.CompanySnapshot{}, nil // Finalize lo reporta como campo faltante
	}
	return profile.Snapshot(), nil
}

func (uc *UseCase) toResponse(q *entity.Quotation) (*dto.QuotationResponse, error) {
	itemRefs, err := uc.quotRepo.GetItemsByQuotationID(q.ID)
	if err != nil {
		return nil, fmt.Errorf("leyendo ítems: %w", err)
	}
	items := make([]entity.QuotationItem, len(itemRefs))
	for i, it := range itemRefs {
		items[i] = *it
	}
	return buildResponse(*q, items), nil
}

// applyRequest vuelca el request sobre la sesión de edición. Los errores de
// formato de fechas se reportan como errores de campo, igual que los de
// Finalize.
func applyRequest(d *quote.Draft, in dto.QuotationRequest) error {
	var errs quote.ValidationErrors

	if in.Date != "" {
		t, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			errs = append(errs, quote.FieldError{Field: "date", Message: "fecha inválida (se espera YYYY-MM-DD)"})
		} else {
			d.SetDate(t)
		}
	}
	if in.ValidUntil != "" {
		t, err := time.Parse(dateLayout, in.ValidUntil)
		if err != nil {
			errs = append(errs, quote.FieldError{Field: "valid_until", Message: "fecha inválida (se espera YYYY-MM-DD)"})
		} else {
			d.SetValidUntil(&t)
		}
	}

	d.SetCustomer(entity.CustomerInfo{
		Name:    in.CustomerName,
		Email:   in.CustomerEmail,
		Phone:   in.CustomerPhone,
		Address: in.CustomerAddress,
	})
	d.SetProjectName(in.ProjectName)
	d.SetNotes(in.Notes)
	d.SetDeliveryTerms(in.DeliveryTerms)

	if in.Template != "" {
		if err := d.SetTemplate(in.Template); err != nil {
			errs = append(errs, quote.FieldError{Field: "template", Message: "plantilla desconocida"})
		}
	}

	tax, err := quote.TaxSelectionFrom(in.Tax.Mode, in.Tax.Name, in.Tax.Rate)
	if err != nil {
		errs = append(errs, quote.FieldError{Field: "tax", Message: "selección de impuesto inválida"})
	} else {
		d.SetTax(tax)
	}

	d.ResetItems()
	for i, it := range in.Items {
		_, err := d.Items().Add(quote.ItemInput{
			Name:        it.Name,
			Description: it.Description,
			Image:       it.Image,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
		})
		if err != nil {
			errs = append(errs, quote.FieldError{
				Field:   fmt.Sprintf("items[%d]", i),
				Message: "cantidad o precio inválido",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func buildResponse(q entity.Quotation, items []entity.QuotationItem) *dto.QuotationResponse {
	resp := &dto.QuotationResponse{
		ID:              q.ID,
		QuotationNumber: q.QuotationNumber,
		Date:            q.Date.Format(dateLayout),
		CustomerName:    q.Customer.Name,
		CustomerEmail:   q.Customer.Email,
		CustomerPhone:   q.Customer.Phone,
		CustomerAddress: q.Customer.Address,
		ProjectName:     q.ProjectName,
		Items:           make([]dto.QuotationItemResponse, 0, len(items)),
		Subtotal:        q.Subtotal,
		TaxMode:         q.TaxMode,
		TaxName:         q.TaxName,
		TaxRate:         q.TaxRate,
		TaxAmount:       q.TaxAmount,
		Total:           q.Total,
		Notes:           q.Notes,
		DeliveryTerms:   q.DeliveryTerms,
		Template:        q.Template,
		Status:          q.Status,
	}
	if q.ValidUntil != nil {
		resp.ValidUntil = q.ValidUntil.Format(dateLayout)
	}
	if !q.CreatedAt.IsZero() {
		resp.CreatedAt = q.CreatedAt.Format(time.RFC3339)
	}
	if !q.UpdatedAt.IsZero() {
		resp.UpdatedAt = q.UpdatedAt.Format(time.RFC3339)
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.QuotationItemResponse{
			ID:          it.ID,
			Position:    it.Position,
			Name:        it.Name,
			Description: it.Description,
			Image:       it.Image,
			Quantity:    it.Quantity,
			Price:       it.UnitPrice,
			Total:       it.LineTotal,
		})
	}
	return resp
}

func toSummary(q *entity.Quotation) dto.QuotationSummaryResponse {
	return dto.QuotationSummaryResponse{
		ID:              q.ID,
		QuotationNumber: q.QuotationNumber,
		Date:            q.Date.Format(dateLayout),
		CustomerName:    q.Customer.Name,
		ProjectName:     q.ProjectName,
		Total:           q.Total,
		Status:          q.Status,
		Template:        q.Template,
	}
}
