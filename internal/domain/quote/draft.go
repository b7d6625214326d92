package quote

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
)

// Vigencia por defecto de una cotización: fecha de emisión + 30 días.
const defaultValidityDays = 30

// FieldError error de validación asociado a un campo del formulario.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lista de errores de campo. Finalize devuelve la lista
// completa, no solo el primero, para que el formulario marque todos los
// campos a la vez.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validación: " + strings.Join(msgs, "; ")
}

// Draft sesión de edición de una cotización. Es la única fuente de verdad
// durante la captura: el flujo de datos es unidireccional — mutación de ítems
// o de impuesto → recálculo → Snapshot() → superficies de render. Ninguna
// superficie escribe de vuelta. Una sesión pertenece a un solo usuario; no hay
// escritura concurrente contemplada.
type Draft struct {
	id            string
	userID        string
	number        string
	date          time.Time
	validUntil    *time.Time
	customer      entity.CustomerInfo
	projectName   string
	items         *ItemList
	tax           TaxSelection
	notes         string
	deliveryTerms string
	template      string
	status        string
	company       entity.CompanySnapshot
	createdAt     time.Time
}

// NewDraft crea una sesión nueva con los valores por defecto del formulario:
// IVA 16%, plantilla professional, vigencia de 30 días, estado draft. El
// snapshot de empresa se captura en este momento y queda desacoplado del
// perfil que lo originó.
func NewDraft(userID string, company entity.CompanySnapshot) *Draft {
	now := time.Now()
	until := now.AddDate(0, 0, defaultValidityDays)
	return &Draft{
		id:         uuid.New().String(),
		userID:     userID,
		date:       now,
		validUntil: &until,
		items:      NewItemList(),
		tax:        IVATax(),
		template:   entity.TemplateProfessional,
		status:     entity.StatusDraft,
		company:    company,
		createdAt:  now,
	}
}

// DraftFrom reconstruye la sesión de edición de una cotización persistida.
// Solo se permite editar cotizaciones en estado draft; un estado terminal
// devuelve ErrQuotationFrozen y sent devuelve ErrConflict.
func DraftFrom(q entity.Quotation, items []entity.QuotationItem) (*Draft, error) {
	if entity.IsTerminalStatus(q.Status) {
		return nil, domain.ErrQuotationFrozen
	}
	if q.Status != entity.StatusDraft {
		return nil, domain.ErrConflict
	}
	tax, err := TaxSelectionFrom(q.TaxMode, q.TaxName, q.TaxRate)
	if err != nil {
		return nil, err
	}
	return &Draft{
		id:            q.ID,
		userID:        q.UserID,
		number:        q.QuotationNumber,
		date:          q.Date,
		validUntil:    q.ValidUntil,
		customer:      q.Customer,
		projectName:   q.ProjectName,
		items:         ItemListFrom(items),
		tax:           tax,
		notes:         q.Notes,
		deliveryTerms: q.DeliveryTerms,
		template:      q.Template,
		status:        q.Status,
		company:       q.Company,
		createdAt:     q.CreatedAt,
	}, nil
}

// ID identidad del agregado (estable desde la creación de la sesión).
func (d *Draft) ID() string { return d.id }

// SetID fija la identidad del agregado cuando el cliente la aporta, lo que
// permite reintentos idempotentes del alta.
func (d *Draft) SetID(id string) {
	if id != "" {
		d.id = id
	}
}

// Items acceso a la lista de líneas; toda mutación de ítems pasa por aquí.
func (d *Draft) Items() *ItemList { return d.items }

// ResetItems descarta las líneas actuales. Una edición que envía el conjunto
// completo de líneas reemplaza, no acumula.
func (d *Draft) ResetItems() { d.items = NewItemList() }

// Tax selección de impuesto vigente.
func (d *Draft) Tax() TaxSelection { return d.tax }

// SetTax cambia la selección de impuesto. El efecto sobre los totales es
// inmediato: el siguiente Snapshot ya refleja la nueva tarifa.
func (d *Draft) SetTax(t TaxSelection) { d.tax = t }

// SetCustomer fija el bloque de cliente.
func (d *Draft) SetCustomer(c entity.CustomerInfo) { d.customer = c }

// SetProjectName fija el nombre del proyecto.
func (d *Draft) SetProjectName(name string) { d.projectName = name }

// SetNotes fija las notas.
func (d *Draft) SetNotes(notes string) { d.notes = notes }

// SetDeliveryTerms fija los términos de entrega.
func (d *Draft) SetDeliveryTerms(terms string) { d.deliveryTerms = terms }

// SetDate fija la fecha de emisión.
func (d *Draft) SetDate(t time.Time) { d.date = t }

// SetValidUntil fija la fecha de vigencia (nil = sin vigencia explícita).
func (d *Draft) SetValidUntil(t *time.Time) { d.validUntil = t }

// SetTemplate cambia la plantilla visual.
func (d *Draft) SetTemplate(id string) error {
	if !entity.ValidTemplate(id) {
		return domain.ErrInvalidInput
	}
	d.template = id
	return nil
}

// SetCompany reemplaza el snapshot de empresa (se captura de nuevo al editar).
func (d *Draft) SetCompany(c entity.CompanySnapshot) { d.company = c }

// AssignNumber fija el número de cotización asignado por el servidor.
// Debe llamarse exactamente una vez por agregado; reasignar el mismo número
// es idempotente y un número distinto devuelve ErrConflict.
func (d *Draft) AssignNumber(number string) error {
	if d.number != "" && d.number != number {
		return domain.ErrConflict
	}
	d.number = number
	return nil
}

// Number número asignado (vacío mientras no se haya llamado AssignNumber).
func (d *Draft) Number() string { return d.number }

// Snapshot devuelve una copia inmutable del agregado con los totales
// calculados una sola vez. Las superficies de render operan siempre sobre un
// snapshot, nunca sobre la sesión viva: editar a mitad de un render no puede
// partir los números entre vista previa y PDF.
func (d *Draft) Snapshot() (entity.Quotation, []entity.QuotationItem) {
	items := d.items.Items() // copia
	totals := ComputeTotals(items, d.tax.EffectiveRate())

	var validUntil *time.Time
	if d.validUntil != nil {
		v := *d.validUntil
		validUntil = &v
	}

	q := entity.Quotation{
		ID:              d.id,
		UserID:          d.userID,
		QuotationNumber: d.number,
		Date:            d.date,
		ValidUntil:      validUntil,
		Customer:        d.customer,
		ProjectName:     d.projectName,
		Subtotal:        totals.Subtotal,
		TaxMode:         d.tax.Mode(),
		TaxName:         d.tax.Name(),
		TaxRate:         d.tax.EffectiveRate(),
		TaxAmount:       totals.TaxAmount,
		Total:           totals.Total,
		Notes:           d.notes,
		DeliveryTerms:   d.deliveryTerms,
		Template:        d.template,
		Status:          d.status,
		Company:         d.company,
		CreatedAt:       d.createdAt,
		UpdatedAt:       time.Now(),
	}
	for i := range items {
		items[i].QuotationID = q.ID
	}
	return q, items
}

// Finalize valida el agregado y devuelve el snapshot listo para persistir con
// el estado destino (draft o sent). Falla rápido con la lista completa de
// errores de campo; no persiste nada parcialmente.
func (d *Draft) Finalize(targetStatus string) (entity.Quotation, []entity.QuotationItem, error) {
	if targetStatus == "" {
		targetStatus = entity.StatusDraft
	}
	if targetStatus != entity.StatusDraft && targetStatus != entity.StatusSent {
		return entity.Quotation{}, nil, domain.ErrInvalidInput
	}

	var errs ValidationErrors
	if strings.TrimSpace(d.customer.Name) == "" {
		errs = append(errs, FieldError{Field: "customer_name", Message: "nombre del cliente requerido"})
	}
	if d.customer.Email != "" {
		if _, err := mail.ParseAddress(d.customer.Email); err != nil {
			errs = append(errs, FieldError{Field: "customer_email", Message: "email inválido"})
		}
	}
	if d.company.IsZero() {
		errs = append(errs, FieldError{Field: "company", Message: "datos de la empresa requeridos"})
	}
	if targetStatus == entity.StatusSent && d.items.Len() == 0 {
		errs = append(errs, FieldError{Field: "items", Message: "debe agregar al menos un ítem"})
	}
	for i, it := range d.items.Items() {
		if strings.TrimSpace(it.Name) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("items[%d].name", i),
				Message: "nombre del ítem requerido",
			})
		}
	}
	if len(errs) > 0 {
		return entity.Quotation{}, nil, errs
	}

	d.status = targetStatus
	q, items := d.Snapshot()
	return q, items, nil
}
