package quote_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/quote"
)

func testCompany() entity.CompanySnapshot {
	return entity.CompanySnapshot{
		Name:    "Mi Empresa SRL",
		Email:   "contacto@miempresa.com",
		Phone:   "+52 (123) 456-7890",
		Address: "Av. Principal 123, Ciudad de México",
	}
}

func TestNewDraft_Defaults(t *testing.T) {
	d := quote.NewDraft("user-1", testCompany())

	q, items := d.Snapshot()
	assert.Equal(t, entity.StatusDraft, q.Status)
	assert.Equal(t, entity.TemplateProfessional, q.Template)
	assert.Equal(t, entity.TaxModeIVA, q.TaxMode)
	assert.True(t, q.TaxRate.Equal(decimal.NewFromInt(16)), "IVA 16%% es el default canónico")
	assert.Empty(t, items)
	require.NotNil(t, q.ValidUntil)
	assert.WithinDuration(t, q.Date.AddDate(0, 0, 30), *q.ValidUntil, time.Second,
		"vigencia por defecto: emisión + 30 días")
}

// El snapshot es una copia: editar la sesión después no altera un snapshot ya
// tomado (el preview y el PDF generados de él no se desincronizan).
func TestDraft_SnapshotInmutable(t *testing.T) {
	d := quote.NewDraft("user-1", testCompany())
	id, _ := d.Items().Add(quote.ItemInput{Name: "Bomba", Quantity: 2, UnitPrice: decimal.NewFromInt(100)})

	q1, items1 := d.Snapshot()
	require.True(t, q1.Total.Equal(decimal.NewFromInt(232)))

	// Mutaciones posteriores a la toma del snapshot.
	require.NoError(t, d.Items().Update(id, quote.ItemPatch{Quantity: intPtr(10)}))
	d.SetTax(quote.NoTax())

	assert.True(t, q1.Total.Equal(decimal.NewFromInt(232)), "el snapshot tomado no cambia")
	assert.True(t, items1[0].LineTotal.Equal(decimal.NewFromInt(200)))

	q2, _ := d.Snapshot()
	assert.True(t, q2.Total.Equal(decimal.NewFromInt(1000)), "el siguiente snapshot sí refleja las mutaciones")
}

// Cambiar el modo de impuesto recalcula en el siguiente snapshot, sin recálculo
// diferido ni por lotes.
func TestDraft_CambioDeImpuestoRecalcula(t *testing.T) {
	d := quote.NewDraft("user-1", testCompany())
	_, _ = d.Items().Add(quote.ItemInput{Name: "Servicio", Quantity: 1, UnitPrice: decimal.NewFromInt(100)})

	q, _ := d.Snapshot()
	require.True(t, q.TaxAmount.Equal(decimal.NewFromInt(16)))

	d.SetTax(quote.CustomTax("ISR", decimal.NewFromInt(10)))
	q, _ = d.Snapshot()
	assert.True(t, q.TaxAmount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "ISR", q.TaxName)

	d.SetTax(quote.NoTax())
	q, _ = d.Snapshot()
	assert.True(t, q.TaxAmount.IsZero())
	assert.True(t, q.Total.Equal(q.Subtotal))
}

// Escenario C: finalize(sent) sin ítems falla con error de campo.
func TestDraft_FinalizeSentSinItems(t *testing.T) {
	d := quote.NewDraft("user-1", testCompany())
	d.SetCustomer(entity.CustomerInfo{Name: "ACME"})

	_, _, err := d.Finalize(entity.StatusSent)

	var verrs quote.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "items", verrs[0].Field)

	// Como borrador sí es válido aun sin ítems.
	q, _, err := d.Finalize(entity.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, q.Status)
}

// Finalize devuelve la lista completa de errores de campo, no solo el primero.
func TestDraft_FinalizeReportaTodosLosCampos(t *testing.T) {
	d := quote.NewDraft("user-1", entity.CompanySnapshot{})
	d.SetCustomer(entity.CustomerInfo{Name: "", Email: "no-es-email"})
	_, _ = d.Items().Add(quote.ItemInput{Name: "   "})

	_, _, err := d.Finalize(entity.StatusSent)

	var verrs quote.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "customer_name")
	assert.Contains(t, fields, "customer_email")
	assert.Contains(t, fields, "company")
	assert.Contains(t, fields, "items[0].name")
}

// AssignNumber es de una sola vez e idempotente en el reintento.
func TestDraft_AssignNumberIdempotente(t *testing.T) {
	d := quote.NewDraft("user-1", testCompany())

	require.NoError(t, d.AssignNumber("COT-2608-001"))
	require.NoError(t, d.AssignNumber("COT-2608-001"), "reintentar con el mismo número es idempotente")
	assert.ErrorIs(t, d.AssignNumber("COT-2608-002"), domain.ErrConflict,
		"un número distinto sobre el mismo agregado es conflicto")
	assert.Equal(t, "COT-2608-001", d.Number())
}

// El snapshot de empresa queda desacoplado: cambiar el perfil después no
// altera la cotización ya creada.
func TestDraft_CompanySnapshotDesacoplado(t *testing.T) {
	company := testCompany()
	d := quote.NewDraft("user-1", company)

	company.Name = "Otra Empresa SA"
	company.Email = "otro@correo.com"

	q, _ := d.Snapshot()
	assert.Equal(t, "Mi Empresa SRL", q.Company.Name)
	assert.Equal(t, "contacto@miempresa.com", q.Company.Email)
}

// Solo los borradores se pueden reabrir para edición; sent es conflicto y los
// estados terminales están congelados.
func TestDraftFrom_RespetaEstados(t *testing.T) {
	base := entity.Quotation{
		ID:       "q1",
		UserID:   "user-1",
		Status:   entity.StatusDraft,
		TaxMode:  entity.TaxModeIVA,
		TaxRate:  decimal.NewFromInt(16),
		Company:  testCompany(),
		Customer: entity.CustomerInfo{Name: "ACME"},
	}

	_, err := quote.DraftFrom(base, nil)
	require.NoError(t, err)

	base.Status = entity.StatusSent
	_, err = quote.DraftFrom(base, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	base.Status = entity.StatusAccepted
	_, err = quote.DraftFrom(base, nil)
	assert.ErrorIs(t, err, domain.ErrQuotationFrozen)

	base.Status = entity.StatusRejected
	_, err = quote.DraftFrom(base, nil)
	assert.ErrorIs(t, err, domain.ErrQuotationFrozen)
}

// Transiciones de estado permitidas del ciclo de vida.
func TestCanTransition(t *testing.T) {
	assert.True(t, entity.CanTransition(entity.StatusDraft, entity.StatusSent))
	assert.True(t, entity.CanTransition(entity.StatusSent, entity.StatusAccepted))
	assert.True(t, entity.CanTransition(entity.StatusSent, entity.StatusRejected))

	assert.False(t, entity.CanTransition(entity.StatusDraft, entity.StatusAccepted))
	assert.False(t, entity.CanTransition(entity.StatusAccepted, entity.StatusSent))
	assert.False(t, entity.CanTransition(entity.StatusRejected, entity.StatusDraft))
}

func TestFormatNumber(t *testing.T) {
	at := time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "COT-2608-007", quote.FormatNumber(at, 7))
	assert.Equal(t, "2608", quote.Period(at))
}
