package quotation_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spekmx/cotizador-api/internal/application/dto"
	"github.com/spekmx/cotizador-api/internal/application/quotation"
	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/quote"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
)

const testUser = "user-1"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeQuotationRepo struct {
	quotations map[string]*entity.Quotation
	items      map[string][]*entity.QuotationItem
	counters   map[string]int
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{
		quotations: map[string]*entity.Quotation{},
		items:      map[string][]*entity.QuotationItem{},
		counters:   map[string]int{},
	}
}

func (f *fakeQuotationRepo) Create(q *entity.Quotation) error {
	cp := *q
	f.quotations[q.ID] = &cp
	return nil
}

func (f *fakeQuotationRepo) CreateItem(item *entity.QuotationItem) error {
	cp := *item
	f.items[item.QuotationID] = append(f.items[item.QuotationID], &cp)
	return nil
}

func (f *fakeQuotationRepo) Update(q *entity.Quotation) error {
	if _, ok := f.quotations[q.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *q
	f.quotations[q.ID] = &cp
	return nil
}

func (f *fakeQuotationRepo) ReplaceItems(quotationID string, items []*entity.QuotationItem) error {
	f.items[quotationID] = nil
	for _, it := range items {
		cp := *it
		cp.QuotationID = quotationID
		f.items[quotationID] = append(f.items[quotationID], &cp)
	}
	return nil
}

func (f *fakeQuotationRepo) UpdateStatus(q *entity.Quotation) error {
	stored, ok := f.quotations[q.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = q.Status
	stored.UpdatedAt = q.UpdatedAt
	return nil
}

func (f *fakeQuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	q, ok := f.quotations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuotationRepo) GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error) {
	var out []*entity.QuotationItem
	for _, it := range f.items[quotationID] {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeQuotationRepo) ListByUser(userID string, limit, offset int) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, q := range f.quotations {
		if q.UserID == userID {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeQuotationRepo) Delete(id string) error {
	if _, ok := f.quotations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.quotations, id)
	delete(f.items, id)
	return nil
}

func (f *fakeQuotationRepo) NextSequence(userID, period string) (int, error) {
	key := userID + "/" + period
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeQuotationRepo) PeekSequence(userID, period string) (int, error) {
	return f.counters[userID+"/"+period] + 1, nil
}

// fakeTxRunner ejecuta el callback directamente contra el repo en memoria.
type fakeTxRunner struct {
	repo *fakeQuotationRepo
}

func (f *fakeTxRunner) RunQuotation(_ context.Context, fn func(repo repository.QuotationRepository) error) error {
	return fn(f.repo)
}

type fakeProfileRepo struct {
	def *entity.CompanyProfile
}

func (f *fakeProfileRepo) Create(*entity.CompanyProfile) error { return nil }
func (f *fakeProfileRepo) GetByID(string) (*entity.CompanyProfile, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeProfileRepo) GetDefaultByUser(string) (*entity.CompanyProfile, error) {
	return f.def, nil
}
func (f *fakeProfileRepo) ListByUser(string) ([]*entity.CompanyProfile, error) { return nil, nil }
func (f *fakeProfileRepo) Update(*entity.CompanyProfile) error                 { return nil }
func (f *fakeProfileRepo) ClearDefault(string) error                           { return nil }
func (f *fakeProfileRepo) Delete(string) error                                 { return nil }

func testProfile() *entity.CompanyProfile {
	return &entity.CompanyProfile{
		ID:      "profile-1",
		UserID:  testUser,
		Name:    "Estudio Delta",
		Email:   "hola@delta.mx",
		Phone:   "555-0100",
		Address: "Av. Reforma 100, CDMX",
	}
}

func newFixture() (*quotation.UseCase, *fakeQuotationRepo) {
	repo := newFakeQuotationRepo()
	uc := quotation.NewUseCase(&fakeTxRunner{repo: repo}, repo, &fakeProfileRepo{def: testProfile()})
	return uc, repo
}

func request(items ...dto.QuotationItemRequest) dto.QuotationRequest {
	return dto.QuotationRequest{
		CustomerName: "Cliente Uno",
		Items:        items,
	}
}

func item(qty int64, price string) dto.QuotationItemRequest {
	return dto.QuotationItemRequest{
		Name:     "Servicio",
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AsignaFoliosConsecutivos(t *testing.T) {
	uc, _ := newFixture()

	first, err := uc.Create(context.Background(), testUser, request(item(1, "100")))
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), testUser, request(item(1, "100")))
	require.NoError(t, err)

	period := time.Now().Format("0601")
	assert.Equal(t, fmt.Sprintf("COT-%s-001", period), first.QuotationNumber)
	assert.Equal(t, fmt.Sprintf("COT-%s-002", period), second.QuotationNumber)
}

func TestCreate_CalculaTotalesConIVAPorDefecto(t *testing.T) {
	uc, _ := newFixture()

	resp, err := uc.Create(context.Background(), testUser, request(item(3, "49.99")))
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("149.97")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.TaxAmount.Equal(decimal.RequireFromString("24.00")), "impuesto: %s", resp.TaxAmount)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("173.97")), "total: %s", resp.Total)
	assert.Equal(t, entity.TaxModeIVA, resp.TaxMode)
}

func TestCreate_ReintentoConMismoID_EsIdempotente(t *testing.T) {
	uc, repo := newFixture()

	in := request(item(2, "50"))
	in.ID = "7c9a4a1e-0000-4000-8000-000000000001"

	first, err := uc.Create(context.Background(), testUser, in)
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), testUser, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.QuotationNumber, second.QuotationNumber)
	assert.Len(t, repo.quotations, 1, "el reintento no debe crear otra cotización")
}

func TestCreate_SinPerfilDeEmpresa_ReportaCampo(t *testing.T) {
	repo := newFakeQuotationRepo()
	uc := quotation.NewUseCase(&fakeTxRunner{repo: repo}, repo, &fakeProfileRepo{def: nil})

	_, err := uc.Create(context.Background(), testUser, request(item(1, "10")))
	require.Error(t, err)

	var verrs quote.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Field
	}
	assert.Contains(t, fields, "company")
}

func TestCreate_EnviadaSinItems_Falla(t *testing.T) {
	uc, _ := newFixture()

	in := request()
	in.Status = entity.StatusSent
	_, err := uc.Create(context.Background(), testUser, in)

	var verrs quote.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "items", verrs[0].Field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición y ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ReemplazaItemsYRecalcula(t *testing.T) {
	uc, _ := newFixture()

	created, err := uc.Create(context.Background(), testUser, request(item(1, "100")))
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), testUser, created.ID, request(item(2, "200")))
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.True(t, updated.Subtotal.Equal(decimal.RequireFromString("400")))
	assert.Equal(t, created.QuotationNumber, updated.QuotationNumber, "el folio no cambia al editar")
}

func TestUpdate_CotizacionEnviada_RetornaConflicto(t *testing.T) {
	uc, _ := newFixture()

	created, err := uc.Create(context.Background(), testUser, request(item(1, "100")))
	require.NoError(t, err)
	_, err = uc.ChangeStatus(testUser, created.ID, entity.StatusSent)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), testUser, created.ID, request(item(1, "999")))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_CotizacionTerminal_RetornaCongelada(t *testing.T) {
	uc, _ := newFixture()

	created, err := uc.Create(context.Background(), testUser, request(item(1, "100")))
	require.NoError(t, err)
	_, err = uc.ChangeStatus(testUser, created.ID, entity.StatusSent)
	require.NoError(t, err)
	_, err = uc.ChangeStatus(testUser, created.ID, entity.StatusAccepted)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), testUser, created.ID, request(item(1, "999")))
	assert.ErrorIs(t, err, domain.ErrQuotationFrozen)
}

func TestChangeStatus_TransicionInvalida_RetornaConflicto(t *testing.T) {
	uc, _ := newFixture()

	created, err := uc.Create(context.Background(), testUser, request(item(1, "100")))
	require.NoError(t, err)

	// draft → accepted no está permitido; primero debe enviarse.
	_, err = uc.ChangeStatus(testUser, created.ID, entity.StatusAccepted)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestChangeStatus_EnviarSinItems_Falla(t *testing.T) {
	uc, _ := newFixture()

	created, err := uc.Create(context.Background(), testUser, request())
	require.NoError(t, err)

	_, err = uc.ChangeStatus(testUser, created.ID, entity.StatusSent)
	var verrs quote.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestChangeStatus_Terminal_Congela(t *testing.T) {
	uc, _ := newFixture()

	created, err := uc.Create(context.Background(), testUser, request(item(1, "100")))
	require.NoError(t, err)
	_, err = uc.ChangeStatus(testUser, created.ID, entity.StatusSent)
	require.NoError(t, err)
	resp, err := uc.ChangeStatus(testUser, created.ID, entity.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, resp.Status)

	_, err = uc.ChangeStatus(testUser, created.ID, entity.StatusSent)
	assert.ErrorIs(t, err, domain.ErrQuotationFrozen)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_DeOtroUsuario_RetornaForbidden(t *testing.T) {
	uc, _ := newFixture()

	created, err := uc.Create(context.Background(), testUser, request(item(1, "100")))
	require.NoError(t, err)

	_, err = uc.Get("otro-usuario", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGet_TotalesManipulados_SeReparanAntesDeResponder(t *testing.T) {
	uc, repo := newFixture()

	created, err := uc.Create(context.Background(), testUser, request(item(2, "100")))
	require.NoError(t, err)

	// Simular una fila corrompida en almacenamiento.
	stored := repo.quotations[created.ID]
	stored.Subtotal = decimal.NewFromInt(1)
	stored.Total = decimal.NewFromInt(1)

	resp, err := uc.Get(testUser, created.ID)
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(200)), "el subtotal debe recalcularse: %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("232")), "el total debe recalcularse: %s", resp.Total)
}

func TestNextNumberPreview_NoReservaElFolio(t *testing.T) {
	uc, _ := newFixture()

	preview1, err := uc.NextNumberPreview(testUser)
	require.NoError(t, err)
	preview2, err := uc.NextNumberPreview(testUser)
	require.NoError(t, err)
	assert.Equal(t, preview1.QuotationNumber, preview2.QuotationNumber, "la vista previa no consume el consecutivo")

	created, err := uc.Create(context.Background(), testUser, request(item(1, "10")))
	require.NoError(t, err)
	assert.Equal(t, preview1.QuotationNumber, created.QuotationNumber)
}
