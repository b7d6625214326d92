package render_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/quote"
	"github.com/spekmx/cotizador-api/internal/render"
)

func sampleSnapshot(t *testing.T) (entity.Quotation, []entity.QuotationItem) {
	t.Helper()
	d := quote.NewDraft("user-1", entity.CompanySnapshot{
		Name:    "Mi Empresa SRL",
		Email:   "contacto@miempresa.com",
		Phone:   "+52 (123) 456-7890",
		Address: "Av. Principal 123, CDMX",
	})
	d.SetCustomer(entity.CustomerInfo{Name: "ACME SA", Email: "compras@acme.mx"})
	d.SetProjectName("Planta Norte")
	d.SetTax(quote.CustomTax("ISR", decimal.NewFromInt(10)))
	_, err := d.Items().Add(quote.ItemInput{Name: "Bomba sumergible", Description: "1.5 HP", Quantity: 3, UnitPrice: decimal.RequireFromString("49.99")})
	require.NoError(t, err)
	require.NoError(t, d.AssignNumber("COT-2608-014"))
	q, items := d.Snapshot()
	return q, items
}

func TestBuildView_FormateaMontosYFechas(t *testing.T) {
	q, items := sampleSnapshot(t)
	q.Date = time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	until := time.Date(2026, time.September, 30, 10, 0, 0, 0, time.UTC)
	q.ValidUntil = &until

	v := render.BuildView(q, items)

	assert.Equal(t, "COT-2608-014", v.Number)
	assert.Equal(t, "31 de agosto de 2026", v.DateText)
	assert.Equal(t, "30 de septiembre de 2026", v.ValidUntilText)
	assert.Equal(t, "$149.97", v.SubtotalText)
	assert.Equal(t, "ISR (10%)", v.TaxLabel)
	assert.Equal(t, "$15.00", v.TaxAmountText)
	assert.Equal(t, "$164.97", v.TotalText)
	require.Len(t, v.Items, 1)
	assert.Equal(t, 1, v.Items[0].Index)
	assert.Equal(t, "$49.99", v.Items[0].UnitPriceText)
	assert.Equal(t, "$149.97", v.Items[0].LineTotalText)
}

// Contrato de fuente única: la vista previa y el documento de impresión
// muestran exactamente los mismos montos para el mismo snapshot, porque ambos
// parten del mismo view y ninguno recalcula.
func TestPreviewYPrint_MismosMontos(t *testing.T) {
	q, items := sampleSnapshot(t)
	v := render.BuildView(q, items)

	preview := render.Preview(v)
	html, err := render.Print(v)
	require.NoError(t, err)

	assert.Equal(t, v.TotalText, preview.View.TotalText)
	assert.Equal(t, v.SubtotalText, preview.View.SubtotalText)
	assert.Contains(t, string(html), v.TotalText)
	assert.Contains(t, string(html), v.SubtotalText)
	assert.Contains(t, string(html), v.TaxAmountText)
}

// Pureza del adaptador: dos renders del mismo view son idénticos.
func TestPreview_Idempotente(t *testing.T) {
	q, items := sampleSnapshot(t)
	v := render.BuildView(q, items)

	a := render.Preview(v)
	b := render.Preview(v)
	assert.Equal(t, a, b)

	h1, err := render.Print(v)
	require.NoError(t, err)
	h2, err := render.Print(v)
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

// El documento de impresión es autocontenido: estilos inline, script de
// impresión con autocierre y sin referencias externas.
func TestPrint_Autocontenido(t *testing.T) {
	q, items := sampleSnapshot(t)
	html := mustPrint(t, render.BuildView(q, items))

	assert.Contains(t, html, "<style>")
	assert.Contains(t, html, "window.print()")
	assert.Contains(t, html, "afterprint")
	assert.Contains(t, html, "window.close()")
	assert.NotContains(t, html, "<link", "no debe depender de hojas de estilo externas")
	assert.NotContains(t, html, "src=\"http", "no debe cargar assets externos")
}

// La plantilla cambia la paleta pero nunca los números.
func TestPreview_PlantillasMismosNumeros(t *testing.T) {
	q, items := sampleSnapshot(t)

	var totals []string
	for _, tpl := range []string{entity.TemplateProfessional, entity.TemplateMinimalist, entity.TemplateCreative, entity.TemplateCorporate} {
		q.Template = tpl
		doc := render.Preview(render.BuildView(q, items))
		assert.Equal(t, tpl, doc.Template)
		totals = append(totals, doc.View.TotalText)
	}
	for _, total := range totals {
		assert.Equal(t, totals[0], total)
	}

	// Plantilla desconocida cae a la paleta professional.
	assert.Equal(t, render.PaletteFor(entity.TemplateProfessional), render.PaletteFor("no-existe"))
}

func mustPrint(t *testing.T, v render.QuotationView) string {
	t.Helper()
	out, err := render.Print(v)
	require.NoError(t, err)
	return string(out)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", render.FormatMoney(decimal.Zero))
	assert.Equal(t, "$1,234.50", render.FormatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$1,000,000.00", render.FormatMoney(decimal.NewFromInt(1000000)))
	assert.True(t, strings.HasPrefix(render.FormatMoney(decimal.RequireFromString("15.004")), "$15.00"),
		"redondeo a 2 decimales en el formato")
}
