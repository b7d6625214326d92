package quote_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/quote"
)

func strPtr(s string) *string              { return &s }
func intPtr(n int64) *int64                { return &n }
func decPtr(s string) *decimal.Decimal     { d := decimal.RequireFromString(s); return &d }

// Add aplica los valores por defecto del formulario: cantidad 1, precio 0.
func TestItemList_AddConDefaults(t *testing.T) {
	l := quote.NewItemList()

	id, err := l.Add(quote.ItemInput{Name: "Instalación"})
	require.NoError(t, err)
	require.NotEmpty(t, id, "debe devolver un ID estable")

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].Quantity)
	assert.True(t, items[0].UnitPrice.IsZero())
	assert.True(t, items[0].LineTotal.IsZero())
	assert.Equal(t, 0, items[0].Position)
}

// Tras cualquier operación, LineTotal == Quantity × UnitPrice en cada línea.
func TestItemList_UpdateRecalculaLineTotal(t *testing.T) {
	l := quote.NewItemList()
	id, _ := l.Add(quote.ItemInput{Name: "Bomba", Quantity: 2, UnitPrice: decimal.RequireFromString("100.00")})

	require.NoError(t, l.Update(id, quote.ItemPatch{Quantity: intPtr(5)}))
	assert.True(t, l.Items()[0].LineTotal.Equal(decimal.RequireFromString("500.00")))

	require.NoError(t, l.Update(id, quote.ItemPatch{UnitPrice: decPtr("49.99")}))
	assert.True(t, l.Items()[0].LineTotal.Equal(decimal.RequireFromString("249.95")))

	// Un patch que solo toca el nombre no altera el total.
	require.NoError(t, l.Update(id, quote.ItemPatch{Name: strPtr("Bomba sumergible")}))
	assert.True(t, l.Items()[0].LineTotal.Equal(decimal.RequireFromString("249.95")))
}

// Un patch inválido se rechaza completo y la línea conserva el valor anterior.
func TestItemList_PatchInvalidoConservaValores(t *testing.T) {
	l := quote.NewItemList()
	id, _ := l.Add(quote.ItemInput{Name: "Servicio", Quantity: 3, UnitPrice: decimal.NewFromInt(10)})

	assert.ErrorIs(t, l.Update(id, quote.ItemPatch{Quantity: intPtr(0)}), domain.ErrInvalidInput)
	assert.ErrorIs(t, l.Update(id, quote.ItemPatch{UnitPrice: decPtr("-1")}), domain.ErrInvalidInput)

	it := l.Items()[0]
	assert.Equal(t, int64(3), it.Quantity)
	assert.True(t, it.UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.True(t, it.LineTotal.Equal(decimal.NewFromInt(30)))
}

// Los IDs son estables: eliminar una línea no invalida los IDs de las demás
// (el índice sí cambia, por eso el índice no sirve como identidad).
func TestItemList_IDsEstablesTrasRemove(t *testing.T) {
	l := quote.NewItemList()
	idA, _ := l.Add(quote.ItemInput{Name: "A"})
	idB, _ := l.Add(quote.ItemInput{Name: "B"})
	idC, _ := l.Add(quote.ItemInput{Name: "C"})

	require.NoError(t, l.Remove(idB))

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, idA, items[0].ID)
	assert.Equal(t, idC, items[1].ID)
	assert.Equal(t, []int{0, 1}, []int{items[0].Position, items[1].Position},
		"las posiciones se compactan tras la baja")

	// La línea eliminada deja de ser direccionable.
	assert.ErrorIs(t, l.Update(idB, quote.ItemPatch{Name: strPtr("X")}), domain.ErrItemNotFound)
}

// SetImage / ClearImage mutan solo el dato, sin recálculo.
func TestItemList_Imagenes(t *testing.T) {
	l := quote.NewItemList()
	id, _ := l.Add(quote.ItemInput{Name: "Equipo", Quantity: 1, UnitPrice: decimal.NewFromInt(100)})

	require.NoError(t, l.SetImage(id, "data:image/png;base64,AAAA"))
	assert.Equal(t, "data:image/png;base64,AAAA", l.Items()[0].Image)
	assert.True(t, l.Items()[0].LineTotal.Equal(decimal.NewFromInt(100)))

	require.NoError(t, l.ClearImage(id))
	assert.Empty(t, l.Items()[0].Image)

	assert.ErrorIs(t, l.SetImage("no-existe", "x"), domain.ErrItemNotFound)
}

// Escenario D: eliminar el único ítem regresa los totales a cero de forma
// síncrona, observable en la siguiente lectura.
func TestItemList_RemoveUnicoItemRegresaTotalesACero(t *testing.T) {
	l := quote.NewItemList()
	id, _ := l.Add(quote.ItemInput{Name: "Único", Quantity: 2, UnitPrice: decimal.NewFromInt(100)})

	before := quote.ComputeTotals(l.Items(), quote.StandardIVARate)
	require.True(t, before.Total.Equal(decimal.NewFromInt(232)))

	require.NoError(t, l.Remove(id))

	after := quote.ComputeTotals(l.Items(), quote.StandardIVARate)
	assert.True(t, after.Subtotal.IsZero())
	assert.True(t, after.TaxAmount.IsZero())
	assert.True(t, after.Total.IsZero())
}

// Items() devuelve una copia: mutar el slice devuelto no toca la lista.
func TestItemList_ItemsDevuelveCopia(t *testing.T) {
	l := quote.NewItemList()
	_, _ = l.Add(quote.ItemInput{Name: "Original", Quantity: 1, UnitPrice: decimal.NewFromInt(5)})

	out := l.Items()
	out[0].Name = "Mutado"
	out[0].Quantity = 999

	assert.Equal(t, "Original", l.Items()[0].Name)
	assert.Equal(t, int64(1), l.Items()[0].Quantity)
}
