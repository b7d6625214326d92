// Package pdf genera el documento PDF de una cotización con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: COTIZACIÓN + folio  │  Fecha + Vigencia            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DE: empresa emisora         │  PARA: cliente               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Concepto | Cant. | P. Unit. | Importe           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Subtotal / Impuesto / TOTAL                       │
//	│  NOTAS y TÉRMINOS DE ENTREGA                                │
//	│  FOOTER: leyenda de cortesía centrada                       │
//	└─────────────────────────────────────────────────────────────┘
//
// El generador consume el view ya formateado (montos y fechas como texto):
// aquí no se calcula ni se redondea nada.
package pdf

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/spekmx/cotizador-api/internal/application/quotation"
	"github.com/spekmx/cotizador-api/internal/render"
)

var _ quotation.PDFGenerator = (*MarotoPDFGenerator)(nil)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// MarotoPDFGenerator implementa quotation.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateQuotationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateQuotationPDF(_ context.Context, v render.QuotationView) ([]byte, error) {
	palette := render.PaletteFor(v.Template)
	primary := hexColor(palette.Primary)

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+v.Number, true).
		WithAuthor(v.Company.Name, true)

	// Marco de página en el color de la paleta; se repite en cada página.
	if path, err := borderAssetPath(palette.Primary, primary); err == nil {
		if img, err := os.ReadFile(path); err == nil {
			builder = builder.WithBackgroundImage(img, extension.Png)
		}
	}

	m := maroto.New(builder.Build())

	m.AddRows(headerRow(v, primary))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.5}))
	m.AddRows(partiesRow(v, primary))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(primary))
	for _, r := range tableItemRows(v.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.3}))
	m.AddRows(summaryRow(v, primary))

	for _, r := range notesRows(v, primary) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(v, primary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título + folio (izq) y fechas (der).
func headerRow(v render.QuotationView, primary *props.Color) core.Row {
	right := []core.Component{
		text.New("Fecha: "+v.DateText, props.Text{
			Size: 9, Align: align.Right, Top: 3, Color: colorGray,
		}),
	}
	if v.ValidUntilText != "" {
		right = append(right, text.New("Válida hasta: "+v.ValidUntilText, props.Text{
			Size: 9, Align: align.Right, Top: 9, Color: colorGray,
		}))
	}
	left := []core.Component{
		text.New("COTIZACIÓN", props.Text{
			Style: fontstyle.Bold, Size: 16, Color: primary, Top: 1,
		}),
		text.New(v.Number, props.Text{
			Style: fontstyle.Bold, Size: 11, Top: 10,
		}),
	}
	if v.ProjectName != "" {
		left = append(left, text.New(v.ProjectName, props.Text{
			Size: 9, Top: 17, Color: colorGray,
		}))
	}
	return row.New(22).Add(
		col.New(7).Add(left...),
		col.New(5).Add(right...),
	)
}

// partiesRow: bloque DE (emisora) y PARA (cliente) en dos columnas.
func partiesRow(v render.QuotationView, primary *props.Color) core.Row {
	return row.New(30).Add(
		partyCol("DE", v.Company, primary),
		partyCol("PARA", v.Customer, primary),
	)
}

func partyCol(title string, p render.PartyView, primary *props.Color) core.Col {
	comps := []core.Component{
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: primary, Top: 1}),
		text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
	}
	top := 12.0
	for _, s := range []string{p.Representative, p.Address, p.Phone, p.Email, p.Website} {
		if s == "" {
			continue
		}
		comps = append(comps, text.New(s, props.Text{Size: 8, Top: top, Color: colorGray}))
		top += 4.5
	}
	return col.New(6).Add(comps...)
}

// tableHeaderRow: cabecera de la tabla de conceptos.
func tableHeaderRow(primary *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: primary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Concepto", 6, align.Left),
		h("Cant.", 1, align.Center),
		h("P. Unitario", 2, align.Right),
		h("Importe", 2, align.Right),
	)
}

// tableItemRows: una fila por concepto; la descripción va debajo del nombre y
// la imagen (si la línea trae un data URI decodificable) en una fila aparte.
func tableItemRows(items []render.ItemView) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		height := 7.0
		nameComps := []core.Component{
			text.New(it.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1}),
		}
		if it.Description != "" {
			height = 12
			nameComps = append(nameComps, text.New(it.Description, props.Text{
				Size: 7, Align: align.Left, Top: 6, Left: 1, Color: colorGray,
			}))
		}
		result = append(result, row.New(height).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Index),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(nameComps...),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				it.UnitPriceText,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.LineTotalText,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))

		if bytes, ext, ok := dataURIImage(it.Image); ok {
			result = append(result, row.New(24).Add(
				col.New(1),
				col.New(3).Add(image.NewFromBytes(bytes, ext, props.Rect{
					Percent: 90,
				})),
				col.New(8),
			))
		}
	}
	return result
}

// summaryRow: bloque de totales alineado a la derecha.
func summaryRow(v render.QuotationView, primary *props.Color) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: primary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: primary, Right: 1,
		})
	}

	labels := []core.Component{label("Subtotal:")}
	values := []core.Component{value(v.SubtotalText)}
	if v.TaxLabel != "" {
		labels = append(labels, label(v.TaxLabel+":"))
		values = append(values, value(v.TaxAmountText))
	}
	labels = append(labels, grandLabel("TOTAL:"))
	values = append(values, grandValue(v.TotalText))

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

// notesRows: notas y términos de entrega, solo si existen.
func notesRows(v render.QuotationView, primary *props.Color) []core.Row {
	var rows []core.Row
	section := func(title, body string) {
		rows = append(rows,
			row.New(6).Add(col.New(12).Add(
				text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: primary, Top: 2}),
			)),
			row.New(10).Add(col.New(12).Add(
				text.New(body, props.Text{Size: 8, Color: colorGray, Top: 1}),
			)),
		)
	}
	if v.Notes != "" {
		section("NOTAS", v.Notes)
	}
	if v.DeliveryTerms != "" {
		section("TÉRMINOS DE ENTREGA", v.DeliveryTerms)
	}
	return rows
}

// footerRow: contacto de la emisora y leyendas de cortesía, centrados.
func footerRow(v render.QuotationView, primary *props.Color) core.Row {
	var comps []core.Component
	top := 2.0
	if contact := contactLine(v.Company); contact != "" {
		comps = append(comps, text.New(contact, props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: top,
		}))
		top += 6
	}
	comps = append(comps,
		text.New("Gracias por su preferencia.", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: primary, Top: top,
		}),
		text.New("Esta cotización no constituye un comprobante fiscal.", props.Text{
			Size: 7.5, Align: align.Center, Color: colorGray, Top: top + 6,
		}),
	)
	return row.New(18).Add(col.New(12).Add(comps...))
}

// contactLine arma "¿Preguntas? Contáctenos: correo | teléfono" con los datos
// que la emisora tenga capturados.
func contactLine(p render.PartyView) string {
	parts := make([]string, 0, 2)
	if p.Email != "" {
		parts = append(parts, p.Email)
	}
	if p.Phone != "" {
		parts = append(parts, p.Phone)
	}
	if len(parts) == 0 {
		return ""
	}
	return "¿Preguntas? Contáctenos: " + strings.Join(parts, " | ")
}

// dataURIImage decodifica una imagen embebida como data URI base64.
// Referencias que no sean data URIs (URLs) se omiten del PDF.
func dataURIImage(ref string) ([]byte, extension.Type, bool) {
	if !strings.HasPrefix(ref, "data:image/") {
		return nil, "", false
	}
	rest := strings.TrimPrefix(ref, "data:image/")
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return nil, "", false
	}
	var ext extension.Type
	switch rest[:semi] {
	case "png":
		ext = extension.Png
	case "jpeg", "jpg":
		ext = extension.Jpg
	default:
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return nil, "", false
	}
	return data, ext, true
}

// hexColor convierte "#rrggbb" a props.Color (negro si es inválido).
func hexColor(hex string) *props.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return &props.Color{}
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return &props.Color{}
	}
	return &props.Color{Red: r, Green: g, Blue: b}
}
