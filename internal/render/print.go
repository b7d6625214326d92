package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// Documento de impresión: HTML autocontenido (estilos inline, sin hojas ni
// assets externos) que se abre en una ventana nueva, dispara el diálogo de
// impresión nativo y se cierra al terminarlo o descartarlo.
const printTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Cotización {{.View.Number}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1f2937; margin: 0; background: {{.Palette.Background}}; }
  .page { max-width: 800px; margin: 0 auto; padding: 32px; border: 1px solid #000; border-radius: 6px; }
  h1 { color: {{.Palette.Primary}}; font-size: 26px; margin: 0 0 4px; }
  .number { color: #6b7280; font-size: 13px; margin-bottom: 24px; }
  .parties { display: flex; justify-content: space-between; gap: 24px; margin-bottom: 24px; }
  .party h2 { font-size: 12px; text-transform: uppercase; color: {{.Palette.Accent}}; margin: 0 0 6px; }
  .party p { margin: 2px 0; font-size: 12px; }
  .dates { font-size: 12px; margin-bottom: 16px; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th { background: {{.Palette.Primary}}; color: #fff; text-align: left; padding: 6px 8px; }
  td { border-bottom: 1px solid #e5e7eb; padding: 6px 8px; vertical-align: top; }
  td.num, th.num { text-align: right; }
  .item-desc { color: #6b7280; }
  .summary { margin-top: 16px; margin-left: auto; width: 260px; font-size: 12px; }
  .summary div { display: flex; justify-content: space-between; padding: 3px 0; }
  .summary .total { font-weight: bold; font-size: 14px; color: {{.Palette.Primary}}; border-top: 1px solid #1f2937; }
  .block { margin-top: 20px; font-size: 12px; }
  .block h3 { font-size: 12px; color: {{.Palette.Accent}}; margin: 0 0 4px; }
  .footer { margin-top: 32px; text-align: center; font-size: 10px; color: #6b7280; }
  @media print { .page { border: 1px solid #000; } }
</style>
</head>
<body>
<div class="page">
  <h1>COTIZACIÓN</h1>
  <div class="number">#{{.View.Number}}</div>
  <div class="parties">
    <div class="party">
      <h2>De</h2>
      <p><strong>{{.View.Company.Name}}</strong></p>
      {{if .View.Company.Representative}}<p>{{.View.Company.Representative}}</p>{{end}}
      <p>{{.View.Company.Address}}</p>
      <p>{{.View.Company.Phone}}</p>
      <p>{{.View.Company.Email}}{{if .View.Company.Website}} &nbsp; {{.View.Company.Website}}{{end}}</p>
    </div>
    <div class="party">
      <h2>Para</h2>
      <p><strong>{{.View.Customer.Name}}</strong></p>
      {{if .View.Customer.Email}}<p>{{.View.Customer.Email}}</p>{{end}}
      {{if .View.Customer.Phone}}<p>{{.View.Customer.Phone}}</p>{{end}}
      {{if .View.Customer.Address}}<p>{{.View.Customer.Address}}</p>{{end}}
    </div>
  </div>
  {{if .View.ProjectName}}<div class="dates"><strong>Proyecto:</strong> {{.View.ProjectName}}</div>{{end}}
  <div class="dates">
    <strong>Fecha de Emisión:</strong> {{.View.DateText}}
    {{if .View.ValidUntilText}} &nbsp;&nbsp; <strong>Válido Hasta:</strong> {{.View.ValidUntilText}}{{end}}
  </div>
  <table>
    <thead>
      <tr><th>Descripción</th><th class="num">Cant.</th><th class="num">Precio</th><th class="num">Total</th></tr>
    </thead>
    <tbody>
      {{range .View.Items}}
      <tr>
        <td><strong>{{.Name}}</strong>{{if .Description}}<br><span class="item-desc">{{.Description}}</span>{{end}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{.UnitPriceText}}</td>
        <td class="num">{{.LineTotalText}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <div class="summary">
    <div><span>Subtotal:</span><span>{{.View.SubtotalText}}</span></div>
    <div><span>{{.View.TaxLabel}}:</span><span>{{.View.TaxAmountText}}</span></div>
    <div class="total"><span>Total:</span><span>{{.View.TotalText}}</span></div>
  </div>
  {{if .View.Notes}}<div class="block"><h3>Notas</h3><p>{{.View.Notes}}</p></div>{{end}}
  {{if .View.DeliveryTerms}}<div class="block"><h3>Términos de Entrega</h3><p>{{.View.DeliveryTerms}}</p></div>{{end}}
  <div class="footer">{{.View.Company.Name}} &middot; {{.View.Company.Phone}} &middot; {{.View.Company.Email}}</div>
</div>
<script>
  window.addEventListener("load", function () {
    window.print();
    window.addEventListener("afterprint", function () { window.close(); });
  });
</script>
</body>
</html>`

var printTmpl = template.Must(template.New("print").Parse(printTemplate))

// Print adaptador de la superficie de impresión. Devuelve el documento HTML
// autocontenido; puro respecto del view recibido.
func Print(v QuotationView) ([]byte, error) {
	var buf bytes.Buffer
	data := PreviewDocument{Template: v.Template, Palette: PaletteFor(v.Template), View: v}
	if err := printTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render: documento de impresión: %w", err)
	}
	return buf.Bytes(), nil
}
