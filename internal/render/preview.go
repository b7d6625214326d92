package render

import "github.com/spekmx/cotizador-api/internal/domain/entity"

// Palette colores de la plantilla visual, compartidos por la vista previa en
// pantalla y el documento de impresión.
type Palette struct {
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

// Paletas por plantilla. La elección de plantilla cambia solo la presentación;
// los números provienen siempre del mismo QuotationView.
var palettes = map[string]Palette{
	entity.TemplateProfessional: {Primary: "#1d4ed8", Accent: "#3b82f6", Background: "#ffffff"},
	entity.TemplateMinimalist:   {Primary: "#111827", Accent: "#6b7280", Background: "#ffffff"},
	entity.TemplateCreative:     {Primary: "#7c3aed", Accent: "#f59e0b", Background: "#faf5ff"},
	entity.TemplateCorporate:    {Primary: "#0f172a", Accent: "#475569", Background: "#f8fafc"},
}

// PaletteFor devuelve la paleta de la plantilla (professional si no existe).
func PaletteFor(templateID string) Palette {
	if p, ok := palettes[templateID]; ok {
		return p
	}
	return palettes[entity.TemplateProfessional]
}

// PreviewDocument salida del adaptador de vista previa: el view estructurado
// más la paleta de la plantilla elegida, listo para serializar a la pantalla.
type PreviewDocument struct {
	Template string        `json:"template"`
	Palette  Palette       `json:"palette"`
	View     QuotationView `json:"quotation"`
}

// Preview adaptador de la superficie en pantalla. Puro: mismo view, misma
// salida.
func Preview(v QuotationView) PreviewDocument {
	return PreviewDocument{
		Template: v.Template,
		Palette:  PaletteFor(v.Template),
		View:     v,
	}
}
