package quote

import (
	"github.com/shopspring/decimal"

	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
)

// StandardIVARate tarifa fija del IVA estándar (16%).
var StandardIVARate = decimal.NewFromInt(16)

// TaxSelection selección de impuesto de la cotización. Modela los dos
// checkboxes mutuamente excluyentes del formulario (IVA / impuesto
// personalizado) como un valor con exactamente un modo activo: el estado
// "ambos marcados" es irrepresentable por construcción, no por validación
// posterior. Desmarcar ambos equivale a NoTax.
type TaxSelection struct {
	mode string
	name string
	rate decimal.Decimal
}

// IVATax selección de IVA estándar (16% fijo).
func IVATax() TaxSelection {
	return TaxSelection{mode: entity.TaxModeIVA, rate: StandardIVARate}
}

// CustomTax impuesto con nombre y tarifa definidos por el usuario.
// La tarifa se recorta al rango 0–100.
func CustomTax(name string, rate decimal.Decimal) TaxSelection {
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	if hundred := decimal.NewFromInt(100); rate.GreaterThan(hundred) {
		rate = hundred
	}
	return TaxSelection{mode: entity.TaxModeCustom, name: name, rate: rate}
}

// NoTax sin impuesto (tarifa 0).
func NoTax() TaxSelection {
	return TaxSelection{mode: entity.TaxModeNone, rate: decimal.Zero}
}

// TaxSelectionFrom rehidrata una selección desde sus campos persistidos o
// desde un DTO. Devuelve ErrInvalidInput si el modo no es conocido.
func TaxSelectionFrom(mode, name string, rate decimal.Decimal) (TaxSelection, error) {
	switch mode {
	case entity.TaxModeIVA, "":
		// IVA es el valor por defecto del formulario.
		return IVATax(), nil
	case entity.TaxModeCustom:
		return CustomTax(name, rate), nil
	case entity.TaxModeNone:
		return NoTax(), nil
	}
	return TaxSelection{}, domain.ErrInvalidInput
}

// Mode devuelve el modo activo (entity.TaxMode*).
func (t TaxSelection) Mode() string {
	if t.mode == "" {
		return entity.TaxModeIVA
	}
	return t.mode
}

// Name devuelve el nombre del impuesto personalizado (vacío en IVA y None).
func (t TaxSelection) Name() string {
	if t.Mode() == entity.TaxModeCustom {
		return t.name
	}
	return ""
}

// EffectiveRate devuelve la tarifa efectiva aplicada (porcentaje 0–100).
func (t TaxSelection) EffectiveRate() decimal.Decimal {
	switch t.Mode() {
	case entity.TaxModeIVA:
		return StandardIVARate
	case entity.TaxModeCustom:
		return t.rate
	}
	return decimal.Zero
}

// DisplayName nombre a mostrar junto a la tarifa en las superficies de render.
func (t TaxSelection) DisplayName() string {
	switch t.Mode() {
	case entity.TaxModeCustom:
		if t.name != "" {
			return t.name
		}
		return "Impuesto"
	case entity.TaxModeNone:
		return "Impuestos"
	}
	return "IVA"
}
