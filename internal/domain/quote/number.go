package quote

import (
	"fmt"
	"time"
)

// FormatNumber construye el número de cotización COT-YYMM-NNN: año y mes de
// emisión en dos dígitos cada uno más el consecutivo del usuario en el
// periodo. El consecutivo lo entrega la secuencia transaccional de
// persistencia; aquí solo se da formato.
func FormatNumber(at time.Time, seq int) string {
	return fmt.Sprintf("COT-%s-%03d", at.Format("0601"), seq)
}

// Period devuelve la clave de periodo (YYMM) usada por el contador por
// usuario.
func Period(at time.Time) string {
	return at.Format("0601")
}
