package inventory

import "github.com/shopspring/decimal"

// Movement resultado de aplicar un cambio al stock de un artículo.
type Movement struct {
	Previous decimal.Decimal
	Delta    decimal.Decimal
	New      decimal.Decimal
}

// ApplyDelta calcula New = Previous + Delta. No hay tope inferior: el stock puede quedar negativo.
func ApplyDelta(current, delta decimal.Decimal) Movement {
	return Movement{Previous: current, Delta: delta, New: current.Add(delta)}
}

// SetTo calcula el movimiento que lleva el stock de current a target (edición directa).
func SetTo(current, target decimal.Decimal) Movement {
	return Movement{Previous: current, Delta: target.Sub(current), New: target}
}

// Changed indica si el movimiento altera el stock.
func (m Movement) Changed() bool { return !m.Delta.IsZero() }

// SplitUsage separa deltas negativos (consumo) y positivos (entradas); ambos totales en positivo.
func SplitUsage(deltas ...decimal.Decimal) (used, added decimal.Decimal) {
	for _, d := range deltas {
		if d.IsNegative() {
			used = used.Add(d.Neg())
		} else {
			added = added.Add(d)
		}
	}
	return used, added
}

// SuggestedOrder cantidad para volver al stock máximo; si no hay máximo útil, al mínimo.
// Nunca negativa.
func SuggestedOrder(current, minStock, maxStock decimal.Decimal) decimal.Decimal {
	target := maxStock
	if target.LessThanOrEqual(minStock) {
		target = minStock
	}
	q := target.Sub(current)
	if q.IsNegative() {
		return decimal.Zero
	}
	return q
}
