package entity

// Record fila de un recurso genérico: columna -> valor ya normalizado
// (string, int64, float64, bool, time.Time o nil).
type Record map[string]any

// ID devuelve la clave id si es entera.
func (r Record) ID() (int64, bool) {
	id, ok := r["id"].(int64)
	return id, ok
}
