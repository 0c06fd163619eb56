package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient ingrediente de recetas. Cost es el costo del paquete comprado y
// Servings cuántas unidades de receta rinde. Un ingrediente compuesto toma su
// costo de la receta del plato RecipeMenuID.
type Ingredient struct {
	ID           int64
	Name         string
	Cost         decimal.Decimal
	Unit         string
	Servings     int
	IsCompound   bool
	RecipeMenuID *int64
	CreatedAt    time.Time
}
