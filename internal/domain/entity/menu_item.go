package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem plato del menú.
type MenuItem struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	Cost        decimal.Decimal // costo por porción
	RecipeType  string
	Category    string
	Portions    int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var hundred = decimal.NewFromInt(100)

// ProfitMargin ((price - cost) / price) * 100, redondeado a 2 decimales; 0 si price es 0.
func (m *MenuItem) ProfitMargin() decimal.Decimal {
	if m.Price.IsZero() {
		return decimal.Zero
	}
	return m.Price.Sub(m.Cost).Div(m.Price).Mul(hundred).Round(2)
}

// RecipeLine cantidad de un ingrediente usada en un plato.
type RecipeLine struct {
	ID           int64
	MenuID       int64
	IngredientID int64
	Quantity     decimal.Decimal
	Unit         string
}
