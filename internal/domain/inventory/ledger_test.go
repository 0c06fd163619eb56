package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApplyDelta(t *testing.T) {
	cases := []struct {
		current, delta, want string
	}{
		{"50", "-5", "45"},
		{"50", "10.5", "60.5"},
		{"2", "-3", "-1"}, // sin tope inferior
		{"0", "0", "0"},
	}
	for _, c := range cases {
		m := ApplyDelta(d(c.current), d(c.delta))
		assert.True(t, m.New.Equal(d(c.want)), "%s + %s", c.current, c.delta)
		assert.True(t, m.New.Equal(m.Previous.Add(m.Delta)))
	}
}

func TestSetTo(t *testing.T) {
	m := SetTo(d("50"), d("45"))
	assert.True(t, m.Delta.Equal(d("-5")))
	assert.True(t, m.Previous.Equal(d("50")))
	assert.True(t, m.Changed())

	assert.False(t, SetTo(d("7"), d("7.00")).Changed())
}

func TestSplitUsage(t *testing.T) {
	used, added := SplitUsage(d("-5"), d("10"), d("-2.5"), d("0"))
	assert.True(t, used.Equal(d("7.5")))
	assert.True(t, added.Equal(d("10")))

	used, added = SplitUsage()
	assert.True(t, used.IsZero())
	assert.True(t, added.IsZero())
}

func TestSuggestedOrder(t *testing.T) {
	assert.True(t, SuggestedOrder(d("5"), d("10"), d("100")).Equal(d("95")))
	assert.True(t, SuggestedOrder(d("-3"), d("10"), d("20")).Equal(d("23")))
	// sin máximo: se repone hasta el mínimo
	assert.True(t, SuggestedOrder(d("4"), d("10"), d("0")).Equal(d("6")))
	assert.True(t, SuggestedOrder(d("150"), d("10"), d("100")).IsZero())
}

func TestCostCalculator(t *testing.T) {
	// 10 u a 2.00 + 10 u a 4.00 = 3.00
	assert.True(t, CostCalculator(d("10"), d("2"), d("10"), d("4")).Equal(d("3")))
	// stock negativo no pondera
	assert.True(t, CostCalculator(d("-5"), d("2"), d("10"), d("4")).Equal(d("4")))
	assert.True(t, CostCalculator(d("0"), d("0"), d("0"), d("4")).IsZero())
}
