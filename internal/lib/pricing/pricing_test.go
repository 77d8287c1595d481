package pricing_test

import (
	"testing"

	"github.com/pingscomm/shop-backend/internal/lib/pricing"
	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	// Табличный тест извлечения числа из свободного текста цены.
	cases := []struct {
		price string
		want  string
	}{
		{"$49.99", "49.99"},
		{"$20", "20"},
		{"Starting at $5", "5"},
		{"Starting at $20/100", "20100"}, // слэш выбрасывается, остаток склеивается
		{"$10-$50", "10"},                // берётся ведущий числовой префикс
		{"$5/page", "5"},
		{"free", "0"},
		{"", "0"},
		{"-", "0"},
		{"$.50", "0.5"},
	}

	for _, tc := range cases {
		got := pricing.ParsePrice(tc.price)
		assert.Equal(t, tc.want, got.String(), "price %q", tc.price)
	}
}

func TestCalculate(t *testing.T) {
	// Корзина из двух позиций: subtotal 45, налог 4.50, доставка
	// max(2.25, 5) = 5, обработка 2.50, итого 57.
	totals := pricing.Calculate([]pricing.Line{
		{Price: "$20", Quantity: 2},
		{Price: "Starting at $5", Quantity: 1},
	})

	amounts := totals.Amounts()
	assert.Equal(t, "45.00", amounts.Subtotal)
	assert.Equal(t, "4.50", amounts.Tax)
	assert.Equal(t, "5.00", amounts.Shipping)
	assert.Equal(t, "2.50", amounts.Handling)
	assert.Equal(t, "57.00", amounts.Total)
}

func TestCalculate_ShippingAboveFloor(t *testing.T) {
	// 5% от 200 больше нижней планки в $5.
	totals := pricing.Calculate([]pricing.Line{
		{Price: "$100", Quantity: 2},
	})

	amounts := totals.Amounts()
	assert.Equal(t, "200.00", amounts.Subtotal)
	assert.Equal(t, "20.00", amounts.Tax)
	assert.Equal(t, "10.00", amounts.Shipping)
	assert.Equal(t, "2.50", amounts.Handling)
	assert.Equal(t, "232.50", amounts.Total)
}

func TestCalculate_EmptyCart(t *testing.T) {
	// Политика пустой корзины: subtotal и handling нулевые, нижняя
	// планка доставки действует и здесь.
	totals := pricing.Calculate(nil)

	amounts := totals.Amounts()
	assert.Equal(t, "0.00", amounts.Subtotal)
	assert.Equal(t, "0.00", amounts.Tax)
	assert.Equal(t, "5.00", amounts.Shipping)
	assert.Equal(t, "0.00", amounts.Handling)
	assert.Equal(t, "5.00", amounts.Total)
}

func TestCalculate_NoBinaryDrift(t *testing.T) {
	// Многократное сложение 0.10 в двоичном float даёт погрешность;
	// десятичная арифметика должна быть точной.
	lines := make([]pricing.Line, 0, 1000)
	for i := 0; i < 1000; i++ {
		lines = append(lines, pricing.Line{Price: "$0.10", Quantity: 1})
	}

	totals := pricing.Calculate(lines)
	assert.Equal(t, "100.00", totals.Amounts().Subtotal)
	assert.Equal(t, "10.00", totals.Amounts().Tax)
}

func TestCalculate_UnparsablePriceIsZero(t *testing.T) {
	totals := pricing.Calculate([]pricing.Line{
		{Price: "contact us", Quantity: 3},
		{Price: "$10", Quantity: 1},
	})
	assert.Equal(t, "10.00", totals.Amounts().Subtotal)
}
