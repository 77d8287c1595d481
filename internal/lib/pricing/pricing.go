// Package pricing считает итоги корзины по фиксированным ставкам.
// Все вычисления идут в десятичной арифметике, чтобы многократные
// сложения не накапливали двоичную погрешность.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	taxRate       = decimal.RequireFromString("0.10")
	shippingRate  = decimal.RequireFromString("0.05")
	shippingFloor = decimal.RequireFromString("5.00")
	handlingFee   = decimal.RequireFromString("2.50")
)

// Line — одна позиция расчета: текстовая цена и количество.
type Line struct {
	Price    string
	Quantity int
}

// Totals — результат расчета корзины.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Handling decimal.Decimal
	Total    decimal.Decimal
}

// Amounts — итоги, отрендеренные ровно с двумя знаками после запятой.
type Amounts struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Handling string `json:"handling"`
	Total    string `json:"total"`
}

// Amounts возвращает денежные значения в презентационном виде.
func (t Totals) Amounts() Amounts {
	return Amounts{
		Subtotal: t.Subtotal.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Shipping: t.Shipping.StringFixed(2),
		Handling: t.Handling.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	}
}

// ParsePrice извлекает числовое значение из свободного текста цены.
// Из строки выбрасывается всё, кроме цифр, точки и минуса, после чего
// разбирается самый длинный числовой префикс: "$10-$50" даёт 10,
// "Starting at $5" даёт 5. Пустая или неразборчивая строка — ноль;
// цены здесь носят рекомендательный характер, это осознанное упрощение,
// а не парсер валют.
func ParsePrice(price string) decimal.Decimal {
	var stripped strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			stripped.WriteRune(r)
		}
	}
	prefix := numericPrefix(stripped.String())
	if prefix == "" || prefix == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numericPrefix возвращает ведущий фрагмент вида [-]digits[.digits].
func numericPrefix(s string) string {
	end := 0
	sawDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			end = i + 1
		case r == '-' && i == 0:
			end = i + 1
		case r == '.' && !sawDot:
			sawDot = true
			end = i + 1
		default:
			return strings.TrimSuffix(s[:end], ".")
		}
	}
	return strings.TrimSuffix(s[:end], ".")
}

// Calculate считает итоги по позициям корзины:
// subtotal = сумма цена*количество, налог 10%, доставка 5% но не меньше
// $5 (нижняя планка действует и для пустой корзины), сбор за обработку
// $2.50 только для непустой корзины.
func Calculate(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(ParsePrice(line.Price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	tax := subtotal.Mul(taxRate)

	shipping := subtotal.Mul(shippingRate)
	if shipping.LessThan(shippingFloor) {
		shipping = shippingFloor
	}

	handling := decimal.Zero
	if len(lines) > 0 {
		handling = handlingFee
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Handling: handling,
		Total:    subtotal.Add(tax).Add(shipping).Add(handling),
	}
}
