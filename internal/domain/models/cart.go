package models

// CartItem представляет строку корзины. Корзина идентифицируется
// непрозрачной строкой sessionId, сгенерированной клиентом.
// Инвариант: не более одной строки на пару (sessionId, itemId).
type CartItem struct {
	ID        int64  `json:"id"`
	SessionID string `json:"sessionId"`
	ItemID    int64  `json:"itemId"`
	Quantity  int    `json:"quantity"`
}

// CartEntry — строка корзины вместе с актуальными данными товара.
// В отличие от снапшота заказа, корзина всегда отражает текущее
// состояние каталога.
type CartEntry struct {
	CartItem
	Item *Item `json:"item"`
}
