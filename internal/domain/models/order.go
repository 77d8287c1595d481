package models

// OrderStatusPending — единственный статус заказа в рамках системы,
// переходов в другие статусы нет.
const OrderStatusPending = "pending"

// Order представляет оформленный заказ. После создания неизменяем.
// Items хранит JSON-снапшот позиций на момент заказа: последующие
// изменения каталога не должны менять историю заказов.
type Order struct {
	ID            int64  `json:"id"`
	SessionID     string `json:"sessionId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Address       string `json:"address"`
	TotalAmount   string `json:"totalAmount"` // Форматированная строка, не число
	Status        string `json:"status"`
	Items         string `json:"items"` // JSON-строка со списком позиций
	CreatedAt     string `json:"createdAt"`
}

// OrderLine — одна позиция в снапшоте заказа
type OrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"` // Цена на момент заказа
}
