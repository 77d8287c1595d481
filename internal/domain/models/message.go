package models

// Message представляет сообщение из контактной формы.
// Создается один раз, жизненного цикла после создания нет.
type Message struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
