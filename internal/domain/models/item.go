package models

// Item представляет товар или услугу каталога.
// Цена хранится как свободный текст ("$5/page", "Starting at $20/100"),
// числовое значение извлекается только при расчете итогов.
type Item struct {
	ID          int64   `json:"id"`
	CategoryID  int64   `json:"categoryId"` // Ссылка на категорию; висячие ссылки допустимы
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       *string `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	IsInShop    bool    `json:"isInShop"` // Управляет видимостью на странице магазина
}
