package models

// Category представляет категорию каталога (товары и услуги)
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"` // Уникальный внешний ключ категории, используется в URL
	Description *string `json:"description"`
}
