package dto

import "time"

// CategoryRequest body pour créer/mettre à jour une catégorie.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse représentation d'une catégorie dans les réponses API.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
