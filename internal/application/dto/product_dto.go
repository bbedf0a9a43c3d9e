package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body pour POST /api/products.
type CreateProductRequest struct {
	Name            string          `json:"name"`
	Barcode         string          `json:"barcode,omitempty"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantity_in_stock"`
	LowStockAlert   int             `json:"low_stock_alert"`
	CategoryID      string          `json:"category_id"`
}

// UpdateProductRequest body pour PUT/PATCH /api/products/:id. Les champs nil
// ne sont pas modifiés (PATCH) ; PUT les exige tous côté handler.
type UpdateProductRequest struct {
	Name            *string          `json:"name,omitempty"`
	Barcode         *string          `json:"barcode,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	QuantityInStock *int             `json:"quantity_in_stock,omitempty"`
	LowStockAlert   *int             `json:"low_stock_alert,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
}

// ProductResponse représentation d'un produit dans les réponses API.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Barcode         string          `json:"barcode,omitempty"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	QuantityInStock int             `json:"quantity_in_stock"`
	LowStockAlert   int             `json:"low_stock_alert"`
	LowStock        bool            `json:"low_stock"`
	CategoryID      string          `json:"category_id"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse page de produits.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
