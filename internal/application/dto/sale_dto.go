package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest ligne de vente demandée.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// CreateSaleRequest body pour POST /api/sales. CustomerID vide = vente anonyme.
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id,omitempty"`
	Items      []SaleItemRequest `json:"items"`
}

// SaleItemResponse ligne de vente dans les réponses API.
type SaleItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// SaleResponse représentation d'une vente dans les réponses API.
type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Date          time.Time          `json:"date"`
	PaymentStatus string             `json:"payment_status"`
	CreatedBy     string             `json:"created_by"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
}

// SaleListResponse page de ventes.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// TopProductResponse agrégat des produits les plus vendus.
type TopProductResponse struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}
