package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/megamind/stockmanager-api/internal/domain/entity"
)

// TopProduct agrégat des produits les plus vendus.
type TopProduct struct {
	ProductID    string
	ProductName  string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// SaleRepository port de persistance pour Sale et ses lignes (DIP).
type SaleRepository interface {
	// Create persiste la vente et ses lignes. Appelé dans la transaction qui
	// enregistre aussi les mouvements de stock.
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	Count() (int64, error)
	ListByDateBetween(from, to time.Time, limit, offset int) ([]*entity.Sale, error)
	CountByDateBetween(from, to time.Time) (int64, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Sale, error)
	CountByProduct(productID string) (int64, error)
	TopProducts(limit int) ([]TopProduct, error)
}
