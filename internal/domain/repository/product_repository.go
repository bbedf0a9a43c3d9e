package repository

import "github.com/megamind/stockmanager-api/internal/domain/entity"

// ProductRepository port de persistance pour Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	// GetForUpdate verrouille la ligne produit (SELECT FOR UPDATE) ; à
	// n'utiliser que dans une transaction.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity écrase le stock dénormalisé ; réservé à la transaction
	// qui insère le mouvement correspondant.
	UpdateQuantity(id string, quantity int) error
	List(limit, offset int) ([]*entity.Product, error)
	Count() (int64, error)
	SearchByName(pattern string, limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	Delete(id string) error
}
