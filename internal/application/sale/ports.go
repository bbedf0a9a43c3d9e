package sale

import (
	"context"

	stockapp "github.com/megamind/stockmanager-api/internal/application/stock"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/repository"
)

// TxRunner exécute une fonction dans une transaction de BD couvrant la vente,
// ses mouvements de stock et les mises à jour de quantité produit.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockRecorder enregistre un mouvement avec les repositories de la
// transaction courante. Implémenté par le cas d'usage stock.
type StockRecorder interface {
	CreateMovementInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		in stockapp.MovementInput,
	) (*entity.StockMovement, error)
}

// InvoicePDFGenerator rend une facture en PDF. customer est nil pour une
// vente anonyme ; products indexe les produits de la vente par ID.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, products map[string]*entity.Product) ([]byte, error)
}
