package stock

import (
	"context"

	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/repository"
	"github.com/megamind/stockmanager-api/internal/domain/stock"
)

// TxRunner exécute une fonction dans une transaction de BD, en passant des
// repositories attachés à cette transaction. Garantit que l'insertion du
// mouvement et la mise à jour du stock produit réussissent ou échouent ensemble.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// CardPDFGenerator rend une fiche de stock en PDF (implémenté par
// l'infrastructure ; la mise en page n'est pas une affaire du domaine).
type CardPDFGenerator interface {
	GenerateStockCardPDF(ctx context.Context, product *entity.Product, lines []stock.CardLine) ([]byte, error)
}
