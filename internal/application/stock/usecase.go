package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/megamind/stockmanager-api/internal/domain"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/repository"
	"github.com/megamind/stockmanager-api/internal/domain/stock"
)

// UseCase grand livre de stock : enregistre les mouvements de façon
// transactionnelle (insertion du mouvement + écrasement du stock dénormalisé
// dans la même transaction, ligne produit verrouillée) et projette
// l'historique en fiche de stock et en rapports par période.
type UseCase struct {
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// New construit le cas d'usage.
func New(txRunner TxRunner, movementRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		now:          time.Now,
	}
}

// MovementInput entrée pour CreateMovement. Quantity est une magnitude
// strictement positive ; le type décide de la direction. ActorID est
// l'identité explicite de l'opérateur : le grand livre ne lit jamais un
// contexte de sécurité ambiant.
type MovementInput struct {
	ProductID      string
	Quantity       int
	Type           entity.MovementType
	ActorID        string
	SourceDocument string
	Notes          string
}

// CreateMovement valide l'entrée, résout la quantité signée puis, dans une
// transaction, verrouille la ligne produit, vérifie le stock pour les sorties,
// insère le mouvement et écrase le stock dénormalisé. Retourne le mouvement
// persisté.
//
// Erreurs : ErrInvalidInput (quantité <= 0, type inconnu, acteur absent) avant
// toute lecture ; ErrNotFound si le produit n'existe pas ;
// InsufficientStockError si une sortie ferait passer le stock sous zéro,
// auquel cas aucune écriture n'est effectuée.
func (uc *UseCase) CreateMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.Type.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if in.ActorID == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var created *entity.StockMovement
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var txErr error
		created, txErr = uc.CreateMovementInTx(movRepo, productRepo, in)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateMovementInTx enregistre un mouvement avec les repositories fournis
// (transaction du caller). Utilisé par CreateMovement et par la création de
// vente, qui enregistre un mouvement SALE par ligne dans sa propre transaction.
//
// Verrouille la ligne produit (SELECT FOR UPDATE) avant le contrôle de stock :
// deux mouvements concurrents sur le même produit sont sérialisés et un seul
// peut consommer le dernier article.
func (uc *UseCase) CreateMovementInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	in MovementInput,
) (*entity.StockMovement, error) {
	locked, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		return nil, domain.ErrNotFound
	}

	signed := in.Type.Apply(in.Quantity)

	// Contrôle de stock pour les sorties, sur la quantité verrouillée.
	if signed < 0 && locked.QuantityInStock+signed < 0 {
		return nil, &domain.InsufficientStockError{
			ProductName: locked.Name,
			Available:   locked.QuantityInStock,
			Requested:   -signed,
		}
	}

	now := uc.now()
	movement := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		Quantity:       signed,
		Type:           in.Type,
		MovementDate:   now,
		SourceDocument: in.SourceDocument,
		Notes:          in.Notes,
		CreatedBy:      in.ActorID,
		CreatedAt:      now,
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateQuantity(in.ProductID, locked.QuantityInStock+signed); err != nil {
		return nil, err
	}
	return movement, nil
}

// GetHistory retourne tous les mouvements d'un produit, ordre chronologique.
func (uc *UseCase) GetHistory(productID string) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movementRepo.ListByProduct(productID, nil, nil)
}

// GetStockCard projette la fiche de stock d'un produit. from/to nil = tout
// l'historique, solde amorcé à 0. Sur une fenêtre, le solde est amorcé à 0
// par défaut (la fiche ne reflète que la fenêtre) ; avec carryForward, il est
// amorcé à la somme des mouvements strictement antérieurs à from.
func (uc *UseCase) GetStockCard(productID string, from, to *time.Time, carryForward bool) ([]stock.CardLine, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	opening := 0
	if carryForward && from != nil {
		opening, err = uc.movementRepo.SumByProductBefore(productID, *from)
		if err != nil {
			return nil, err
		}
	}

	movements, err := uc.movementRepo.ListByProduct(productID, from, to)
	if err != nil {
		return nil, err
	}
	return stock.BuildCard(movements, opening), nil
}

// GetProduct expose la consultation du produit aux appelants du grand livre
// (export PDF de la fiche de stock notamment).
func (uc *UseCase) GetProduct(productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}
