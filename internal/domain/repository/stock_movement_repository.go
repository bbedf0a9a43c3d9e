package repository

import (
	"time"

	"github.com/megamind/stockmanager-api/internal/domain/entity"
)

// StockMovementRepository port de persistance du journal de mouvements.
// Le journal est en append seul : pas d'Update ni de Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct retourne les mouvements d'un produit, ordre chronologique
	// ascendant (égalités départagées par created_at puis id). from/to nil =
	// tout l'historique.
	ListByProduct(productID string, from, to *time.Time) ([]*entity.StockMovement, error)
	// ListByTypes retourne au plus limit mouvements des types donnés dans la
	// fenêtre, ordre descendant par date (page 0 uniquement).
	ListByTypes(types []entity.MovementType, from, to time.Time, limit int) ([]*entity.StockMovement, error)
	// CountByTypes compte tous les mouvements des types donnés dans la fenêtre,
	// indépendamment de la pagination.
	CountByTypes(types []entity.MovementType, from, to time.Time) (int64, error)
	// SumByProductBefore somme des quantités signées strictement antérieures à
	// before (solde d'ouverture pour une fiche de stock fenêtrée).
	SumByProductBefore(productID string, before time.Time) (int, error)
}
