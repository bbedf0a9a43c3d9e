// Package stock contient la logique pure du grand livre de stock :
// projection de la fiche de stock (solde courant) et arithmétique des
// périodes de reporting. Aucune dépendance d'infrastructure.
package stock

import (
	"time"

	"github.com/megamind/stockmanager-api/internal/domain/entity"
)

// CardLine ligne de fiche de stock : un mouvement avec les soldes avant/après.
// Projection dérivée du journal, jamais persistée.
type CardLine struct {
	MovementID     string
	Date           time.Time
	Type           entity.MovementType
	Quantity       int
	StockBefore    int
	StockAfter     int
	SourceDocument string
	Notes          string
	CreatedBy      string
}

// BuildCard projette une séquence de mouvements (ordre chronologique) en
// fiche de stock. opening est le solde d'ouverture : 0 pour une fiche
// complète, ou le solde au début de fenêtre quand l'appelant reporte
// l'historique antérieur.
//
// Invariant de chaînage : line[i].StockAfter == line[i].StockBefore + line[i].Quantity
// et line[i+1].StockBefore == line[i].StockAfter.
func BuildCard(movements []*entity.StockMovement, opening int) []CardLine {
	card := make([]CardLine, 0, len(movements))
	balance := opening
	for _, m := range movements {
		before := balance
		balance += m.Quantity
		card = append(card, CardLine{
			MovementID:     m.ID,
			Date:           m.MovementDate,
			Type:           m.Type,
			Quantity:       m.Quantity,
			StockBefore:    before,
			StockAfter:     balance,
			SourceDocument: m.SourceDocument,
			Notes:          m.Notes,
			CreatedBy:      m.CreatedBy,
		})
	}
	return card
}
