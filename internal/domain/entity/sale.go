package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts de paiement d'une vente.
const (
	PaymentPaid      = "PAID"
	PaymentPending   = "PENDING"
	PaymentCancelled = "CANCELLED"
)

// Sale vente au comptoir. Chaque ligne déclenche un mouvement de stock SALE
// dans la même transaction que l'insertion de la vente.
type Sale struct {
	ID            string
	CustomerID    string // vide = vente anonyme
	Date          time.Time
	PaymentStatus string
	CreatedBy     string // utilisateur ayant enregistré la vente
	Items         []SaleItem
	Total         decimal.Decimal
	CreatedAt     time.Time
}

// SaleItem ligne de vente.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
	LineTotal decimal.Decimal // Quantity * UnitPrice - Discount
}

// ComputeTotal recalcule le total de la vente depuis ses lignes.
func (s *Sale) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items {
		total = total.Add(it.LineTotal)
	}
	return total
}
