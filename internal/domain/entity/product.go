package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product produit du catalogue. QuantityInStock est le stock courant
// dénormalisé : il est toujours égal à la somme des quantités signées des
// mouvements du produit et n'est modifié que dans la transaction qui insère
// le mouvement (voir application/stock).
type Product struct {
	ID              string
	Name            string
	Barcode         string
	Description     string
	Price           decimal.Decimal
	QuantityInStock int
	LowStockAlert   int // seuil d'alerte stock bas
	CategoryID      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsLowStock indique si le produit est sous son seuil d'alerte.
func (p *Product) IsLowStock() bool {
	return p.QuantityInStock <= p.LowStockAlert
}
