package entity

import "time"

// MovementType type de mouvement de stock (énumération fermée).
// Chaque type porte un sens fixe : positif = entrée, négatif = sortie.
// Toute extension passe par cette table, jamais par un cas ad hoc.
type MovementType string

const (
	MovementSupply          MovementType = "SUPPLY"                     // approvisionnement fournisseur
	MovementSale            MovementType = "SALE"                       // vente client
	MovementCustomerReturn  MovementType = "CUSTOMER_RETURN"            // retour client
	MovementSupplierReturn  MovementType = "SUPPLIER_RETURN"            // retour fournisseur
	MovementAdjustmentPlus  MovementType = "INVENTORY_ADJUSTMENT_PLUS"  // ajustement d'inventaire positif
	MovementAdjustmentMinus MovementType = "INVENTORY_ADJUSTMENT_MINUS" // ajustement d'inventaire négatif
	MovementWastage         MovementType = "WASTAGE"                    // perte / casse
)

// Sign retourne +1 pour une entrée, -1 pour une sortie, 0 si le type est inconnu.
func (t MovementType) Sign() int {
	switch t {
	case MovementSupply, MovementCustomerReturn, MovementAdjustmentPlus:
		return 1
	case MovementSale, MovementSupplierReturn, MovementAdjustmentMinus, MovementWastage:
		return -1
	}
	return 0
}

// Valid indique si le type appartient à l'énumération.
func (t MovementType) Valid() bool { return t.Sign() != 0 }

// IsEntry indique un mouvement entrant (quantité signée positive).
func (t MovementType) IsEntry() bool { return t.Sign() > 0 }

// IsExit indique un mouvement sortant (quantité signée négative).
func (t MovementType) IsExit() bool { return t.Sign() < 0 }

// Apply applique le sens du type à une magnitude : l'appelant fournit toujours
// une quantité positive, le grand livre décide de la direction.
func (t MovementType) Apply(magnitude int) int {
	if magnitude < 0 {
		magnitude = -magnitude
	}
	return t.Sign() * magnitude
}

// EntryTypes retourne le sous-ensemble des types entrants.
func EntryTypes() []MovementType {
	return []MovementType{MovementSupply, MovementCustomerReturn, MovementAdjustmentPlus}
}

// ExitTypes retourne le sous-ensemble des types sortants.
func ExitTypes() []MovementType {
	return []MovementType{MovementSale, MovementSupplierReturn, MovementAdjustmentMinus, MovementWastage}
}

// StockMovement mouvement de stock : enregistrement immuable du grand livre.
// La quantité est signée (positive = entrée, négative = sortie). Un mouvement ne
// se corrige jamais en place : toute correction est un nouveau mouvement
// d'ajustement en sens inverse.
type StockMovement struct {
	ID             string
	ProductID      string
	Quantity       int // signée, jamais zéro
	Type           MovementType
	MovementDate   time.Time
	SourceDocument string // optionnel : "SALE-00123", "BC-456"...
	Notes          string
	CreatedBy      string // utilisateur ayant effectué le mouvement
	CreatedAt      time.Time
}
