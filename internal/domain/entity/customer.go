package entity

import "time"

// Customer client du point de vente (optionnel sur une vente).
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
