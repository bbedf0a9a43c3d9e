package entity

import "time"

// Rôles valides pour User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager" // gestionnaire de stock
	RoleSeller  = "seller"  // vendeur
)

// User utilisateur du système.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // hash bcrypt, jamais en clair après persistance
	Role         string // admin, manager, seller
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
