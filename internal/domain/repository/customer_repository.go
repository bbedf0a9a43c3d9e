package repository

import "github.com/megamind/stockmanager-api/internal/domain/entity"

// CustomerRepository port de persistance pour Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
