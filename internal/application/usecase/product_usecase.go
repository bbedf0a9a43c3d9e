package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/megamind/stockmanager-api/internal/application/dto"
	"github.com/megamind/stockmanager-api/internal/domain"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/repository"
	"github.com/megamind/stockmanager-api/pkg/textutil"
)

// ProductUseCase CRUD du catalogue produits. Ne touche jamais au stock en
// dehors de la création : toute variation passe par le grand livre.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	now          func() time.Time
}

// NewProductUseCase construit le cas d'usage.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// Create enregistre un produit. Le nom et le code-barres sont uniques ; le
// stock initial est accepté tel quel (pas de mouvement rétroactif).
func (uc *ProductUseCase) Create(req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Price.IsNegative() || req.QuantityInStock < 0 || req.LowStockAlert < 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.productRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if req.Barcode != "" {
		existing, err = uc.productRepo.GetByBarcode(req.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if req.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := uc.now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		Name:            name,
		Barcode:         req.Barcode,
		Description:     req.Description,
		Price:           req.Price,
		QuantityInStock: req.QuantityInStock,
		LowStockAlert:   req.LowStockAlert,
		CategoryID:      req.CategoryID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetByID retourne un produit.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// GetByBarcode retourne un produit par code-barres (scan en caisse).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Update applique les champs non nil de la requête (PATCH). QuantityInStock
// n'est pas modifiable ici : le stock ne bouge que par mouvement.
func (uc *ProductUseCase) Update(id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if name != product.Name {
			existing, err := uc.productRepo.GetByName(name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		product.Name = name
	}
	if req.Barcode != nil {
		if *req.Barcode != "" && *req.Barcode != product.Barcode {
			existing, err := uc.productRepo.GetByBarcode(*req.Barcode)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, domain.ErrDuplicate
			}
		}
		product.Barcode = *req.Barcode
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *req.Price
	}
	if req.LowStockAlert != nil {
		if *req.LowStockAlert < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.LowStockAlert = *req.LowStockAlert
	}
	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			category, err := uc.categoryRepo.GetByID(*req.CategoryID)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, domain.ErrNotFound
			}
		}
		product.CategoryID = *req.CategoryID
	}

	product.UpdatedAt = uc.now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// List retourne une page de produits.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	return toProductListResponse(products, page, total), nil
}

// Search recherche par nom, insensible à la casse et aux accents.
func (uc *ProductUseCase) Search(query string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	products, err := uc.productRepo.SearchByName(textutil.Fold(query), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductListResponse(products, page, 0), nil
}

// ListLowStock retourne les produits sous leur seuil d'alerte.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Delete supprime un produit du catalogue.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Barcode:         p.Barcode,
		Description:     p.Description,
		Price:           p.Price,
		QuantityInStock: p.QuantityInStock,
		LowStockAlert:   p.LowStockAlert,
		LowStock:        p.IsLowStock(),
		CategoryID:      p.CategoryID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toProductListResponse(products []*entity.Product, page dto.PageRequest, total int64) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
}
