package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/megamind/stockmanager-api/internal/application/dto"
	stockapp "github.com/megamind/stockmanager-api/internal/application/stock"
	"github.com/megamind/stockmanager-api/internal/domain"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/repository"
)

// UseCase ventes au comptoir. La création d'une vente insère la vente, un
// mouvement SALE par ligne et les quantités produit dans la même transaction.
type UseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	stock        StockRecorder
	pdfGen       InvoicePDFGenerator
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// New construit le cas d'usage.
func New(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	stock StockRecorder,
	pdfGen InvoicePDFGenerator,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		stock:        stock,
		pdfGen:       pdfGen,
		now:          time.Now,
	}
}

// CreateSale enregistre une vente. Chaque ligne produit un mouvement SALE
// (document source "SALE-<id>") via le grand livre, avec le contrôle de stock
// et le verrouillage produit qui vont avec. Si une ligne manque de stock,
// toute la vente est annulée.
func (uc *UseCase) CreateSale(ctx context.Context, actorID string, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if actorID == "" || len(req.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range req.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if it.UnitPrice.IsNegative() || it.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	if req.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(req.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CustomerID:    req.CustomerID,
		Date:          now,
		PaymentStatus: entity.PaymentPaid,
		CreatedBy:     actorID,
		CreatedAt:     now,
	}
	for _, it := range req.Items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			LineTotal: it.UnitPrice.Mul(qty).Sub(it.Discount),
		})
	}
	sale.Total = sale.ComputeTotal()

	sourceDoc := fmt.Sprintf("SALE-%s", sale.ID)
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, it := range sale.Items {
			_, txErr := uc.stock.CreateMovementInTx(movRepo, productRepo, stockapp.MovementInput{
				ProductID:      it.ProductID,
				Quantity:       it.Quantity,
				Type:           entity.MovementSale,
				ActorID:        actorID,
				SourceDocument: sourceDoc,
				Notes:          "Mouvement généré par la vente",
			})
			if txErr != nil {
				return txErr
			}
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	resp := toSaleResponse(sale)
	return &resp, nil
}

// GetByID retourne une vente avec ses lignes.
func (uc *UseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

// List retourne une page de ventes, les plus récentes d'abord.
func (uc *UseCase) List(page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.saleRepo.Count()
	if err != nil {
		return nil, err
	}
	return toSaleListResponse(sales, page, total), nil
}

// ListByDateBetween retourne une page de ventes sur [from, to].
func (uc *UseCase) ListByDateBetween(from, to time.Time, page dto.PageRequest) (*dto.SaleListResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	sales, err := uc.saleRepo.ListByDateBetween(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.saleRepo.CountByDateBetween(from, to)
	if err != nil {
		return nil, err
	}
	return toSaleListResponse(sales, page, total), nil
}

// ListByProduct retourne une page de ventes contenant le produit.
func (uc *UseCase) ListByProduct(productID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.saleRepo.CountByProduct(productID)
	if err != nil {
		return nil, err
	}
	return toSaleListResponse(sales, page, total), nil
}

// TopProducts retourne les produits les plus vendus (quantité cumulée).
func (uc *UseCase) TopProducts(limit int) ([]dto.TopProductResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	tops, err := uc.saleRepo.TopProducts(limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductResponse, 0, len(tops))
	for _, t := range tops {
		out = append(out, dto.TopProductResponse{
			ProductID:    t.ProductID,
			ProductName:  t.ProductName,
			QuantitySold: t.QuantitySold,
			Revenue:      t.Revenue,
		})
	}
	return out, nil
}

// GetInvoicePDF rend la facture d'une vente en PDF.
func (uc *UseCase) GetInvoicePDF(ctx context.Context, id string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}

	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(sale.CustomerID)
		if err != nil {
			return nil, err
		}
	}

	products := make(map[string]*entity.Product, len(sale.Items))
	for _, it := range sale.Items {
		if _, ok := products[it.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			products[it.ProductID] = product
		}
	}

	return uc.pdfGen.GenerateInvoicePDF(ctx, sale, customer, products)
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			LineTotal: it.LineTotal,
		})
	}
	return dto.SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		Date:          s.Date,
		PaymentStatus: s.PaymentStatus,
		CreatedBy:     s.CreatedBy,
		Items:         items,
		Total:         s.Total,
	}
}

func toSaleListResponse(sales []*entity.Sale, page dto.PageRequest, total int64) *dto.SaleListResponse {
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		items = append(items, toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
}
