package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implémentation du port SaleRepository sur PostgreSQL (pool ou tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = "id, customer_id, date, payment_status, created_by, total, created_at"

// Create persiste la vente et ses lignes.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, nullable(sale.CustomerID), sale.Date, sale.PaymentStatus,
		sale.CreatedBy, sale.Total, sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, discount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, it := range sale.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.SaleID, it.ProductID, it.Quantity, it.UnitPrice, it.Discount, it.LineTotal)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID retourne une vente avec ses lignes, nil si absente.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems([]*entity.Sale{s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List retourne une page de ventes, les plus récentes d'abord.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY date DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Count compte toutes les ventes.
func (r *SaleRepo) Count() (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM sales`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return count, nil
}

// ListByDateBetween retourne une page de ventes sur [from, to].
func (r *SaleRepo) ListByDateBetween(from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC LIMIT $3 OFFSET $4`
	return r.list(query, from, to, limit, offset)
}

// CountByDateBetween compte les ventes sur [from, to].
func (r *SaleRepo) CountByDateBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales WHERE date >= $1 AND date <= $2`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales by date: %w", err)
	}
	return count, nil
}

// ListByProduct retourne les ventes contenant le produit.
func (r *SaleRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT DISTINCT s.id, s.customer_id, s.date, s.payment_status, s.created_by, s.total, s.created_at
		FROM sales s JOIN sale_items si ON si.sale_id = s.id
		WHERE si.product_id = $1
		ORDER BY s.date DESC LIMIT $2 OFFSET $3`
	return r.list(query, productID, limit, offset)
}

// CountByProduct compte les ventes contenant le produit.
func (r *SaleRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(DISTINCT sale_id) FROM sale_items WHERE product_id = $1`, productID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales by product: %w", err)
	}
	return count, nil
}

// TopProducts agrège les produits les plus vendus (quantité cumulée).
func (r *SaleRepo) TopProducts(limit int) ([]repository.TopProduct, error) {
	query := `
		SELECT si.product_id, p.name, SUM(si.quantity), SUM(si.line_total)
		FROM sale_items si JOIN products p ON p.id = si.product_id
		GROUP BY si.product_id, p.name
		ORDER BY SUM(si.quantity) DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProduct
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *SaleRepo) list(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadItems charge les lignes de toutes les ventes en une requête.
func (r *SaleRepo) loadItems(sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Sale, len(sales))
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, discount, line_total
		FROM sale_items WHERE sale_id = ANY($1) ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.Discount, &it.LineTotal); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID *string
	err := row.Scan(&s.ID, &customerID, &s.Date, &s.PaymentStatus, &s.CreatedBy, &s.Total, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}
	return &s, nil
}
