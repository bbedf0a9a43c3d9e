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

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo journal des mouvements sur PostgreSQL (pool ou tx).
// La table est en append seul : aucune requête UPDATE ni DELETE ici.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construit l'adaptateur. Passer pool ou tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = "id, product_id, type, quantity, movement_date, source_document, notes, created_by, created_at"

// Create persiste un mouvement de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.MovementDate, nullable(movement.SourceDocument), nullable(movement.Notes),
		movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID retourne un mouvement par ID, nil si absent.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByProduct liste les mouvements d'un produit en ordre chronologique
// ascendant, égalités départagées par created_at puis id.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY movement_date ASC, created_at ASC, id ASC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByTypes liste au plus limit mouvements des types donnés dans la
// fenêtre, les plus récents d'abord.
func (r *StockMovementRepo) ListByTypes(types []entity.MovementType, from, to time.Time, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM stock_movements
		WHERE type = ANY($1) AND movement_date >= $2 AND movement_date <= $3
		ORDER BY movement_date DESC, created_at DESC, id DESC
		LIMIT $4`
	rows, err := r.q.Query(context.Background(), query, typeStrings(types), from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("list by types: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// CountByTypes compte tous les mouvements des types donnés dans la fenêtre.
func (r *StockMovementRepo) CountByTypes(types []entity.MovementType, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(*) FROM stock_movements
		WHERE type = ANY($1) AND movement_date >= $2 AND movement_date <= $3`
	var count int64
	err := r.q.QueryRow(context.Background(), query, typeStrings(types), from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by types: %w", err)
	}
	return count, nil
}

// SumByProductBefore somme des quantités signées strictement antérieures à
// before (solde d'ouverture d'une fiche fenêtrée).
func (r *StockMovementRepo) SumByProductBefore(productID string, before time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0) FROM stock_movements
		WHERE product_id = $1 AND movement_date < $2`
	var sum int
	err := r.q.QueryRow(context.Background(), query, productID, before).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum before: %w", err)
	}
	return sum, nil
}

func typeStrings(types []entity.MovementType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var sourceDoc, notes *string
	err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.MovementDate,
		&sourceDoc, &notes, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if sourceDoc != nil {
		m.SourceDocument = *sourceDoc
	}
	if notes != nil {
		m.Notes = *notes
	}
	return &m, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// nullable convertit "" en NULL.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
