package dto

import (
	"time"

	"github.com/megamind/stockmanager-api/internal/domain/entity"
)

// MovementRequest body pour POST /api/stock/movements. Quantity est une
// magnitude positive ; la direction vient du type.
type MovementRequest struct {
	ProductID      string              `json:"product_id"`
	Quantity       int                 `json:"quantity"`
	Type           entity.MovementType `json:"type"`
	SourceDocument string              `json:"source_document,omitempty"`
	Notes          string              `json:"notes,omitempty"`
}

// MovementResponse représentation d'un mouvement dans les réponses API.
type MovementResponse struct {
	ID             string              `json:"id"`
	ProductID      string              `json:"product_id"`
	Quantity       int                 `json:"quantity"` // signée
	Type           entity.MovementType `json:"type"`
	MovementDate   time.Time           `json:"movement_date"`
	SourceDocument string              `json:"source_document,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	CreatedBy      string              `json:"created_by"`
}

// StockCardLineResponse ligne de fiche de stock avec soldes avant/après.
type StockCardLineResponse struct {
	Date           time.Time           `json:"date"`
	Type           entity.MovementType `json:"type"`
	Quantity       int                 `json:"quantity"`
	StockBefore    int                 `json:"stock_before"`
	StockAfter     int                 `json:"stock_after"`
	SourceDocument string              `json:"source_document,omitempty"`
	Notes          string              `json:"notes,omitempty"`
}

// PeriodBoundsResponse bornes d'une période (incluses).
type PeriodBoundsResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PeriodReportResponse page de mouvements d'une période avec la navigation.
type PeriodReportResponse struct {
	Movements         []MovementResponse   `json:"movements"`
	Period            PeriodBoundsResponse `json:"period"`
	PageSize          int                  `json:"page_size"`
	TotalElements     int64                `json:"total_elements"`
	TotalPages        int                  `json:"total_pages"`
	HasNextPeriod     bool                 `json:"has_next_period"`
	HasPreviousPeriod bool                 `json:"has_previous_period"`
	NextPeriod        PeriodBoundsResponse `json:"next_period"`
	PreviousPeriod    PeriodBoundsResponse `json:"previous_period"`
}
