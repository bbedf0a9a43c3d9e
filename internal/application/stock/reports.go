package stock

import (
	"time"

	"github.com/megamind/stockmanager-api/internal/domain"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/stock"
)

// PeriodReport page de mouvements d'une période, avec les métadonnées de
// navigation. Seule la première page est servie ; la navigation se fait de
// période en période, pas par offset.
//
// HasNextPeriod (total > pageSize) et HasPreviousPeriod (fin avant maintenant)
// sont des indications approximatives, pas des garanties de contenu ; les
// bornes exactes des périodes voisines sont fournies pour sonder.
type PeriodReport struct {
	Movements         []*entity.StockMovement
	Period            stock.Period
	PageSize          int
	TotalElements     int64
	TotalPages        int
	HasNextPeriod     bool
	HasPreviousPeriod bool
	NextPeriod        stock.Period
	PreviousPeriod    stock.Period
}

// GetEntriesByPeriod rapporte les mouvements entrants (SUPPLY,
// CUSTOMER_RETURN, INVENTORY_ADJUSTMENT_PLUS) de la fenêtre donnée.
func (uc *UseCase) GetEntriesByPeriod(start, end time.Time, pageSize int) (*PeriodReport, error) {
	return uc.reportByPeriod(entity.EntryTypes(), start, end, pageSize)
}

// GetExitsByPeriod rapporte les mouvements sortants (SALE, SUPPLIER_RETURN,
// INVENTORY_ADJUSTMENT_MINUS, WASTAGE) de la fenêtre donnée.
func (uc *UseCase) GetExitsByPeriod(start, end time.Time, pageSize int) (*PeriodReport, error) {
	return uc.reportByPeriod(entity.ExitTypes(), start, end, pageSize)
}

// GetEntriesByPeriodKind rapporte les entrées de la période calendaire (DAY,
// WEEK, MONTH) contenant ref. ref zéro = maintenant.
func (uc *UseCase) GetEntriesByPeriodKind(kind stock.PeriodKind, ref time.Time, pageSize int) (*PeriodReport, error) {
	p := uc.generatePeriod(kind, ref)
	return uc.GetEntriesByPeriod(p.Start, p.End, pageSize)
}

// GetExitsByPeriodKind rapporte les sorties de la période calendaire contenant ref.
func (uc *UseCase) GetExitsByPeriodKind(kind stock.PeriodKind, ref time.Time, pageSize int) (*PeriodReport, error) {
	p := uc.generatePeriod(kind, ref)
	return uc.GetExitsByPeriod(p.Start, p.End, pageSize)
}

func (uc *UseCase) generatePeriod(kind stock.PeriodKind, ref time.Time) stock.Period {
	if ref.IsZero() {
		ref = uc.now()
	}
	return stock.Generate(kind, ref)
}

func (uc *UseCase) reportByPeriod(types []entity.MovementType, start, end time.Time, pageSize int) (*PeriodReport, error) {
	if pageSize <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}

	movements, err := uc.movementRepo.ListByTypes(types, start, end, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := uc.movementRepo.CountByTypes(types, start, end)
	if err != nil {
		return nil, err
	}

	period := stock.Period{Start: start, End: end}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &PeriodReport{
		Movements:         movements,
		Period:            period,
		PageSize:          pageSize,
		TotalElements:     total,
		TotalPages:        totalPages,
		HasNextPeriod:     total > int64(pageSize),
		HasPreviousPeriod: end.Before(uc.now()),
		NextPeriod:        period.Next(),
		PreviousPeriod:    period.Previous(),
	}, nil
}
