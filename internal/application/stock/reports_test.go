package stock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megamind/stockmanager-api/internal/domain"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/stock"
)

func seedReportMovements(st *fakeState) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	st.movements = []*entity.StockMovement{
		{ID: "m1", ProductID: "p1", Quantity: 10, Type: entity.MovementSupply, MovementDate: day(1)},
		{ID: "m2", ProductID: "p1", Quantity: -3, Type: entity.MovementSale, MovementDate: day(2)},
		{ID: "m3", ProductID: "p1", Quantity: 5, Type: entity.MovementSupply, MovementDate: day(3)},
		{ID: "m4", ProductID: "p1", Quantity: -1, Type: entity.MovementWastage, MovementDate: day(4)},
		{ID: "m5", ProductID: "p1", Quantity: 2, Type: entity.MovementCustomerReturn, MovementDate: day(5)},
		{ID: "m6", ProductID: "p1", Quantity: -2, Type: entity.MovementSale, MovementDate: day(20)}, // hors fenêtre
	}
}

func reportWindow() (time.Time, time.Time) {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 7, 23, 59, 59, 999999999, time.UTC)
}

// Les entrées ne contiennent que les types entrants, ordre descendant par date.
func TestGetEntriesByPeriod(t *testing.T) {
	st := newFakeState()
	seedReportMovements(st)
	uc := newTestUseCase(st)

	start, end := reportWindow()
	report, err := uc.GetEntriesByPeriod(start, end, 10)
	require.NoError(t, err)

	require.Len(t, report.Movements, 3)
	assert.Equal(t, "m5", report.Movements[0].ID) // le plus récent d'abord
	assert.Equal(t, "m3", report.Movements[1].ID)
	assert.Equal(t, "m1", report.Movements[2].ID)
	for _, m := range report.Movements {
		assert.True(t, m.Type.IsEntry())
	}
	assert.Equal(t, int64(3), report.TotalElements)
	assert.Equal(t, 1, report.TotalPages)
	assert.False(t, report.HasNextPeriod)
}

func TestGetExitsByPeriod(t *testing.T) {
	st := newFakeState()
	seedReportMovements(st)
	uc := newTestUseCase(st)

	start, end := reportWindow()
	report, err := uc.GetExitsByPeriod(start, end, 10)
	require.NoError(t, err)

	require.Len(t, report.Movements, 2)
	for _, m := range report.Movements {
		assert.True(t, m.Type.IsExit())
	}
	assert.Equal(t, int64(2), report.TotalElements)
}

// La page est tronquée à pageSize mais le total compte tout ; totalPages est
// un plafond et hasNextPeriod s'allume dès que le total dépasse la page.
func TestReport_PaginationMetadata(t *testing.T) {
	st := newFakeState()
	seedReportMovements(st)
	uc := newTestUseCase(st)

	start, end := reportWindow()
	report, err := uc.GetEntriesByPeriod(start, end, 2)
	require.NoError(t, err)

	assert.Len(t, report.Movements, 2)
	assert.Equal(t, int64(3), report.TotalElements)
	assert.Equal(t, 2, report.TotalPages) // ceil(3/2)
	assert.True(t, report.HasNextPeriod)
}

// hasPreviousPeriod : vrai ssi la fin de fenêtre est strictement avant
// maintenant (heuristique de navigation).
func TestReport_HasPreviousPeriod(t *testing.T) {
	uc := newTestUseCase(newFakeState())
	// now injecté : 2024-03-15T10:00Z

	past, pastEnd := reportWindow() // fin le 7 mars, avant now
	report, err := uc.GetEntriesByPeriod(past, pastEnd, 5)
	require.NoError(t, err)
	assert.True(t, report.HasPreviousPeriod)

	futureStart := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	futureEnd := time.Date(2024, 3, 21, 23, 59, 59, 999999999, time.UTC)
	report, err = uc.GetEntriesByPeriod(futureStart, futureEnd, 5)
	require.NoError(t, err)
	assert.False(t, report.HasPreviousPeriod)
}

// Le rapport expose les bornes exactes des périodes voisines.
func TestReport_NeighbourPeriods(t *testing.T) {
	uc := newTestUseCase(newFakeState())
	start, end := reportWindow()

	report, err := uc.GetEntriesByPeriod(start, end, 5)
	require.NoError(t, err)

	p := stock.Period{Start: start, End: end}
	assert.Equal(t, p.Next(), report.NextPeriod)
	assert.Equal(t, p.Previous(), report.PreviousPeriod)
}

// La variante par période nommée délègue aux bornes calendaires ; ref zéro
// prend l'instant courant.
func TestGetEntriesByPeriodKind(t *testing.T) {
	st := newFakeState()
	seedReportMovements(st)
	uc := newTestUseCase(st)

	report, err := uc.GetEntriesByPeriodKind(stock.PeriodMonth, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 10)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), report.Period.Start)
	assert.Equal(t, int64(3), report.TotalElements)

	// ref zéro : période contenant now (15 mars), la semaine du 11 au 17.
	weekly, err := uc.GetExitsByPeriodKind(stock.PeriodWeek, time.Time{}, 10)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), weekly.Period.Start)
}

func TestReport_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newFakeState())
	start, end := reportWindow()

	_, err := uc.GetEntriesByPeriod(start, end, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetEntriesByPeriod(end, start, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
