package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/megamind/stockmanager-api/internal/domain/stock"
)

// Scénario du cahier des charges : MONTH sur le 15/03/2024 10:00 couvre
// [2024-03-01T00:00:00, 2024-03-31T23:59:59.999999999].
func TestGenerate_Month(t *testing.T) {
	ref := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	p := stock.Generate(stock.PeriodMonth, ref)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC), p.End)
}

func TestGenerate_Day(t *testing.T) {
	ref := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	p := stock.Generate(stock.PeriodDay, ref)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999999999, time.UTC), p.End)
}

// La semaine commence le lundi ; un dimanche appartient à la semaine entamée
// le lundi précédent.
func TestGenerate_Week(t *testing.T) {
	// vendredi 15/03/2024
	p := stock.Generate(stock.PeriodWeek, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), p.Start) // lundi
	assert.Equal(t, time.Date(2024, 3, 17, 23, 59, 59, 999999999, time.UTC), p.End)

	// dimanche 17/03/2024 : même semaine
	p2 := stock.Generate(stock.PeriodWeek, time.Date(2024, 3, 17, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, p.Start, p2.Start)
	assert.Equal(t, p.End, p2.End)
}

// Un kind inconnu retombe sur DAY plutôt que d'échouer.
func TestGenerate_UnknownKindFallsBackToDay(t *testing.T) {
	ref := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, stock.Generate(stock.PeriodDay, ref), stock.Generate(stock.PeriodKind("QUARTER"), ref))
}

// Pavage contigu : Next commence immédiatement après End, sans trou ni
// recouvrement, et Next/Previous sont inverses l'une de l'autre.
func TestPeriod_NextPreviousRoundTrip(t *testing.T) {
	p := stock.Generate(stock.PeriodWeek, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	next := p.Next()
	assert.Equal(t, p.End.Add(time.Nanosecond), next.Start)
	assert.Equal(t, p, next.Previous())

	prev := p.Previous()
	assert.Equal(t, p.Start.Add(-time.Nanosecond), prev.End)
	assert.Equal(t, p, prev.Next())
}

func TestPeriod_NextOnArbitraryBounds(t *testing.T) {
	p := stock.Period{
		Start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 12, 23, 59, 59, 999999999, time.UTC),
	}
	next := p.Next()
	assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), next.Start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999999999, time.UTC), next.End)
}
