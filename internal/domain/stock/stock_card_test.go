package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/stock"
)

func mov(qty int, mt entity.MovementType, day int) *entity.StockMovement {
	return &entity.StockMovement{
		ID:           "m",
		ProductID:    "p1",
		Quantity:     qty,
		Type:         mt,
		MovementDate: time.Date(2024, 3, day, 10, 0, 0, 0, time.UTC),
	}
}

// Scénario du cahier des charges : mouvements [+10, -3, +2] donnent les
// couples (avant, après) = (0,10), (10,7), (7,9).
func TestBuildCard_RunningBalance(t *testing.T) {
	movements := []*entity.StockMovement{
		mov(10, entity.MovementSupply, 1),
		mov(-3, entity.MovementSale, 2),
		mov(2, entity.MovementCustomerReturn, 3),
	}
	card := stock.BuildCard(movements, 0)
	require.Len(t, card, 3)

	assert.Equal(t, 0, card[0].StockBefore)
	assert.Equal(t, 10, card[0].StockAfter)
	assert.Equal(t, 10, card[1].StockBefore)
	assert.Equal(t, 7, card[1].StockAfter)
	assert.Equal(t, 7, card[2].StockBefore)
	assert.Equal(t, 9, card[2].StockAfter)
}

// Invariant de chaînage : after[i] == before[i] + qty[i] et before[i+1] == after[i].
func TestBuildCard_ChainInvariant(t *testing.T) {
	movements := []*entity.StockMovement{
		mov(7, entity.MovementSupply, 1),
		mov(-2, entity.MovementWastage, 2),
		mov(-1, entity.MovementSale, 3),
		mov(4, entity.MovementAdjustmentPlus, 4),
		mov(-3, entity.MovementSupplierReturn, 5),
	}
	card := stock.BuildCard(movements, 0)
	require.Len(t, card, len(movements))

	for i, line := range card {
		assert.Equal(t, line.StockBefore+line.Quantity, line.StockAfter, "ligne %d", i)
		if i > 0 {
			assert.Equal(t, card[i-1].StockAfter, line.StockBefore, "ligne %d", i)
		}
	}
}

// Le solde d'ouverture reporte l'historique antérieur à la fenêtre.
func TestBuildCard_OpeningBalance(t *testing.T) {
	card := stock.BuildCard([]*entity.StockMovement{mov(-3, entity.MovementSale, 10)}, 12)
	require.Len(t, card, 1)
	assert.Equal(t, 12, card[0].StockBefore)
	assert.Equal(t, 9, card[0].StockAfter)
}

func TestBuildCard_Empty(t *testing.T) {
	assert.Empty(t, stock.BuildCard(nil, 0))
}
