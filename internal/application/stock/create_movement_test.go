package stock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megamind/stockmanager-api/internal/domain"
	"github.com/megamind/stockmanager-api/internal/domain/entity"
)

// Scénario du cahier des charges : produit à 10, vente de 3 → stock à 7,
// mouvement persisté avec quantité -3.
func TestCreateMovement_Sale(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "Farine de maïs", 10)
	uc := newTestUseCase(st)

	mov, err := uc.CreateMovement(context.Background(), MovementInput{
		ProductID:      "p1",
		Quantity:       3,
		Type:           entity.MovementSale,
		ActorID:        "u1",
		SourceDocument: "SALE-000042",
	})
	require.NoError(t, err)

	assert.Equal(t, -3, mov.Quantity)
	assert.Equal(t, entity.MovementSale, mov.Type)
	assert.Equal(t, "u1", mov.CreatedBy)
	assert.NotEmpty(t, mov.ID)
	assert.Equal(t, 7, st.products["p1"].QuantityInStock)
}

// Le sens vient du type, pas de l'appelant : une magnitude positive sur un
// type entrant augmente le stock.
func TestCreateMovement_Supply(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "Sucre", 5)
	uc := newTestUseCase(st)

	mov, err := uc.CreateMovement(context.Background(), MovementInput{
		ProductID: "p1", Quantity: 10, Type: entity.MovementSupply, ActorID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, mov.Quantity)
	assert.Equal(t, 15, st.products["p1"].QuantityInStock)
}

// Garde de stock : une sortie supérieure au disponible échoue avec le contexte
// (produit, disponible, demandé) et n'effectue aucune écriture.
func TestCreateMovement_InsufficientStock(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "Huile", 7)
	uc := newTestUseCase(st)

	_, err := uc.CreateMovement(context.Background(), MovementInput{
		ProductID: "p1", Quantity: 20, Type: entity.MovementSale, ActorID: "u1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.Equal(t, "Huile", insuf.ProductName)
	assert.Equal(t, 7, insuf.Available)
	assert.Equal(t, 20, insuf.Requested)

	// Zéro écriture : pas de mouvement, stock inchangé.
	assert.Empty(t, st.movements)
	assert.Equal(t, 7, st.products["p1"].QuantityInStock)
}

// Quantité non positive rejetée avant toute lecture.
func TestCreateMovement_NonPositiveQuantity(t *testing.T) {
	uc := newTestUseCase(newFakeState())
	for _, qty := range []int{0, -5} {
		_, err := uc.CreateMovement(context.Background(), MovementInput{
			ProductID: "p1", Quantity: qty, Type: entity.MovementSupply, ActorID: "u1",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantité %d", qty)
	}
}

func TestCreateMovement_UnknownType(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "Riz", 10)
	uc := newTestUseCase(st)

	_, err := uc.CreateMovement(context.Background(), MovementInput{
		ProductID: "p1", Quantity: 1, Type: entity.MovementType("ENTREE"), ActorID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// L'identité de l'opérateur est un paramètre explicite et obligatoire.
func TestCreateMovement_MissingActor(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "Riz", 10)
	uc := newTestUseCase(st)

	_, err := uc.CreateMovement(context.Background(), MovementInput{
		ProductID: "p1", Quantity: 1, Type: entity.MovementSupply,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateMovement_ProductNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeState())
	_, err := uc.CreateMovement(context.Background(), MovementInput{
		ProductID: "missing", Quantity: 1, Type: entity.MovementSupply, ActorID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Si l'insertion du mouvement échoue, la transaction est annulée : le stock
// produit ne diverge jamais du journal.
func TestCreateMovement_RollbackOnFailure(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "Savon", 10)
	uc := newTestUseCase(st)

	boom := errors.New("insert failed")
	uc.txRunner.(*fakeTxRunner).movOpts = func(r *fakeMovementRepo) { r.failCreate = boom }

	_, err := uc.CreateMovement(context.Background(), MovementInput{
		ProductID: "p1", Quantity: 2, Type: entity.MovementSale, ActorID: "u1",
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, st.movements)
	assert.Equal(t, 10, st.products["p1"].QuantityInStock)
}

// Invariant de réconciliation : après chaque mouvement, le stock dénormalisé
// est égal à la somme des quantités signées du journal.
func TestCreateMovement_ReconciliationInvariant(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "Lait", 0)
	uc := newTestUseCase(st)

	steps := []MovementInput{
		{ProductID: "p1", Quantity: 10, Type: entity.MovementSupply, ActorID: "u1"},
		{ProductID: "p1", Quantity: 3, Type: entity.MovementSale, ActorID: "u1"},
		{ProductID: "p1", Quantity: 2, Type: entity.MovementCustomerReturn, ActorID: "u1"},
		{ProductID: "p1", Quantity: 4, Type: entity.MovementWastage, ActorID: "u1"},
		{ProductID: "p1", Quantity: 1, Type: entity.MovementAdjustmentMinus, ActorID: "u1"},
	}
	for i, in := range steps {
		_, err := uc.CreateMovement(context.Background(), in)
		require.NoError(t, err, "étape %d", i)
		assert.Equal(t, st.signedSum("p1"), st.products["p1"].QuantityInStock, "étape %d", i)
	}
	assert.Equal(t, 4, st.products["p1"].QuantityInStock)
}

// Fiche de stock fenêtrée : par défaut le solde ne reflète que la fenêtre ;
// avec carry_forward il repart du solde au début de fenêtre.
func TestGetStockCard_Window(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "Thé", 0)
	uc := newTestUseCase(st)

	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	st.movements = []*entity.StockMovement{
		{ID: "m1", ProductID: "p1", Quantity: 10, Type: entity.MovementSupply, MovementDate: day(1)},
		{ID: "m2", ProductID: "p1", Quantity: -3, Type: entity.MovementSale, MovementDate: day(5)},
		{ID: "m3", ProductID: "p1", Quantity: 2, Type: entity.MovementCustomerReturn, MovementDate: day(10)},
	}

	from := day(4)
	to := day(11)

	card, err := uc.GetStockCard("p1", &from, &to, false)
	require.NoError(t, err)
	require.Len(t, card, 2)
	assert.Equal(t, 0, card[0].StockBefore) // amorcé à zéro, comportement historique
	assert.Equal(t, -3, card[0].StockAfter)
	assert.Equal(t, -1, card[1].StockAfter)

	card, err = uc.GetStockCard("p1", &from, &to, true)
	require.NoError(t, err)
	require.Len(t, card, 2)
	assert.Equal(t, 10, card[0].StockBefore) // report de l'historique antérieur
	assert.Equal(t, 7, card[0].StockAfter)
	assert.Equal(t, 9, card[1].StockAfter)
}

func TestGetStockCard_FullHistory(t *testing.T) {
	st := newFakeState()
	seedProduct(st, "p1", "Thé", 9)
	uc := newTestUseCase(st)

	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	st.movements = []*entity.StockMovement{
		{ID: "m1", ProductID: "p1", Quantity: 10, Type: entity.MovementSupply, MovementDate: day(1)},
		{ID: "m2", ProductID: "p1", Quantity: -3, Type: entity.MovementSale, MovementDate: day(5)},
		{ID: "m3", ProductID: "p1", Quantity: 2, Type: entity.MovementCustomerReturn, MovementDate: day(10)},
	}

	card, err := uc.GetStockCard("p1", nil, nil, false)
	require.NoError(t, err)
	require.Len(t, card, 3)
	assert.Equal(t, 0, card[0].StockBefore)
	assert.Equal(t, 10, card[0].StockAfter)
	assert.Equal(t, 7, card[1].StockAfter)
	assert.Equal(t, 9, card[2].StockAfter)
}

func TestGetHistory_ProductNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeState())
	_, err := uc.GetHistory("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
