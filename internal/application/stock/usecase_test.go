package stock

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/megamind/stockmanager-api/internal/domain/entity"
	"github.com/megamind/stockmanager-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doubles en mémoire : état partagé + rollback par snapshot, pour reproduire
// la sémantique transactionnelle (aucune écriture visible après échec).
// ──────────────────────────────────────────────────────────────────────────────

type fakeState struct {
	movements []*entity.StockMovement
	products  map[string]*entity.Product
}

func newFakeState() *fakeState {
	return &fakeState{products: map[string]*entity.Product{}}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for _, m := range s.movements {
		cp := *m
		c.movements = append(c.movements, &cp)
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	return c
}

// signedSum somme des quantités signées des mouvements d'un produit
// (vérification de l'invariant de réconciliation).
func (s *fakeState) signedSum(productID string) int {
	sum := 0
	for _, m := range s.movements {
		if m.ProductID == productID {
			sum += m.Quantity
		}
	}
	return sum
}

type fakeMovementRepo struct {
	st         *fakeState
	failCreate error
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	cp := *m
	r.st.movements = append(r.st.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.st.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.st.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.MovementDate.Before(*from) {
			continue
		}
		if to != nil && m.MovementDate.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MovementDate.Before(out[j].MovementDate)
	})
	return out, nil
}

func (r *fakeMovementRepo) ListByTypes(types []entity.MovementType, from, to time.Time, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.st.movements {
		if !typeIn(m.Type, types) || m.MovementDate.Before(from) || m.MovementDate.After(to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MovementDate.After(out[j].MovementDate)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMovementRepo) CountByTypes(types []entity.MovementType, from, to time.Time) (int64, error) {
	var n int64
	for _, m := range r.st.movements {
		if typeIn(m.Type, types) && !m.MovementDate.Before(from) && !m.MovementDate.After(to) {
			n++
		}
	}
	return n, nil
}

func (r *fakeMovementRepo) SumByProductBefore(productID string, before time.Time) (int, error) {
	sum := 0
	for _, m := range r.st.movements {
		if m.ProductID == productID && m.MovementDate.Before(before) {
			sum += m.Quantity
		}
	}
	return sum, nil
}

func typeIn(t entity.MovementType, types []entity.MovementType) bool {
	for _, x := range types {
		if t == x {
			return true
		}
	}
	return false
}

type fakeProductRepo struct {
	st *fakeState
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.st.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.st.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.st.products {
		if strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.st.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int) error {
	p, ok := r.st.products[id]
	if !ok {
		return errors.New("produit absent")
	}
	p.QuantityInStock = quantity
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Count() (int64, error)                             { return int64(len(r.st.products)), nil }
func (r *fakeProductRepo) SearchByName(pattern string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(id string) error {
	delete(r.st.products, id)
	return nil
}

type fakeTxRunner struct {
	st       *fakeState
	movOpts  func(*fakeMovementRepo)
}

var _ TxRunner = (*fakeTxRunner)(nil)

// Run exécute fn sur l'état partagé et restaure le snapshot en cas d'erreur,
// comme le ferait un rollback.
func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapshot := r.st.clone()
	movRepo := &fakeMovementRepo{st: r.st}
	if r.movOpts != nil {
		r.movOpts(movRepo)
	}
	if err := fn(movRepo, &fakeProductRepo{st: r.st}); err != nil {
		*r.st = *snapshot
		return err
	}
	return nil
}

// newTestUseCase câble le cas d'usage sur l'état en mémoire.
func newTestUseCase(st *fakeState) *UseCase {
	uc := New(&fakeTxRunner{st: st}, &fakeMovementRepo{st: st}, &fakeProductRepo{st: st})
	uc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	return uc
}

func seedProduct(st *fakeState, id, name string, qty int) {
	st.products[id] = &entity.Product{ID: id, Name: name, QuantityInStock: qty, LowStockAlert: 5}
}
