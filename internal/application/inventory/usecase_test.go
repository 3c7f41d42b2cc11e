package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-ledger-api/internal/application/dto"
	"github.com/tu-usuario/retail-ledger-api/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger-api/internal/domain"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos en memoria para los movimientos simples (IN y ADJUST).
// El runner serializa transacciones y restaura el estado en error.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	locations map[string]*entity.StockLocation
	balances  map[string]*entity.StockBalance
	ledger    []*entity.StockLedgerEntry
}

func key(productID, locationID string) string { return productID + "|" + locationID }

type productRepo struct{ s *memState }

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetByCode(code string) (*entity.Product, error) { return r.GetBySKU(code) }

func (r *productRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *productRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *productRepo) UpdateBarcode(productID, barcodeValue string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[productID]; ok {
		p.BarcodeValue = barcodeValue
	}
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type locationRepo struct{ s *memState }

var _ repository.LocationRepository = (*locationRepo)(nil)

func (r *locationRepo) Create(l *entity.StockLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.locations[l.ID] = &cp
	return nil
}

func (r *locationRepo) GetByID(id string) (*entity.StockLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *locationRepo) GetByName(name string) (*entity.StockLocation, error) { return nil, nil }

func (r *locationRepo) List(limit, offset int) ([]*entity.StockLocation, error) { return nil, nil }

type balanceRepo struct{ s *memState }

var _ repository.StockBalanceRepository = (*balanceRepo)(nil)

func (r *balanceRepo) Get(productID, locationID string) (*entity.StockBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.balances[key(productID, locationID)]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.StockBalance{ProductID: productID, LocationID: locationID}, nil
}

func (r *balanceRepo) GetForUpdate(productID, locationID string) (*entity.StockBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := key(productID, locationID)
	if _, ok := r.s.balances[k]; !ok {
		r.s.balances[k] = &entity.StockBalance{ProductID: productID, LocationID: locationID, LastUpdated: time.Now()}
	}
	cp := *r.s.balances[k]
	return &cp, nil
}

func (r *balanceRepo) Upsert(b *entity.StockBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *b
	r.s.balances[key(b.ProductID, b.LocationID)] = &cp
	return nil
}

type ledgerRepo struct{ s *memState }

var _ repository.StockLedgerRepository = (*ledgerRepo)(nil)

func (r *ledgerRepo) Append(e *entity.StockLedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

// List devuelve del más reciente al más antiguo; los empates de fecha se
// resuelven por orden de inserción, como hace el adaptador real.
func (r *ledgerRepo) List(filter repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockLedgerEntry
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		e := r.s.ledger[i]
		if filter.ProductID != "" && e.ProductID != filter.ProductID {
			continue
		}
		cp := *e
		list = append(list, &cp)
	}
	return list, nil
}

func (r *ledgerRepo) SumByMovementType(productID, locationID string) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sums := make(map[string]int64)
	for _, e := range r.s.ledger {
		if e.ProductID == productID && e.LocationID == locationID {
			sums[e.MovementType] += e.Qty
		}
	}
	return sums, nil
}

type txRunner struct {
	s    *memState
	txMu sync.Mutex
}

var _ inventory.TxRunner = (*txRunner)(nil)

func (r *txRunner) Run(ctx context.Context, fn func(
	balanceRepo repository.StockBalanceRepository,
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.s.mu.Lock()
	snapBalances := make(map[string]*entity.StockBalance, len(r.s.balances))
	for k, b := range r.s.balances {
		cp := *b
		snapBalances[k] = &cp
	}
	snapProducts := make(map[string]*entity.Product, len(r.s.products))
	for k, p := range r.s.products {
		cp := *p
		snapProducts[k] = &cp
	}
	snapLedgerLen := len(r.s.ledger)
	r.s.mu.Unlock()

	err := fn(&balanceRepo{s: r.s}, &ledgerRepo{s: r.s}, &productRepo{s: r.s})
	if err != nil {
		r.s.mu.Lock()
		r.s.balances = snapBalances
		r.s.products = snapProducts
		r.s.ledger = r.s.ledger[:snapLedgerLen]
		r.s.mu.Unlock()
	}
	return err
}

// ── fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	state    *memState
	uc       *inventory.MovementUseCase
	queries  *inventory.QueryUseCase
	location *entity.StockLocation
}

func newFixture() *fixture {
	state := &memState{
		products:  make(map[string]*entity.Product),
		locations: make(map[string]*entity.StockLocation),
		balances:  make(map[string]*entity.StockBalance),
	}
	runner := &txRunner{s: state}
	products := &productRepo{s: state}
	locations := &locationRepo{s: state}
	f := &fixture{
		state:   state,
		uc:      inventory.NewMovementUseCase(runner, products, locations),
		queries: inventory.NewQueryUseCase(products, &balanceRepo{s: state}, &ledgerRepo{s: state}),
	}
	f.location = &entity.StockLocation{ID: uuid.New().String(), Name: "Bodega Principal", CreatedAt: time.Now()}
	_ = locations.Create(f.location)
	return f
}

func (f *fixture) seedProduct(sku string, cost, onHand int64) *entity.Product {
	p := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          sku,
		Name:         "Producto " + sku,
		Cost:         decimal.NewFromInt(cost),
		SellingPrice: decimal.NewFromInt(cost * 2),
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	_ = (&productRepo{s: f.state}).Create(p)
	if onHand > 0 {
		_ = (&balanceRepo{s: f.state}).Upsert(&entity.StockBalance{
			ProductID:   p.ID,
			LocationID:  f.location.ID,
			OnHandQty:   onHand,
			LastUpdated: time.Now(),
		})
	}
	return p
}

func (f *fixture) onHand(productID string) int64 {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	if b, ok := f.state.balances[key(productID, f.location.ID)]; ok {
		return b.OnHandQty
	}
	return 0
}

// ──────────────────────────────────────────────────────────────────────────────
// StockIn
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_SumaSaldoYAgregaAsiento(t *testing.T) {
	f := newFixture()
	p := f.seedProduct("CAM-001", 30, 5)

	err := f.uc.StockIn(context.Background(), dto.StockInRequest{
		LocationID:  f.location.ID,
		SKU:         "CAM-001",
		Qty:         10,
		ReferenceNo: "GRN-0001",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15), f.onHand(p.ID))
	entries, _ := (&ledgerRepo{s: f.state}).List(repository.LedgerFilter{ProductID: p.ID})
	require.Len(t, entries, 1)
	assert.Equal(t, entity.MovementTypeIN, entries[0].MovementType)
	assert.Equal(t, int64(10), entries[0].Qty)
	assert.Equal(t, entity.ReferenceTypeStockIn, entries[0].ReferenceType)
	assert.Equal(t, "GRN-0001", entries[0].ReferenceNo)
	assert.True(t, decimal.NewFromInt(30).Equal(entries[0].UnitCost), "sin costo de entrada el asiento toma el costo actual")
}

// Entrada con costo unitario: el costo del producto pasa al promedio
// ponderado y el asiento registra el costo de la entrada.
func TestStockIn_RecalculaCostoPromedio(t *testing.T) {
	f := newFixture()
	p := f.seedProduct("CAM-001", 10, 30)

	costo := decimal.NewFromInt(30)
	err := f.uc.StockIn(context.Background(), dto.StockInRequest{
		LocationID: f.location.ID,
		SKU:        "CAM-001",
		Qty:        10,
		UnitCost:   &costo,
	})
	require.NoError(t, err)

	// (30*10 + 10*30) / 40 = 15
	f.state.mu.Lock()
	got := f.state.products[p.ID].Cost
	f.state.mu.Unlock()
	assert.True(t, decimal.NewFromInt(15).Equal(got), "costo promedio esperado 15, obtenido %s", got)

	entries, _ := (&ledgerRepo{s: f.state}).List(repository.LedgerFilter{ProductID: p.ID})
	require.Len(t, entries, 1)
	assert.True(t, decimal.NewFromInt(30).Equal(entries[0].UnitCost), "el asiento lleva el costo de la entrada")
}

func TestStockIn_EntradasInvalidas(t *testing.T) {
	f := newFixture()
	f.seedProduct("CAM-001", 30, 5)
	negativo := decimal.NewFromInt(-10)

	casos := []struct {
		nombre string
		in     dto.StockInRequest
		want   error
	}{
		{"cantidad cero", dto.StockInRequest{LocationID: f.location.ID, SKU: "CAM-001", Qty: 0}, domain.ErrInvalidLineItem},
		{"cantidad negativa", dto.StockInRequest{LocationID: f.location.ID, SKU: "CAM-001", Qty: -5}, domain.ErrInvalidLineItem},
		{"costo negativo", dto.StockInRequest{LocationID: f.location.ID, SKU: "CAM-001", Qty: 1, UnitCost: &negativo}, domain.ErrInvalidLineItem},
		{"producto inexistente", dto.StockInRequest{LocationID: f.location.ID, SKU: "NADA", Qty: 1}, domain.ErrNotFound},
		{"ubicación inexistente", dto.StockInRequest{LocationID: "fantasma", SKU: "CAM-001", Qty: 1}, domain.ErrNotFound},
	}
	for _, tc := range casos {
		err := f.uc.StockIn(context.Background(), tc.in)
		assert.ErrorIs(t, err, tc.want, tc.nombre)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_ConservaElSignoEnElAsiento(t *testing.T) {
	f := newFixture()
	p := f.seedProduct("CAM-001", 30, 10)

	err := f.uc.Adjust(context.Background(), dto.AdjustRequest{
		LocationID: f.location.ID,
		SKU:        "CAM-001",
		Qty:        -3,
		Notes:      "conteo físico: faltante",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), f.onHand(p.ID))
	entries, _ := (&ledgerRepo{s: f.state}).List(repository.LedgerFilter{ProductID: p.ID})
	require.Len(t, entries, 1)
	assert.Equal(t, entity.MovementTypeADJUST, entries[0].MovementType)
	assert.Equal(t, int64(-3), entries[0].Qty, "el asiento ADJUST conserva el signo del delta")
	assert.Equal(t, entity.ReferenceTypeAdjust, entries[0].ReferenceType)
}

func TestAdjust_PositivoSuma(t *testing.T) {
	f := newFixture()
	p := f.seedProduct("CAM-001", 30, 2)

	err := f.uc.Adjust(context.Background(), dto.AdjustRequest{
		LocationID: f.location.ID,
		SKU:        "CAM-001",
		Qty:        5,
		Notes:      "conteo físico: sobrante",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), f.onHand(p.ID))
}

// Un ajuste negativo que dejaría el saldo bajo cero se rechaza y no deja
// asiento en el libro.
func TestAdjust_NoPermiteSaldoNegativo(t *testing.T) {
	f := newFixture()
	p := f.seedProduct("CAM-001", 30, 2)

	err := f.uc.Adjust(context.Background(), dto.AdjustRequest{
		LocationID: f.location.ID,
		SKU:        "CAM-001",
		Qty:        -5,
		Notes:      "ajuste imposible",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.onHand(p.ID))
	entries, _ := (&ledgerRepo{s: f.state}).List(repository.LedgerFilter{ProductID: p.ID})
	assert.Empty(t, entries, "el ajuste rechazado no debe dejar asiento")
}

func TestAdjust_RequiereNotas(t *testing.T) {
	f := newFixture()
	f.seedProduct("CAM-001", 30, 5)

	err := f.uc.Adjust(context.Background(), dto.AdjustRequest{
		LocationID: f.location.ID,
		SKU:        "CAM-001",
		Qty:        1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetBalance_SaldoCeroSiNuncaHuboMovimiento(t *testing.T) {
	f := newFixture()
	f.seedProduct("CAM-001", 30, 0)

	bal, err := f.queries.GetBalance(context.Background(), "CAM-001", f.location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal.OnHand)
	assert.Equal(t, int64(0), bal.Available)
}

func TestGetBalance_ReflejaMovimientos(t *testing.T) {
	f := newFixture()
	f.seedProduct("CAM-001", 30, 0)

	require.NoError(t, f.uc.StockIn(context.Background(), dto.StockInRequest{
		LocationID: f.location.ID, SKU: "CAM-001", Qty: 8,
	}))
	require.NoError(t, f.uc.Adjust(context.Background(), dto.AdjustRequest{
		LocationID: f.location.ID, SKU: "CAM-001", Qty: -3, Notes: "ajuste",
	}))

	bal, err := f.queries.GetBalance(context.Background(), "CAM-001", f.location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), bal.OnHand)
}

func TestGetBalance_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.queries.GetBalance(context.Background(), "NADA", f.location.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El libro se lista del movimiento más reciente al más antiguo.
func TestListLedger_DelMasRecienteAlMasAntiguo(t *testing.T) {
	f := newFixture()
	f.seedProduct("CAM-001", 30, 0)

	for _, ref := range []string{"GRN-0001", "GRN-0002", "GRN-0003"} {
		require.NoError(t, f.uc.StockIn(context.Background(), dto.StockInRequest{
			LocationID: f.location.ID, SKU: "CAM-001", Qty: 1, ReferenceNo: ref,
		}))
	}

	entries, err := f.queries.ListLedger(context.Background(), "CAM-001", f.location.ID, nil, nil, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, want := range []string{"GRN-0003", "GRN-0002", "GRN-0001"} {
		assert.Equal(t, want, entries[i].ReferenceNo)
	}
}

// El saldo concilia contra el libro: IN + RETURN - OUT + ADJUST, con los
// asientos ADJUST llevando su signo.
func TestReconcile_EntradasYAjustes(t *testing.T) {
	f := newFixture()
	f.seedProduct("CAM-001", 30, 0)

	require.NoError(t, f.uc.StockIn(context.Background(), dto.StockInRequest{
		LocationID: f.location.ID, SKU: "CAM-001", Qty: 8,
	}))
	require.NoError(t, f.uc.Adjust(context.Background(), dto.AdjustRequest{
		LocationID: f.location.ID, SKU: "CAM-001", Qty: -3, Notes: "faltante",
	}))

	rec, err := f.queries.Reconcile(context.Background(), "CAM-001", f.location.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), rec.Sums[entity.MovementTypeIN])
	assert.Equal(t, int64(-3), rec.Sums[entity.MovementTypeADJUST])
	assert.Equal(t, int64(5), rec.OnHand)
	assert.Equal(t, int64(5), rec.LedgerOnHand)
	assert.True(t, rec.Consistent)
}

func TestReconcile_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.queries.Reconcile(context.Background(), "NADA", f.location.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Ajustes concurrentes sobre el mismo saldo se serializan: el resultado
// final es la suma de los deltas aplicados, sin pérdidas.
func TestAdjust_ConcurrenciaSinPerdidas(t *testing.T) {
	f := newFixture()
	p := f.seedProduct("CAM-001", 30, 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.uc.Adjust(context.Background(), dto.AdjustRequest{
				LocationID: f.location.ID,
				SKU:        "CAM-001",
				Qty:        1,
				Notes:      "incremento concurrente",
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), f.onHand(p.ID))
}
