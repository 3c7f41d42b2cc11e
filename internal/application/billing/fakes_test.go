package billing_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-ledger-api/internal/application/billing"
	"github.com/tu-usuario/retail-ledger-api/internal/application/inventory"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/entity"
	"github.com/tu-usuario/retail-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. memStore guarda todo el estado; los repos fake operan
// sobre él con un mutex por llamada. fakeTxRunner serializa transacciones
// completas (equivalente observable del bloqueo de fila) y restaura un
// snapshot si el callback falla (equivalente del rollback). Las secuencias
// quedan fuera del snapshot, como nextval en PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

// Las líneas de documento viven en mapas por ID de línea: la iteración es
// en orden aleatorio, como lo sería un ORDER BY sobre UUIDs, así que
// cualquier orden observable debe salir de line_no y no de la inserción.
type memStore struct {
	mu           sync.Mutex
	products     map[string]*entity.Product
	locations    map[string]*entity.StockLocation
	customers    map[string]*entity.Customer
	balances     map[string]*entity.StockBalance
	ledger       []*entity.StockLedgerEntry
	invoices     map[string]*entity.Invoice
	invoiceLines map[string]*entity.InvoiceLine
	returns      map[string]*entity.Return
	returnLines  map[string]*entity.ReturnLine
	seqs         map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		products:     make(map[string]*entity.Product),
		locations:    make(map[string]*entity.StockLocation),
		customers:    make(map[string]*entity.Customer),
		balances:     make(map[string]*entity.StockBalance),
		invoices:     make(map[string]*entity.Invoice),
		invoiceLines: make(map[string]*entity.InvoiceLine),
		returns:      make(map[string]*entity.Return),
		returnLines:  make(map[string]*entity.ReturnLine),
		seqs:         make(map[string]int64),
	}
}

func balKey(productID, locationID string) string { return productID + "|" + locationID }

type storeSnapshot struct {
	products     map[string]*entity.Product
	locations    map[string]*entity.StockLocation
	customers    map[string]*entity.Customer
	balances     map[string]*entity.StockBalance
	ledger       []*entity.StockLedgerEntry
	invoices     map[string]*entity.Invoice
	invoiceLines map[string]*entity.InvoiceLine
	returns      map[string]*entity.Return
	returnLines  map[string]*entity.ReturnLine
}

func copyMap[T any](src map[string]*T) map[string]*T {
	dst := make(map[string]*T, len(src))
	for k, v := range src {
		cp := *v
		dst[k] = &cp
	}
	return dst
}

func copySlice[T any](src []*T) []*T {
	dst := make([]*T, 0, len(src))
	for _, v := range src {
		cp := *v
		dst = append(dst, &cp)
	}
	return dst
}

func (s *memStore) snapshot() *storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &storeSnapshot{
		products:     copyMap(s.products),
		locations:    copyMap(s.locations),
		customers:    copyMap(s.customers),
		balances:     copyMap(s.balances),
		ledger:       copySlice(s.ledger),
		invoices:     copyMap(s.invoices),
		invoiceLines: copyMap(s.invoiceLines),
		returns:      copyMap(s.returns),
		returnLines:  copyMap(s.returnLines),
	}
}

func (s *memStore) restore(snap *storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.locations = snap.locations
	s.customers = snap.customers
	s.balances = snap.balances
	s.ledger = snap.ledger
	s.invoices = snap.invoices
	s.invoiceLines = snap.invoiceLines
	s.returns = snap.returns
	s.returnLines = snap.returnLines
}

// ── repos fake ────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
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

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == code || p.BarcodeValue == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *fakeProductRepo) UpdateBarcode(productID, barcodeValue string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[productID]; ok {
		p.BarcodeValue = barcodeValue
	}
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

type fakeLocationRepo struct{ s *memStore }

var _ repository.LocationRepository = (*fakeLocationRepo)(nil)

func (r *fakeLocationRepo) Create(l *entity.StockLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.locations[l.ID] = &cp
	return nil
}

func (r *fakeLocationRepo) GetByID(id string) (*entity.StockLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.locations[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeLocationRepo) GetByName(name string) (*entity.StockLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.locations {
		if l.Name == name {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) List(limit, offset int) ([]*entity.StockLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockLocation
	for _, l := range r.s.locations {
		cp := *l
		list = append(list, &cp)
	}
	return list, nil
}

type fakeCustomerRepo struct{ s *memStore }

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Customer
	for _, c := range r.s.customers {
		cp := *c
		list = append(list, &cp)
	}
	return list, nil
}

type fakeBalanceRepo struct{ s *memStore }

var _ repository.StockBalanceRepository = (*fakeBalanceRepo)(nil)

func (r *fakeBalanceRepo) Get(productID, locationID string) (*entity.StockBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.balances[balKey(productID, locationID)]; ok {
		cp := *b
		return &cp, nil
	}
	return &entity.StockBalance{ProductID: productID, LocationID: locationID}, nil
}

func (r *fakeBalanceRepo) GetForUpdate(productID, locationID string) (*entity.StockBalance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := balKey(productID, locationID)
	if _, ok := r.s.balances[key]; !ok {
		r.s.balances[key] = &entity.StockBalance{ProductID: productID, LocationID: locationID, LastUpdated: time.Now()}
	}
	cp := *r.s.balances[key]
	return &cp, nil
}

func (r *fakeBalanceRepo) Upsert(b *entity.StockBalance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *b
	r.s.balances[balKey(b.ProductID, b.LocationID)] = &cp
	return nil
}

type fakeLedgerRepo struct{ s *memStore }

var _ repository.StockLedgerRepository = (*fakeLedgerRepo)(nil)

func (r *fakeLedgerRepo) Append(e *entity.StockLedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

// List devuelve del más reciente al más antiguo; los empates de fecha se
// resuelven por orden de inserción, como hace el adaptador real.
func (r *fakeLedgerRepo) List(filter repository.LedgerFilter) ([]*entity.StockLedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.StockLedgerEntry
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		e := r.s.ledger[i]
		if filter.ProductID != "" && e.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && e.LocationID != filter.LocationID {
			continue
		}
		cp := *e
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeLedgerRepo) SumByMovementType(productID, locationID string) (map[string]int64, error) {
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

type fakeInvoiceRepo struct{ s *memStore }

var _ repository.InvoiceRepository = (*fakeInvoiceRepo)(nil)

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *line
	r.s.invoiceLines[line.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) UpdateTotals(invoiceID string, subtotal, total decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv, ok := r.s.invoices[invoiceID]; ok {
		inv.Subtotal = subtotal
		inv.Total = total
	}
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv, ok := r.s.invoices[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetByNo(invoiceNo string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invoices {
		if inv.InvoiceNo == invoiceNo {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) GetLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var lines []*entity.InvoiceLine
	for _, l := range r.s.invoiceLines {
		if l.InvoiceID == invoiceID {
			cp := *l
			lines = append(lines, &cp)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].LineNo < lines[j].LineNo })
	return lines, nil
}

func (r *fakeInvoiceRepo) AggregateLinesBySKU(invoiceID string) ([]repository.InvoiceSKUAggregate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byProduct := make(map[string]*repository.InvoiceSKUAggregate)
	for _, l := range r.s.invoiceLines {
		if l.InvoiceID != invoiceID {
			continue
		}
		if agg, ok := byProduct[l.ProductID]; ok {
			agg.SoldQty += l.Qty
			continue
		}
		p := r.s.products[l.ProductID]
		byProduct[l.ProductID] = &repository.InvoiceSKUAggregate{
			ProductID:   l.ProductID,
			SKU:         p.SKU,
			ProductName: p.Name,
			UnitPrice:   l.UnitPrice,
			SoldQty:     l.Qty,
		}
	}
	aggs := make([]repository.InvoiceSKUAggregate, 0, len(byProduct))
	for _, agg := range byProduct {
		aggs = append(aggs, *agg)
	}
	sort.Slice(aggs, func(i, j int) bool { return aggs[i].SKU < aggs[j].SKU })
	return aggs, nil
}

type fakeReturnRepo struct{ s *memStore }

var _ repository.ReturnRepository = (*fakeReturnRepo)(nil)

func (r *fakeReturnRepo) Create(ret *entity.Return) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *ret
	r.s.returns[ret.ID] = &cp
	return nil
}

func (r *fakeReturnRepo) CreateLine(line *entity.ReturnLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *line
	r.s.returnLines[line.ID] = &cp
	return nil
}

func (r *fakeReturnRepo) UpdateTotal(returnID string, totalRefund decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ret, ok := r.s.returns[returnID]; ok {
		ret.TotalRefund = totalRefund
	}
	return nil
}

func (r *fakeReturnRepo) GetByID(id string) (*entity.Return, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if ret, ok := r.s.returns[id]; ok {
		cp := *ret
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeReturnRepo) GetLines(returnID string) ([]*entity.ReturnLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var lines []*entity.ReturnLine
	for _, l := range r.s.returnLines {
		if l.ReturnID == returnID {
			cp := *l
			lines = append(lines, &cp)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].LineNo < lines[j].LineNo })
	return lines, nil
}

func (r *fakeReturnRepo) SumReturnedBySKU(invoiceID string) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sums := make(map[string]int64)
	for _, l := range r.s.returnLines {
		ret, ok := r.s.returns[l.ReturnID]
		if !ok || ret.InvoiceID != invoiceID {
			continue
		}
		p := r.s.products[l.ProductID]
		sums[p.SKU] += l.Qty
	}
	return sums, nil
}

type fakeSequenceRepo struct{ s *memStore }

var _ repository.SequenceRepository = (*fakeSequenceRepo)(nil)

func (r *fakeSequenceRepo) Next(name string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seqs[name]++
	return r.s.seqs[name], nil
}

// fakeTxRunner serializa transacciones y restaura el snapshot en error.
type fakeTxRunner struct {
	s    *memStore
	txMu sync.Mutex
}

var _ billing.BillingTxRunner = (*fakeTxRunner)(nil)
var _ inventory.TxRunner = (*fakeTxRunner)(nil)

// Run atiende los movimientos simples (IN y ADJUST) con la misma
// serialización y el mismo rollback por snapshot que RunBilling.
func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	balanceRepo repository.StockBalanceRepository,
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	snap := r.s.snapshot()
	err := fn(
		&fakeBalanceRepo{s: r.s},
		&fakeLedgerRepo{s: r.s},
		&fakeProductRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	balanceRepo repository.StockBalanceRepository,
	ledgerRepo repository.StockLedgerRepository,
	invoiceRepo repository.InvoiceRepository,
	returnRepo repository.ReturnRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	snap := r.s.snapshot()
	err := fn(
		&fakeBalanceRepo{s: r.s},
		&fakeLedgerRepo{s: r.s},
		&fakeInvoiceRepo{s: r.s},
		&fakeReturnRepo{s: r.s},
		&fakeSequenceRepo{s: r.s},
	)
	if err != nil {
		r.s.restore(snap)
	}
	return err
}

// ── fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	store     *memStore
	runner    *fakeTxRunner
	invoices  *billing.CreateInvoiceUseCase
	returns   *billing.CreateReturnUseCase
	movements *inventory.MovementUseCase
	queries   *inventory.QueryUseCase

	location *entity.StockLocation
	customer *entity.Customer
}

func newFixture() *fixture {
	store := newMemStore()
	runner := &fakeTxRunner{s: store}
	productRepo := &fakeProductRepo{s: store}
	locationRepo := &fakeLocationRepo{s: store}
	customerRepo := &fakeCustomerRepo{s: store}
	invoiceRepo := &fakeInvoiceRepo{s: store}
	returnRepo := &fakeReturnRepo{s: store}

	f := &fixture{
		store:  store,
		runner: runner,
		invoices: billing.NewCreateInvoiceUseCase(
			runner, productRepo, locationRepo, customerRepo, invoiceRepo,
		),
		returns: billing.NewCreateReturnUseCase(
			runner, productRepo, locationRepo, customerRepo, invoiceRepo, returnRepo,
		),
		movements: inventory.NewMovementUseCase(runner, productRepo, locationRepo),
		queries:   inventory.NewQueryUseCase(productRepo, &fakeBalanceRepo{s: store}, &fakeLedgerRepo{s: store}),
	}

	f.location = &entity.StockLocation{ID: uuid.New().String(), Name: "Tienda Centro", CreatedAt: time.Now()}
	_ = locationRepo.Create(f.location)
	f.customer = &entity.Customer{ID: uuid.New().String(), Name: "Ana Torres", CustomerType: entity.CustomerTypeRetail, CreatedAt: time.Now()}
	_ = customerRepo.Create(f.customer)
	return f
}

// seedProduct crea un producto con saldo inicial en la ubicación del fixture.
func (f *fixture) seedProduct(sku string, price, cost int64, onHand int64) *entity.Product {
	p := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          sku,
		Name:         "Producto " + sku,
		Cost:         decimal.NewFromInt(cost),
		SellingPrice: decimal.NewFromInt(price),
		BarcodeValue: sku,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	_ = (&fakeProductRepo{s: f.store}).Create(p)
	if onHand > 0 {
		_ = (&fakeBalanceRepo{s: f.store}).Upsert(&entity.StockBalance{
			ProductID:   p.ID,
			LocationID:  f.location.ID,
			OnHandQty:   onHand,
			LastUpdated: time.Now(),
		})
	}
	return p
}

func (f *fixture) onHand(productID string) int64 {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if b, ok := f.store.balances[balKey(productID, f.location.ID)]; ok {
		return b.OnHandQty
	}
	return 0
}

func (f *fixture) ledgerEntries(productID string) []*entity.StockLedgerEntry {
	entries, _ := (&fakeLedgerRepo{s: f.store}).List(repository.LedgerFilter{ProductID: productID})
	return entries
}
