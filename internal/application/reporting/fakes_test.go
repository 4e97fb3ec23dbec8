package reporting_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

// ── Repositorios en memoria ───────────────────────────────────────────────────

func inRange(t time.Time, r repository.DateRange) bool {
	if r.IsZero() {
		return true
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

type fakeOrders struct {
	orders  []*entity.Order
	items   []*entity.OrderItem
	catalog *fakeProducts // productos para resolver vendedor y categoría de cada línea
	err     error
}

// itemMatches replica el JOIN con products: sin filtros toda línea cumple; con filtros
// el producto debe existir y coincidir.
func (f *fakeOrders) itemMatches(it *entity.OrderItem, vendorID, category string) bool {
	if vendorID == "" && category == "" {
		return true
	}
	if f.catalog == nil {
		return false
	}
	for _, p := range f.catalog.products {
		if p.ID == it.ProductID {
			return (vendorID == "" || p.VendorID == vendorID) && (category == "" || p.Category == category)
		}
	}
	return false
}

func (f *fakeOrders) hasItem(orderID, vendorID, category string) bool {
	for _, it := range f.items {
		if it.OrderID == orderID && f.itemMatches(it, vendorID, category) {
			return true
		}
	}
	return false
}

func (f *fakeOrders) List(_ context.Context, flt repository.OrderFilter) ([]*entity.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*entity.Order
	for _, o := range f.orders {
		if !inRange(o.CreatedAt, flt.Range) {
			continue
		}
		if flt.CharityID != "" && o.CharityID != flt.CharityID {
			continue
		}
		if flt.NeedID != "" && o.NeedID != flt.NeedID {
			continue
		}
		if len(flt.Statuses) > 0 && !slices.Contains(flt.Statuses, o.Status) {
			continue
		}
		if slices.Contains(flt.ExcludeStatuses, o.Status) {
			continue
		}
		if (flt.VendorID != "" || flt.Category != "") && !f.hasItem(o.ID, flt.VendorID, flt.Category) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrders) ListItems(_ context.Context, flt repository.OrderItemFilter) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, it := range f.items {
		if len(flt.OrderIDs) > 0 && !slices.Contains(flt.OrderIDs, it.OrderID) {
			continue
		}
		if flt.ProductID != "" && it.ProductID != flt.ProductID {
			continue
		}
		if !f.itemMatches(it, flt.VendorID, flt.Category) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

type fakeDonations struct{ donations []*entity.Donation }

func (f *fakeDonations) List(_ context.Context, flt repository.DonationFilter) ([]*entity.Donation, error) {
	var out []*entity.Donation
	for _, d := range f.donations {
		if !inRange(d.CreatedAt, flt.Range) {
			continue
		}
		if flt.CharityID != "" && d.CharityID != flt.CharityID {
			continue
		}
		if len(flt.Statuses) > 0 && !slices.Contains(flt.Statuses, d.Status) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type fakeNeeds struct{ needs []*entity.NeedAd }

func (f *fakeNeeds) List(_ context.Context, flt repository.NeedFilter) ([]*entity.NeedAd, error) {
	var out []*entity.NeedAd
	for _, n := range f.needs {
		if inRange(n.CreatedAt, flt.Range) && (flt.CharityID == "" || n.CharityID == flt.CharityID) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNeeds) GetByID(_ context.Context, id string) (*entity.NeedAd, error) {
	for _, n := range f.needs {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

type fakeProducts struct {
	products []*entity.Product
	getErr   error
}

func (f *fakeProducts) List(_ context.Context, flt repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if (flt.VendorID == "" || p.VendorID == flt.VendorID) && (flt.Category == "" || p.Category == flt.Category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

type fakeCharities struct{ charities []*entity.Charity }

func (f *fakeCharities) List(_ context.Context, flt repository.CharityFilter) ([]*entity.Charity, error) {
	var out []*entity.Charity
	for _, c := range f.charities {
		if flt.VerifiedOnly && !c.Verified {
			continue
		}
		if report.MatchesSearch(c, flt.Search) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCharities) GetByID(_ context.Context, id string) (*entity.Charity, error) {
	for _, c := range f.charities {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

// ── Caché y métricas ──────────────────────────────────────────────────────────

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemoryCache() *memoryCache { return &memoryCache{data: make(map[string][]byte)} }

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

type countingMetrics struct {
	mu     sync.Mutex
	errors int
	hits   int
	total  int
}

func (m *countingMetrics) ObserveReport(_ string, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.total++
	if err != nil {
		m.errors++
	}
}

func (m *countingMetrics) ReportCacheHit(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits++
}

var errDB = errors.New("conexión rechazada")
