package reporting

import (
	"context"
	"fmt"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
	"github.com/jhoicas/charity-reports-api/internal/domain/repository"
)

// Estados de pedido considerados por cada reporte.
var (
	financialOrderStatuses = []string{entity.OrderStatusDelivered, entity.OrderStatusShipped, entity.OrderStatusConfirmed}
	impactOrderStatuses    = []string{entity.OrderStatusDelivered, entity.OrderStatusConfirmed}
	completedDonations     = []string{entity.DonationStatusCompleted}
)

// ── Ventas ────────────────────────────────────────────────────────────────────

// salesData pedidos no cancelados de la ventana y sus líneas. Con vendor_id o category
// sólo cuentan los pedidos con alguna línea que cumpla ambos.
func (uc *ReportUseCase) salesData(ctx context.Context, window repository.DateRange, f Filters) ([]*entity.Order, []*entity.OrderItem, error) {
	orders, err := uc.orders.List(ctx, repository.OrderFilter{
		Range:           window,
		CharityID:       f.CharityID,
		NeedID:          f.NeedID,
		VendorID:        f.VendorID,
		Category:        f.Category,
		ExcludeStatuses: []string{entity.OrderStatusCancelled},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("pedidos: %w", err)
	}
	items, err := uc.itemsOf(ctx, orders, f)
	if err != nil {
		return nil, nil, err
	}
	return orders, items, nil
}

func (uc *ReportUseCase) itemsOf(ctx context.Context, orders []*entity.Order, f Filters) ([]*entity.OrderItem, error) {
	if len(orders) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := uc.orders.ListItems(ctx, repository.OrderItemFilter{
		OrderIDs: ids,
		VendorID: f.VendorID,
		Category: f.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("líneas de pedido: %w", err)
	}
	return items, nil
}

func (uc *ReportUseCase) sales(ctx context.Context, window repository.DateRange, f Filters) (report.Payload, error) {
	type result struct {
		orders []*entity.Order
		items  []*entity.OrderItem
		err    error
	}
	curCh := make(chan result, 1)
	prevCh := make(chan result, 1)

	go func() {
		o, i, err := uc.salesData(ctx, window, f)
		curCh <- result{o, i, err}
	}()
	if f.Compare {
		go func() {
			o, i, err := uc.salesData(ctx, PreviousWindow(window), f)
			prevCh <- result{o, i, err}
		}()
	}

	cur := <-curCh
	if cur.err != nil {
		return nil, cur.err
	}
	rep := report.AggregateSales(cur.orders, cur.items)
	rep.DailyTrend = report.OrdersByPeriod(cur.orders, report.ByDay)
	rep.MonthlyTrend = report.OrdersByPeriod(cur.orders, report.ByMonth)

	if f.Compare {
		prev := <-prevCh
		if prev.err != nil {
			return nil, fmt.Errorf("período anterior: %w", prev.err)
		}
		rep.Compare = report.CompareSales(rep.Summary, report.AggregateSales(prev.orders, prev.items).Summary)
	}

	e := uc.newEnricher(ctx)
	for i := range rep.ByProduct {
		e.product(&rep.ByProduct[i])
	}
	for i := range rep.TopProducts {
		e.product(&rep.TopProducts[i])
	}
	for i := range rep.ByCharity {
		rep.ByCharity[i].CharityName = e.charityName(rep.ByCharity[i].CharityID)
	}
	return rep, nil
}

// ── Donaciones ────────────────────────────────────────────────────────────────

func (uc *ReportUseCase) donationsIn(ctx context.Context, window repository.DateRange, f Filters) ([]*entity.Donation, error) {
	ds, err := uc.donations.List(ctx, repository.DonationFilter{
		Range:     window,
		CharityID: f.CharityID,
		NeedID:    f.NeedID,
		Statuses:  completedDonations,
	})
	if err != nil {
		return nil, fmt.Errorf("donaciones: %w", err)
	}
	return ds, nil
}

func (uc *ReportUseCase) donationsReport(ctx context.Context, window repository.DateRange, f Filters) (report.Payload, error) {
	type result struct {
		donations []*entity.Donation
		err       error
	}
	curCh := make(chan result, 1)
	prevCh := make(chan result, 1)
	go func() {
		ds, err := uc.donationsIn(ctx, window, f)
		curCh <- result{ds, err}
	}()
	if f.Compare {
		go func() {
			ds, err := uc.donationsIn(ctx, PreviousWindow(window), f)
			prevCh <- result{ds, err}
		}()
	}

	cur := <-curCh
	if cur.err != nil {
		return nil, cur.err
	}
	rep := report.AggregateDonations(cur.donations)
	rep.DailyTrend = report.DonationsByPeriod(cur.donations, report.ByDay)
	rep.MonthlyTrend = report.DonationsByPeriod(cur.donations, report.ByMonth)

	if f.Compare {
		prev := <-prevCh
		if prev.err != nil {
			return nil, fmt.Errorf("período anterior: %w", prev.err)
		}
		rep.Compare = report.CompareDonations(rep.Summary, report.AggregateDonations(prev.donations).Summary)
	}

	e := uc.newEnricher(ctx)
	for i := range rep.ByCharity {
		rep.ByCharity[i].CharityName = e.charityName(rep.ByCharity[i].CharityID)
	}
	for i := range rep.ByNeed {
		rep.ByNeed[i].NeedTitle = e.needTitle(rep.ByNeed[i].NeedID)
	}
	return rep, nil
}

// ── Necesidades ───────────────────────────────────────────────────────────────

func (uc *ReportUseCase) needsReport(ctx context.Context, window repository.DateRange, f Filters) (report.Payload, error) {
	needs, err := uc.needs.List(ctx, repository.NeedFilter{
		Range:     window,
		CharityID: f.CharityID,
		Category:  f.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("necesidades: %w", err)
	}
	rep := report.AggregateNeeds(needs)
	rep.MonthlyTrend = report.NeedsByPeriod(needs, report.ByMonth)

	e := uc.newEnricher(ctx)
	for i := range rep.ByCharity {
		rep.ByCharity[i].CharityName = e.charityName(rep.ByCharity[i].CharityID)
	}
	return rep, nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (uc *ReportUseCase) productsReport(ctx context.Context, window repository.DateRange, f Filters) (report.Payload, error) {
	type productsResult struct {
		products []*entity.Product
		err      error
	}
	type soldResult struct {
		items []*entity.OrderItem
		err   error
	}
	productsCh := make(chan productsResult, 1)
	soldCh := make(chan soldResult, 1)

	go func() {
		ps, err := uc.products.List(ctx, repository.ProductFilter{VendorID: f.VendorID, Category: f.Category})
		productsCh <- productsResult{ps, err}
	}()
	go func() {
		orders, err := uc.orders.List(ctx, repository.OrderFilter{
			Range:    window,
			VendorID: f.VendorID,
			Category: f.Category,
			Statuses: []string{entity.OrderStatusDelivered},
		})
		if err != nil {
			soldCh <- soldResult{nil, fmt.Errorf("pedidos entregados: %w", err)}
			return
		}
		items, err := uc.itemsOf(ctx, orders, f)
		soldCh <- soldResult{items, err}
	}()

	ps := <-productsCh
	sold := <-soldCh
	if ps.err != nil {
		return nil, fmt.Errorf("productos: %w", ps.err)
	}
	if sold.err != nil {
		return nil, sold.err
	}

	rep := report.AggregateProducts(ps.products, sold.items)
	e := uc.newEnricher(ctx)
	for i := range rep.TopSelling {
		e.product(&rep.TopSelling[i])
	}
	return rep, nil
}

// ── Financiero ────────────────────────────────────────────────────────────────

func (uc *ReportUseCase) financialData(ctx context.Context, window repository.DateRange, f Filters) ([]*entity.Order, []*entity.Donation, error) {
	type ordersResult struct {
		orders []*entity.Order
		err    error
	}
	type donationsResult struct {
		donations []*entity.Donation
		err       error
	}
	ordersCh := make(chan ordersResult, 1)
	donationsCh := make(chan donationsResult, 1)

	go func() {
		list, err := uc.orders.List(ctx, repository.OrderFilter{
			Range:     window,
			CharityID: f.CharityID,
			VendorID:  f.VendorID,
			Category:  f.Category,
			Statuses:  financialOrderStatuses,
		})
		ordersCh <- ordersResult{list, err}
	}()
	go func() {
		ds, err := uc.donations.List(ctx, repository.DonationFilter{
			Range:     window,
			CharityID: f.CharityID,
			Statuses:  completedDonations,
		})
		donationsCh <- donationsResult{ds, err}
	}()

	o := <-ordersCh
	d := <-donationsCh
	if o.err != nil {
		return nil, nil, fmt.Errorf("pedidos: %w", o.err)
	}
	if d.err != nil {
		return nil, nil, fmt.Errorf("donaciones: %w", d.err)
	}
	return o.orders, d.donations, nil
}

func (uc *ReportUseCase) financial(ctx context.Context, window repository.DateRange, f Filters) (report.Payload, error) {
	orders, donations, err := uc.financialData(ctx, window, f)
	if err != nil {
		return nil, err
	}
	rep := report.AggregateFinancial(orders, donations)
	rep.MonthlyTrend = report.OrdersByPeriod(orders, report.ByMonth)

	if f.Compare {
		prevOrders, prevDonations, err := uc.financialData(ctx, PreviousWindow(window), f)
		if err != nil {
			return nil, fmt.Errorf("período anterior: %w", err)
		}
		rep.Compare = report.CompareFinancial(rep.Summary, report.AggregateFinancial(prevOrders, prevDonations).Summary)
	}
	return rep, nil
}

// ── Organizaciones ────────────────────────────────────────────────────────────

func (uc *ReportUseCase) charitiesReport(ctx context.Context, _ repository.DateRange, f Filters) (report.Payload, error) {
	type charitiesResult struct {
		charities []*entity.Charity
		err       error
	}
	type needsResult struct {
		needs []*entity.NeedAd
		err   error
	}
	type donationsResult struct {
		donations []*entity.Donation
		err       error
	}
	type ordersResult struct {
		orders []*entity.Order
		err    error
	}
	charitiesCh := make(chan charitiesResult, 1)
	needsCh := make(chan needsResult, 1)
	donationsCh := make(chan donationsResult, 1)
	ordersCh := make(chan ordersResult, 1)

	go func() {
		cs, err := uc.charities.List(ctx, repository.CharityFilter{Search: f.Search, VerifiedOnly: f.VerifiedOnly})
		charitiesCh <- charitiesResult{cs, err}
	}()
	go func() {
		ns, err := uc.needs.List(ctx, repository.NeedFilter{CharityID: f.CharityID})
		needsCh <- needsResult{ns, err}
	}()
	go func() {
		ds, err := uc.donations.List(ctx, repository.DonationFilter{CharityID: f.CharityID, Statuses: completedDonations})
		donationsCh <- donationsResult{ds, err}
	}()
	go func() {
		list, err := uc.orders.List(ctx, repository.OrderFilter{CharityID: f.CharityID, Statuses: impactOrderStatuses})
		ordersCh <- ordersResult{list, err}
	}()

	cs, ns, ds, ors := <-charitiesCh, <-needsCh, <-donationsCh, <-ordersCh
	switch {
	case cs.err != nil:
		return nil, fmt.Errorf("organizaciones: %w", cs.err)
	case ns.err != nil:
		return nil, fmt.Errorf("necesidades: %w", ns.err)
	case ds.err != nil:
		return nil, fmt.Errorf("donaciones: %w", ds.err)
	case ors.err != nil:
		return nil, fmt.Errorf("pedidos: %w", ors.err)
	}

	charities := cs.charities
	if f.CharityID != "" {
		charities = charities[:0:0]
		for _, c := range cs.charities {
			if c.ID == f.CharityID {
				charities = append(charities, c)
			}
		}
	}
	return report.AggregateCharities(charities, ns.needs, ds.donations, ors.orders, f.Search), nil
}
