package reporting

import (
	"context"

	"github.com/jhoicas/charity-reports-api/internal/domain/entity"
	"github.com/jhoicas/charity-reports-api/internal/domain/report"
)

// enricher resuelve nombres de productos, organizaciones y necesidades por ID.
// Es best-effort: un error o una entidad inexistente deja el campo como estaba.
// Memoriza por petición para no repetir consultas.
type enricher struct {
	ctx       context.Context
	uc        *ReportUseCase
	products  map[string]*entity.Product
	charities map[string]*entity.Charity
	needs     map[string]*entity.NeedAd
}

func (uc *ReportUseCase) newEnricher(ctx context.Context) *enricher {
	return &enricher{
		ctx:       ctx,
		uc:        uc,
		products:  make(map[string]*entity.Product),
		charities: make(map[string]*entity.Charity),
		needs:     make(map[string]*entity.NeedAd),
	}
}

func (e *enricher) product(p *report.ProductSales) {
	if e.uc.products == nil || p.ProductID == "" {
		return
	}
	prod, seen := e.products[p.ProductID]
	if !seen {
		var err error
		prod, err = e.uc.products.GetByID(e.ctx, p.ProductID)
		if err != nil {
			e.uc.log.Warn().Err(err).Str("product_id", p.ProductID).Msg("enriquecer producto")
		}
		e.products[p.ProductID] = prod
	}
	if prod == nil {
		return
	}
	p.ProductName = prod.Name
	p.Category = prod.Category
	p.VendorName = prod.VendorName
}

func (e *enricher) charityName(id string) string {
	if e.uc.charities == nil || id == "" {
		return ""
	}
	c, seen := e.charities[id]
	if !seen {
		var err error
		c, err = e.uc.charities.GetByID(e.ctx, id)
		if err != nil {
			e.uc.log.Warn().Err(err).Str("charity_id", id).Msg("enriquecer organización")
		}
		e.charities[id] = c
	}
	if c == nil {
		return ""
	}
	return c.Name
}

func (e *enricher) needTitle(id string) string {
	if e.uc.needs == nil || id == "" {
		return ""
	}
	n, seen := e.needs[id]
	if !seen {
		var err error
		n, err = e.uc.needs.GetByID(e.ctx, id)
		if err != nil {
			e.uc.log.Warn().Err(err).Str("need_id", id).Msg("enriquecer necesidad")
		}
		e.needs[id] = n
	}
	if n == nil {
		return ""
	}
	return n.Title
}
