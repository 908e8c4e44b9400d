package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ledger-recon/internal/domain"
	"github.com/jhoicas/ledger-recon/internal/domain/entity"
	"github.com/jhoicas/ledger-recon/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo lectura de products y product_variations.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productStockColumns = `
	id, company_id, sku, name, COALESCE(current_stock, 0), COALESCE(min_stock, 0),
	COALESCE(cost_price, 0), COALESCE(has_variations, false)`

// GetStock producto con su stock de dashboard.
func (r *ProductRepo) GetStock(ctx context.Context, companyID, productID string) (*entity.ProductStock, error) {
	query := `SELECT ` + productStockColumns + ` FROM products WHERE id = $1 AND company_id = $2`
	p, err := scanProductStock(r.q.QueryRow(ctx, query, productID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product stock: %w", err)
	}
	return p, nil
}

// ListStock productos de la empresa (o de todas si companyID está vacío), ordenados por nombre.
func (r *ProductRepo) ListStock(ctx context.Context, companyID string) ([]entity.ProductStock, error) {
	query := `SELECT ` + productStockColumns + `
		FROM products
		WHERE ($1 = '' OR company_id::text = $1)
		ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.ProductStock
	for rows.Next() {
		p, err := scanProductStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// ListVariations variantes activas de los productos de la empresa.
func (r *ProductRepo) ListVariations(ctx context.Context, companyID string) ([]entity.ProductVariation, error) {
	query := `
		SELECT v.id, v.product_id, v.sku
		FROM product_variations v
		JOIN products p ON p.id = v.product_id
		WHERE COALESCE(v.is_active, true) AND ($1 = '' OR p.company_id::text = $1)
		ORDER BY v.product_id, v.sku`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list variations: %w", err)
	}
	defer rows.Close()

	var list []entity.ProductVariation
	for rows.Next() {
		var v entity.ProductVariation
		var sku *string
		if err := rows.Scan(&v.ID, &v.ProductID, &sku); err != nil {
			return nil, fmt.Errorf("scan variation: %w", err)
		}
		v.SKU = deref(sku)
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list variations: %w", err)
	}
	return list, nil
}

func scanProductStock(row pgx.Row) (*entity.ProductStock, error) {
	var p entity.ProductStock
	var sku *string
	if err := row.Scan(
		&p.ProductID, &p.CompanyID, &sku, &p.Name, &p.CurrentStock, &p.MinStock, &p.CostPrice, &p.HasVariations,
	); err != nil {
		return nil, err
	}
	p.SKU = deref(sku)
	return &p, nil
}
