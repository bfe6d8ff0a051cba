package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productOrderColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

const productColumns = `id, name, description, price, image, is_available, stock, deleted_at, category_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.IsAvailable, &p.Stock,
		&p.DeletedAt, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto y completa ID y timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (name, description, price, image, is_available, stock, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.Image, p.IsAvailable, p.Stock, p.CategoryID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) && p.CategoryID != nil {
			return domain.NotFound("Category with ID %d not found", *p.CategoryID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, incluso si fue borrado.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate lee y bloquea los productos dados. El orden por id evita interbloqueos
// entre pedidos concurrentes que comparten productos.
func (r *ProductRepo) GetForUpdate(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("get products for update: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables y refresca updated_at.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, image = $5, is_available = $6,
		       stock = $7, category_id = $8, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Image, p.IsAvailable, p.Stock, p.CategoryID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound("Product with ID %d not found", p.ID)
		}
		if isForeignKeyViolation(err) && p.CategoryID != nil {
			return domain.NotFound("Category with ID %d not found", *p.CategoryID)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SoftDelete marca deleted_at y desactiva el producto. nil, nil si no existe o ya estaba borrado.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `
		UPDATE products SET deleted_at = now(), is_available = FALSE, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+productColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("soft delete product: %w", err)
	}
	return p, nil
}

// AdjustStock suma delta al stock. El CHECK (stock >= 0) rechaza saldos negativos.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID int64, delta int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		productID, delta,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("adjust product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Product with ID %d not found", productID)
	}
	return nil
}

// List lista productos no borrados con filtros, orden y paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	where, args := productWhere(f)
	query := `SELECT ` + productColumns + ` FROM products` + where +
		orderClause(f.ListQuery, productOrderColumns, "")
	limit, args := limitClause(f.ListQuery, args)
	rows, err := r.q.Query(ctx, query+limit, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count total de productos que cumplen el filtro (ignora Limit/Offset).
func (r *ProductRepo) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	where, args := productWhere(f)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func productWhere(f repository.ProductFilter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Search != "" {
		p := next(containsPattern(f.Search))
		if f.SearchInDescription {
			conds = append(conds, "(name ILIKE "+p+` ESCAPE '\' OR description ILIKE `+p+` ESCAPE '\')`)
		} else {
			conds = append(conds, "name ILIKE "+p+` ESCAPE '\'`)
		}
	}
	if f.CategoryID != nil {
		conds = append(conds, "category_id = "+next(*f.CategoryID))
	}
	if f.IsAvailable != nil {
		conds = append(conds, "is_available = "+next(*f.IsAvailable))
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= "+next(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= "+next(*f.MaxPrice))
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
