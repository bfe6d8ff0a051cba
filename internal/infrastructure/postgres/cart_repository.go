package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo líneas de carrito sobre PostgreSQL (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartItemSelect = `
	SELECT ci.id, ci.customer_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
	       p.name, p.price, p.image, p.stock, p.is_available
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id`

func scanCartItem(row pgx.Row) (*entity.CartItem, error) {
	it := entity.CartItem{Product: &entity.CartProduct{}}
	err := row.Scan(&it.ID, &it.CustomerID, &it.ProductID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt,
		&it.Product.Name, &it.Product.Price, &it.Product.Image, &it.Product.Stock, &it.Product.IsAvailable)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListByCustomer líneas del carrito con la foto del producto, más recientes primero.
func (r *CartRepo) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.CartItem, error) {
	rows, err := r.q.Query(ctx, cartItemSelect+` WHERE ci.customer_id = $1 ORDER BY ci.created_at DESC, ci.id DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	items := make([]*entity.CartItem, 0)
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// FindItem línea del producto en el carrito, o nil.
func (r *CartRepo) FindItem(ctx context.Context, customerID, productID int64) (*entity.CartItem, error) {
	it, err := scanCartItem(r.q.QueryRow(ctx,
		cartItemSelect+` WHERE ci.customer_id = $1 AND ci.product_id = $2`, customerID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return it, nil
}

// AddItem crea la línea o suma quantity a la existente.
func (r *CartRepo) AddItem(ctx context.Context, customerID, productID int64, quantity int) (*entity.CartItem, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO cart_items (customer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`,
		customerID, productID, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert cart item: %w", err)
	}
	return r.FindItem(ctx, customerID, productID)
}

// UpdateQuantity sobrescribe la cantidad. nil, nil si la línea no existe.
func (r *CartRepo) UpdateQuantity(ctx context.Context, customerID, productID int64, quantity int) (*entity.CartItem, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, updated_at = now() WHERE customer_id = $1 AND product_id = $2`,
		customerID, productID, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, nil
	}
	return r.FindItem(ctx, customerID, productID)
}

// RemoveItem borra la línea (no falla si no existe).
func (r *CartRepo) RemoveItem(ctx context.Context, customerID, productID int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1 AND product_id = $2`, customerID, productID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// Clear vacía el carrito del cliente.
func (r *CartRepo) Clear(ctx context.Context, customerID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
