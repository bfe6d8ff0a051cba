package usecase

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

// CartUseCase carrito del cliente. Los totales se calculan con precios vivos en cada lectura.
type CartUseCase struct {
	cart     repository.CartRepository
	products repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cart repository.CartRepository, products repository.ProductRepository) *CartUseCase {
	return &CartUseCase{cart: cart, products: products}
}

// GetCart líneas (más recientes primero) con totales.
func (uc *CartUseCase) GetCart(ctx context.Context, customerID int64) (*dto.CartResponse, error) {
	items, err := uc.cart.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := dto.NewCartResponse(items)
	return &out, nil
}

// AddItem suma quantity a la línea del producto (o la crea). La cantidad combinada
// no puede superar el stock actual.
func (uc *CartUseCase) AddItem(ctx context.Context, customerID, productID int64, quantity int) (*dto.CartItemResponse, error) {
	if quantity < 1 {
		return nil, domain.BadRequest("quantity must not be less than 1")
	}
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.IsDeleted() {
		return nil, domain.NotFound("Product with ID %d not found", productID)
	}
	if !p.IsAvailable {
		return nil, domain.ErrProductUnavailable
	}
	existing, err := uc.cart.FindItem(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	// sin sumar primero: quantity + existing puede desbordar int
	if quantity > p.Stock || (existing != nil && existing.Quantity > p.Stock-quantity) {
		total := int64(quantity)
		if existing != nil && quantity <= p.Stock {
			total += int64(existing.Quantity)
		}
		return nil, domain.BadRequest("Insufficient stock. Available: %d, Requested total: %d", p.Stock, total)
	}
	it, err := uc.cart.AddItem(ctx, customerID, productID, quantity)
	if err != nil {
		return nil, err
	}
	out := dto.NewCartItemResponse(it)
	return &out, nil
}

// UpdateItem sobrescribe la cantidad de una línea existente.
func (uc *CartUseCase) UpdateItem(ctx context.Context, customerID, productID int64, quantity int) (*dto.CartItemResponse, error) {
	if quantity < 1 {
		return nil, domain.BadRequest("quantity must not be less than 1")
	}
	existing, err := uc.cart.FindItem(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrCartItemNotFound
	}
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.IsDeleted() {
		return nil, domain.NotFound("Product with ID %d not found", productID)
	}
	if quantity > p.Stock {
		return nil, domain.BadRequest("Insufficient stock. Available: %d, Requested: %d", p.Stock, quantity)
	}
	it, err := uc.cart.UpdateQuantity(ctx, customerID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrCartItemNotFound
	}
	out := dto.NewCartItemResponse(it)
	return &out, nil
}

// RemoveItem quita una línea existente.
func (uc *CartUseCase) RemoveItem(ctx context.Context, customerID, productID int64) (*dto.MessageResponse, error) {
	existing, err := uc.cart.FindItem(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrCartItemNotFound
	}
	if err := uc.cart.RemoveItem(ctx, customerID, productID); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Item removed from cart"}, nil
}

// ClearCart vacía el carrito; no falla si ya estaba vacío.
func (uc *CartUseCase) ClearCart(ctx context.Context, customerID int64) (*dto.MessageResponse, error) {
	if err := uc.cart.Clear(ctx, customerID); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Cart cleared"}, nil
}
