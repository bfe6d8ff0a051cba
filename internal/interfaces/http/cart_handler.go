package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// CartHandler carrito del cliente autenticado (requiere RequireCustomer).
type CartHandler struct {
	uc  *usecase.CartUseCase
	log *logger.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *usecase.CartUseCase, log *logger.Logger) *CartHandler {
	return &CartHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Ver carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetCart(c.UserContext(), GetCustomerID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito, suma la cantidad.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "productId, quantity"
// @Success      201   {object}  dto.CartItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.AddItem(c.UserContext(), GetCustomerID(c), in.ProductID, in.Qty())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  int                        true  "ID del producto"
// @Param        body       body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200        {object}  dto.CartItemResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [patch]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return validationError(c, err.Error())
	}
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.UpdateItem(c.UserContext(), GetCustomerID(c), productID, in.Quantity)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar producto del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200        {object}  dto.MessageResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := paramID(c, "productId")
	if err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.RemoveItem(c.UserContext(), GetCustomerID(c), productID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.ClearCart(c.UserContext(), GetCustomerID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
