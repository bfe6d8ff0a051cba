package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/ordering"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// OrderHandler pedidos: checkout, consultas, cancelación y cambios de estado.
type OrderHandler struct {
	uc  *ordering.OrderUseCase
	log *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ordering.OrderUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

func caller(c *fiber.Ctx) ordering.Caller {
	return ordering.Caller{CustomerID: GetCustomerID(c), Role: GetRole(c)}
}

// Create godoc
// @Summary      Crear pedido desde el carrito
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "shippingAddress, notes"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.CreateOrder(c.UserContext(), GetCustomerID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FindMy godoc
// @Summary      Mis pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        currentPage  query  int     false  "Página (1..n)"
// @Param        pageSize     query  int     false  "Tamaño de página"  default(10)
// @Param        orderBy      query  string  false  "id | status | totalAmount | createdAt | updatedAt"
// @Param        orderByMode  query  string  false  "asc | desc"
// @Success      200          {object}  dto.Page[dto.OrderResponse]
// @Router       /api/orders/my [get]
func (h *OrderHandler) FindMy(c *fiber.Ctx) error {
	q, err := pageQuery(c)
	if err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.FindMyOrders(c.UserContext(), GetCustomerID(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Paginate godoc
// @Summary      Todos los pedidos (ADMIN)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "PENDING | CONFIRMED | PROCESSING | SHIPPED | DELIVERED | CANCELLED"
// @Param        currentPage  query  int     false  "Página (1..n)"
// @Param        pageSize     query  int     false  "Tamaño de página"  default(10)
// @Param        orderBy      query  string  false  "Campo de orden"
// @Param        orderByMode  query  string  false  "asc | desc"
// @Success      200          {object}  dto.Page[dto.OrderResponse]
// @Failure      403          {object}  dto.ErrorResponse
// @Router       /api/orders/pagination [get]
func (h *OrderHandler) Paginate(c *fiber.Ctx) error {
	q, err := pageQuery(c)
	if err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.FindAllPaginated(c.UserContext(), dto.OrderPageQuery{PageQuery: q, Status: c.Query("status")})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Description  Solo el cliente dueño o un ADMIN.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.FindOne(c.UserContext(), id, caller(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del pedido
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return validationError(c, err.Error())
	}
	pdf, filename, err := h.uc.Receipt(c.UserContext(), id, caller(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido (ADMIN)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return validationError(c, err.Error())
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateOrderStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar pedido propio
// @Description  Solo pedidos PENDING; repone el stock.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [patch]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.CancelOrder(c.UserContext(), id, GetCustomerID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
