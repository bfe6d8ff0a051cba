package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP del catálogo. Lectura pública, escritura ADMIN.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.FindOne(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        search       query  string   false  "Filtro por nombre"
// @Param        categoryId   query  int      false  "Categoría"
// @Param        isAvailable  query  bool     false  "Disponibilidad"
// @Param        minPrice     query  number   false  "Precio mínimo"
// @Param        maxPrice     query  number   false  "Precio máximo"
// @Param        skip         query  int      false  "Desplazamiento"
// @Param        take         query  int      false  "Cantidad"
// @Success      200          {array}   dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	st, err := skipTake(c)
	if err != nil {
		return validationError(c, err.Error())
	}
	f, err := productFilterQuery(c)
	if err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.List(c.UserContext(), dto.ProductListQuery{
		SkipTake:           st,
		ProductFilterQuery: f,
		Search:             c.Query("search"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Paginate godoc
// @Summary      Productos paginados
// @Tags         products
// @Produce      json
// @Param        searchValue  query  string  false  "Busca en nombre y descripción"
// @Param        currentPage  query  int     false  "Página (1..n)"
// @Param        pageSize     query  int     false  "Tamaño de página"  default(10)
// @Param        orderBy      query  string  false  "id | name | price | stock | createdAt | updatedAt"
// @Param        orderByMode  query  string  false  "asc | desc"
// @Param        categoryId   query  int     false  "Categoría"
// @Param        isAvailable  query  bool    false  "Disponibilidad"
// @Param        minPrice     query  number  false  "Precio mínimo"
// @Param        maxPrice     query  number  false  "Precio máximo"
// @Success      200          {object}  dto.Page[dto.ProductResponse]
// @Router       /api/products/pagination [get]
func (h *ProductHandler) Paginate(c *fiber.Ctx) error {
	q, err := pageQuery(c)
	if err != nil {
		return validationError(c, err.Error())
	}
	f, err := productFilterQuery(c)
	if err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.Paginate(c.UserContext(), dto.ProductPageQuery{PageQuery: q, ProductFilterQuery: f})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return validationError(c, err.Error())
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar producto (soft delete)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.DeletedResponse[dto.ProductResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return validationError(c, err.Error())
	}
	out, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
