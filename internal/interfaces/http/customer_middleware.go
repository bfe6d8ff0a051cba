package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
)

// customerResolver es el contrato mínimo para pasar de usuario a cliente.
// Lo implementa el UserRepository.
type customerResolver interface {
	FindCustomerByUserID(ctx context.Context, userID int64) (*entity.Customer, error)
}

// RequireCustomer resuelve el cliente del usuario autenticado y lo guarda en LocalCustomerID.
// Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 "Customer profile not found" → el usuario no tiene perfil de cliente.
//   - 500 → fallo de infraestructura al consultar la DB.
func RequireCustomer(resolver customerResolver, log *logger.Logger) fiber.Handler {
	return resolveCustomer(resolver, log, true)
}

// OptionalCustomer igual que RequireCustomer pero sin exigir perfil (LocalCustomerID queda en 0).
// Para rutas donde ADMIN accede sin ser cliente.
func OptionalCustomer(resolver customerResolver, log *logger.Logger) fiber.Handler {
	return resolveCustomer(resolver, log, false)
}

func resolveCustomer(resolver customerResolver, log *logger.Logger, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		customer, err := resolver.FindCustomerByUserID(c.UserContext(), GetUserID(c))
		if err != nil {
			return writeError(c, log, err)
		}
		if customer == nil {
			if required {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code:    CodeUnauthorized,
					Message: domain.ErrCustomerNotFound.Message,
				})
			}
			return c.Next()
		}
		c.Locals(LocalCustomerID, customer.ID)
		return c.Next()
	}
}

// GetCustomerID devuelve el CustomerID resuelto (0 si no hay).
func GetCustomerID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalCustomerID).(int64)
	return id
}
