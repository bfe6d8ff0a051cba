package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User, Profile y Customer (DIP).
// Las búsquedas excluyen usuarios con soft delete y devuelven nil, nil si no hay resultado.
type UserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	CreateProfile(ctx context.Context, profile *entity.Profile) error
	CreateCustomer(ctx context.Context, customer *entity.Customer) error
	// FindAuthByEmail proyección mínima para login: id, email, hash y rol.
	FindAuthByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByIDWithRelations hidrata Profile y Customer.
	FindByIDWithRelations(ctx context.Context, id int64) (*entity.User, error)
	FindCustomerByUserID(ctx context.Context, userID int64) (*entity.Customer, error)
}
