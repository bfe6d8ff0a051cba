package auth

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos de usuarios y refresh tokens.
// Si fn devuelve error se hace Rollback.
type TxRunner interface {
	RunAuth(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		tokenRepo repository.RefreshTokenRepository,
	) error) error
}

// ClientMeta datos del cliente HTTP que se guardan con el refresh token.
type ClientMeta struct {
	IP        string
	UserAgent string
}
