package repository

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// RefreshTokenRepository persistencia de refresh tokens (solo hashes).
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entity.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)
	// FindByTokenHashForUpdate bloquea la fila (usar dentro de una transacción).
	FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)
	// Revoke marca revoked_at si el token sigue activo. replacedByJTI registra la rotación.
	Revoke(ctx context.Context, id int64, replacedByJTI *string) error
	RevokeFamily(ctx context.Context, familyID string) (int64, error)
	RevokeAllForUser(ctx context.Context, userID int64) (int64, error)
}
