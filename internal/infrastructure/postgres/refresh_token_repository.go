package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.RefreshTokenRepository = (*RefreshTokenRepo)(nil)

// RefreshTokenRepo persistencia de refresh tokens. Nunca guarda el token en claro.
type RefreshTokenRepo struct {
	q Querier
}

// NewRefreshTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRefreshTokenRepository(q Querier) *RefreshTokenRepo {
	return &RefreshTokenRepo{q: q}
}

const refreshTokenColumns = `id, user_id, jti, family_id, token_hash, expires_at, revoked_at, replaced_by_jti, ip, user_agent, created_at`

// Create persiste el token y completa ID y CreatedAt.
func (r *RefreshTokenRepo) Create(ctx context.Context, t *entity.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, jti, family_id, token_hash, expires_at, ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		t.UserID, t.JTI, t.FamilyID, t.TokenHash, t.ExpiresAt, t.IP, t.UserAgent,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// FindByTokenHash busca por hash (sha256 hex).
func (r *RefreshTokenRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	return r.findOne(ctx, `SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
}

// FindByTokenHashForUpdate igual que FindByTokenHash pero bloquea la fila hasta el fin de la tx.
func (r *RefreshTokenRepo) FindByTokenHashForUpdate(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	return r.findOne(ctx, `SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE token_hash = $1 FOR UPDATE`, tokenHash)
}

func (r *RefreshTokenRepo) findOne(ctx context.Context, query string, arg any) (*entity.RefreshToken, error) {
	var t entity.RefreshToken
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.UserID, &t.JTI, &t.FamilyID, &t.TokenHash, &t.ExpiresAt, &t.RevokedAt,
		&t.ReplacedByJTI, &t.IP, &t.UserAgent, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

// Revoke marca el token como revocado si aún no lo estaba.
func (r *RefreshTokenRepo) Revoke(ctx context.Context, id int64, replacedByJTI *string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now(), replaced_by_jti = COALESCE($2, replaced_by_jti)
		 WHERE id = $1 AND revoked_at IS NULL`,
		id, replacedByJTI,
	)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeFamily revoca todos los tokens activos de la familia. Devuelve cuántos revocó.
func (r *RefreshTokenRepo) RevokeFamily(ctx context.Context, familyID string) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now() WHERE family_id = $1 AND revoked_at IS NULL`,
		familyID,
	)
	if err != nil {
		return 0, fmt.Errorf("revoke refresh token family: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// RevokeAllForUser revoca todos los tokens activos del usuario.
func (r *RefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID int64) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("revoke user refresh tokens: %w", err)
	}
	return cmd.RowsAffected(), nil
}
