package entity

import "time"

// RefreshToken registro de un refresh token opaco. Solo se guarda el hash (sha256 hex).
// FamilyID agrupa las rotaciones sucesivas de un mismo login.
type RefreshToken struct {
	ID            int64
	UserID        int64
	JTI           string
	FamilyID      string
	TokenHash     string
	ExpiresAt     time.Time
	RevokedAt     *time.Time
	ReplacedByJTI *string
	IP            *string
	UserAgent     *string
	CreatedAt     time.Time
}

// IsRevoked indica si el token fue revocado (logout o rotación).
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired indica si el token venció respecto a now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsActive un token sirve para refresh solo si no está revocado ni vencido.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}

// WasRotated indica si el token fue reemplazado por otro de la misma familia.
func (t *RefreshToken) WasRotated() bool {
	return t.ReplacedByJTI != nil
}
