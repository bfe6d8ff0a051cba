package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

func TestProduct_State(t *testing.T) {
	now := time.Now()

	p := entity.Product{IsAvailable: true}
	assert.Equal(t, entity.ProductActive, p.State())
	assert.True(t, p.CanBeSold())

	p.IsAvailable = false
	assert.Equal(t, entity.ProductUnavailable, p.State())
	assert.False(t, p.CanBeSold())

	// Un producto borrado es DELETED aunque IsAvailable quede en true.
	p = entity.Product{IsAvailable: true, DeletedAt: &now}
	assert.Equal(t, entity.ProductDeleted, p.State())
	assert.True(t, p.IsDeleted())
}

func TestRefreshToken_Estados(t *testing.T) {
	now := time.Now()
	tok := entity.RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, tok.IsActive(now))

	assert.False(t, tok.IsActive(now.Add(2*time.Hour)), "vencido")

	tok.RevokedAt = &now
	assert.False(t, tok.IsActive(now), "revocado")
}
