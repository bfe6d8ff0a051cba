package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ecommerce-api/internal/domain"
)

func TestError_CategoriaAccesibleConErrorsIs(t *testing.T) {
	err := domain.NotFound("Product with ID %d not found", 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Product with ID 7 not found", err.Error())
}

func TestError_SentinelsSobreviveWrap(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", domain.ErrEmailAlreadyExists)

	assert.ErrorIs(t, wrapped, domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, wrapped, domain.ErrConflict)
	assert.Equal(t, domain.ErrConflict, domain.KindOf(wrapped))
	assert.Equal(t, "Email already registered", domain.MessageOf(wrapped))
}

func TestKindOf_ErrorNoDeDominio(t *testing.T) {
	assert.Nil(t, domain.KindOf(errors.New("connection reset")))
	assert.Empty(t, domain.MessageOf(errors.New("connection reset")))
}
