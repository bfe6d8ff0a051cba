package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

func TestContainsPattern_EscapaComodines(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"taza", "%taza%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`c:\x`, `%c:\\x%`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsPattern(tt.term), tt.term)
	}
}

func TestLimitClause(t *testing.T) {
	sql, args := limitClause(repository.ListQuery{Limit: 10, Offset: 20}, []any{"x"})
	assert.Equal(t, " LIMIT $2 OFFSET $3", sql)
	assert.Equal(t, []any{"x", 10, 20}, args)

	sql, args = limitClause(repository.ListQuery{Offset: 5}, nil)
	assert.Equal(t, " OFFSET $1", sql)
	assert.Equal(t, []any{5}, args)

	sql, args = limitClause(repository.ListQuery{}, nil)
	assert.Empty(t, sql)
	assert.Empty(t, args)
}
