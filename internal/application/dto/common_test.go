package dto_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
)

func TestPageQuery_ValoresPorDefecto(t *testing.T) {
	q := dto.PageQuery{}

	assert.Equal(t, 10, q.Limit())
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, 1, q.Page())
	assert.True(t, q.Desc())
}

func TestPageQuery_Offset(t *testing.T) {
	tests := []struct {
		name   string
		q      dto.PageQuery
		offset int
	}{
		{"primera página", dto.PageQuery{CurrentPage: 1, PageSize: 5}, 0},
		{"tercera página", dto.PageQuery{CurrentPage: 3, PageSize: 5}, 10},
		{"página negativa", dto.PageQuery{CurrentPage: -2, PageSize: 5}, 0},
		{"sin pageSize", dto.PageQuery{CurrentPage: 2}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.q.Offset())
		})
	}
}

func TestPageQuery_OrderByMode(t *testing.T) {
	assert.False(t, dto.PageQuery{OrderByMode: "ASC"}.Desc())
	assert.True(t, dto.PageQuery{OrderByMode: "desc"}.Desc())
	assert.True(t, dto.PageQuery{OrderByMode: "asc"}.ValidMode())
	assert.False(t, dto.PageQuery{OrderByMode: "sideways"}.ValidMode())
}

func TestNewPage_TotalPagesRedondeaHaciaArriba(t *testing.T) {
	p := dto.NewPage(dto.PageQuery{CurrentPage: 2, PageSize: 10}, 21, []int{1, 2})

	assert.Equal(t, 21, p.TotalItems)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 2, p.CurrentPage)
}

func TestNewPage_PaginaFueraDeRango(t *testing.T) {
	p := dto.NewPage[int](dto.PageQuery{CurrentPage: 9, PageSize: 10}, 15, nil)

	assert.NotNil(t, p.Data)
	assert.Empty(t, p.Data)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 9, p.CurrentPage)
}

func TestNewPage_PageSizeEnormeNoDesborda(t *testing.T) {
	p := dto.NewPage[int](dto.PageQuery{PageSize: math.MaxInt}, 3, nil)
	assert.Equal(t, 1, p.TotalPages)

	p = dto.NewPage[int](dto.PageQuery{PageSize: math.MaxInt}, 0, nil)
	assert.Equal(t, 0, p.TotalPages)

	p = dto.NewPage[int](dto.PageQuery{PageSize: 3}, math.MaxInt, nil)
	assert.Equal(t, math.MaxInt/3+1, p.TotalPages)
}

func TestPageQuery_OffsetSaturaSinDesbordar(t *testing.T) {
	q := dto.PageQuery{CurrentPage: math.MaxInt / 5, PageSize: 10}
	assert.Equal(t, math.MaxInt, q.Offset())

	q = dto.PageQuery{CurrentPage: 2, PageSize: math.MaxInt}
	assert.Equal(t, math.MaxInt, q.Offset())

	q = dto.PageQuery{CurrentPage: math.MaxInt, PageSize: 1}
	assert.Equal(t, math.MaxInt-1, q.Offset())
}

func TestSkipTake_ListQuery(t *testing.T) {
	q := dto.SkipTake{Skip: 5, Take: 10}.ListQuery()
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 5, q.Offset)
	assert.True(t, q.Desc)

	all := dto.SkipTake{}.ListQuery()
	assert.Zero(t, all.Limit)
	assert.Zero(t, all.Offset)

	skipOnly := dto.SkipTake{Skip: 3}.ListQuery()
	assert.Zero(t, skipOnly.Limit)
	assert.Equal(t, 3, skipOnly.Offset)
}
