package dto

import (
	"math"
	"strings"

	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

const defaultPageSize = 10

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje (logout, clear cart...).
type MessageResponse struct {
	Message string `json:"message"`
}

// DeletedResponse respuesta de borrado: mensaje + entidad afectada.
type DeletedResponse[T any] struct {
	Message string `json:"message"`
	Entity  T      `json:"entity"`
}

// PageQuery parámetros de paginación por página (1-indexada).
type PageQuery struct {
	SearchValue string `query:"searchValue"`
	CurrentPage int    `query:"currentPage"`
	PageSize    int    `query:"pageSize"`
	OrderBy     string `query:"orderBy"`
	OrderByMode string `query:"orderByMode"` // asc | desc
}

// Limit tamaño de página; 10 si no se indicó.
func (q PageQuery) Limit() int {
	if q.PageSize > 0 {
		return q.PageSize
	}
	return defaultPageSize
}

// Offset filas a saltar; páginas <= 0 equivalen a la primera. Satura en math.MaxInt
// en vez de desbordar (la página queda vacía).
func (q PageQuery) Offset() int {
	if q.CurrentPage <= 1 {
		return 0
	}
	limit := q.Limit()
	if q.CurrentPage-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (q.CurrentPage - 1) * limit
}

// Page página efectiva (>= 1).
func (q PageQuery) Page() int {
	if q.CurrentPage > 0 {
		return q.CurrentPage
	}
	return 1
}

// Desc dirección de orden. Por defecto descendente.
func (q PageQuery) Desc() bool {
	return !strings.EqualFold(q.OrderByMode, "asc")
}

// ValidMode indica si orderByMode es vacío, asc o desc.
func (q PageQuery) ValidMode() bool {
	switch strings.ToLower(q.OrderByMode) {
	case "", "asc", "desc":
		return true
	}
	return false
}

// ListQuery traduce a parámetros de repositorio. OrderBy se pasa tal cual;
// el adaptador lo valida contra su lista de columnas permitidas.
func (q PageQuery) ListQuery() repository.ListQuery {
	return repository.ListQuery{
		OrderBy: q.OrderBy,
		Desc:    q.Desc(),
		Limit:   q.Limit(),
		Offset:  q.Offset(),
	}
}

// Page respuesta paginada.
type Page[T any] struct {
	TotalItems  int `json:"totalItems"`
	Data        []T `json:"data"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// NewPage arma la respuesta: totalPages = ceil(totalItems / limit).
func NewPage[T any](q PageQuery, totalItems int, data []T) Page[T] {
	if data == nil {
		data = make([]T, 0)
	}
	limit := q.Limit()
	return Page[T]{
		TotalItems:  totalItems,
		Data:        data,
		TotalPages:  totalPages(totalItems, limit),
		CurrentPage: q.Page(),
	}
}

func totalPages(totalItems, limit int) int {
	n := totalItems / limit
	if totalItems%limit != 0 {
		n++
	}
	return n
}

// SkipTake paginación por desplazamiento (listados sin página).
type SkipTake struct {
	Skip int `query:"skip"`
	Take int `query:"take"`
}

// ListQuery sin orden explícito: created_at DESC. Take <= 0 significa sin límite;
// Skip se aplica aunque no venga Take.
func (s SkipTake) ListQuery() repository.ListQuery {
	q := repository.ListQuery{OrderBy: "createdAt", Desc: true}
	if s.Take > 0 {
		q.Limit = s.Take
	}
	if s.Skip > 0 {
		q.Offset = s.Skip
	}
	return q
}
