package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// CategoryRequest entrada para crear o renombrar una categoría.
type CategoryRequest struct {
	Name string `json:"name"`
}

// Validate name obligatorio.
func (r *CategoryRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name should not be empty")
	}
	if len(r.Name) > 150 {
		return errors.New("name must be shorter than or equal to 150 characters")
	}
	return nil
}

// CategoryListQuery filtros del listado sin paginar.
type CategoryListQuery struct {
	SkipTake
	Search string
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewCategoryResponse mapea la entidad.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// NewCategoryResponses mapea una lista.
func NewCategoryResponses(list []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}
