package usecase

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// CategoryUseCase casos de uso CRUD para categorías. El borrado es físico.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c := &entity.Category{Name: in.Name}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// FindOne obtiene una categoría o NotFound.
func (uc *CategoryUseCase) FindOne(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// Update renombra la categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = in.Name
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// Delete borra la categoría y devuelve la entidad eliminada.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) (*dto.DeletedResponse[dto.CategoryResponse], error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DeletedResponse[dto.CategoryResponse]{
		Message: "Category deleted successfully",
		Entity:  dto.NewCategoryResponse(c),
	}, nil
}

// List listado sin paginar, más recientes primero.
func (uc *CategoryUseCase) List(ctx context.Context, q dto.CategoryListQuery) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, repository.CategoryFilter{ListQuery: q.SkipTake.ListQuery(), Search: q.Search})
	if err != nil {
		return nil, err
	}
	return dto.NewCategoryResponses(list), nil
}

// Paginate listado paginado; la página y el total se consultan en paralelo.
func (uc *CategoryUseCase) Paginate(ctx context.Context, q dto.PageQuery) (*dto.Page[dto.CategoryResponse], error) {
	filter := repository.CategoryFilter{ListQuery: q.ListQuery(), Search: q.SearchValue}
	var (
		list  []*entity.Category
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		list, err = uc.repo.List(gctx, filter)
		return err
	})
	g.Go(func() (err error) {
		total, err = uc.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	page := dto.NewPage(q, total, dto.NewCategoryResponses(list))
	return &page, nil
}

func (uc *CategoryUseCase) get(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("Category with ID %d not found", id)
	}
	return c, nil
}
