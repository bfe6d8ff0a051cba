package usecase

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// ProductUseCase casos de uso del catálogo. El borrado es lógico (deleted_at).
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create crea un producto. Por defecto disponible y con stock 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		IsAvailable: true,
		CategoryID:  in.CategoryID,
	}
	if in.IsAvailable != nil {
		product.IsAvailable = *in.IsAvailable
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// FindOne obtiene un producto no borrado.
func (uc *ProductUseCase) FindOne(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// Update aplica los campos presentes. Falla con NotFound si el producto no existe o fue borrado.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		p.CategoryID = in.CategoryID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Image != nil {
		p.Image = in.Image
	}
	if in.IsAvailable != nil {
		p.IsAvailable = *in.IsAvailable
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// Delete borrado lógico: marca deleted_at y desactiva el producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) (*dto.DeletedResponse[dto.ProductResponse], error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	p, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// borrado en paralelo entre la lectura y la actualización
		return nil, domain.NotFound("Product with ID %d not found", id)
	}
	return &dto.DeletedResponse[dto.ProductResponse]{
		Message: "Product deleted successfully",
		Entity:  dto.NewProductResponse(p),
	}, nil
}

// List listado sin paginar; search filtra solo por nombre.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) ([]dto.ProductResponse, error) {
	filter := productFilter(q.ProductFilterQuery)
	filter.ListQuery = q.SkipTake.ListQuery()
	filter.Search = q.Search
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(list), nil
}

// Paginate listado paginado; searchValue busca en nombre o descripción.
func (uc *ProductUseCase) Paginate(ctx context.Context, q dto.ProductPageQuery) (*dto.Page[dto.ProductResponse], error) {
	filter := productFilter(q.ProductFilterQuery)
	filter.ListQuery = q.PageQuery.ListQuery()
	filter.Search = q.SearchValue
	filter.SearchInDescription = true

	var (
		list  []*entity.Product
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
	page := dto.NewPage(q.PageQuery, total, dto.NewProductResponses(list))
	return &page, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.IsDeleted() {
		return nil, domain.NotFound("Product with ID %d not found", id)
	}
	return p, nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("Category with ID %d not found", *id)
	}
	return nil
}

func productFilter(f dto.ProductFilterQuery) repository.ProductFilter {
	return repository.ProductFilter{
		CategoryID:  f.CategoryID,
		IsAvailable: f.IsAvailable,
		MinPrice:    f.MinPrice,
		MaxPrice:    f.MaxPrice,
	}
}
