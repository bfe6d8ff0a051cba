package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/application/usecase"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/infrastructure/memory"
)

func newCatalog() (*usecase.ProductUseCase, *usecase.CategoryUseCase) {
	store := memory.NewStore()
	cats := memory.NewCategoryRepository(store)
	return usecase.NewProductUseCase(memory.NewProductRepository(store), cats), usecase.NewCategoryUseCase(cats)
}

func ptr[T any](v T) *T { return &v }

func createProduct(t *testing.T, uc *usecase.ProductUseCase, name, price string, stock int) *dto.ProductResponse {
	t.Helper()
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name: name, Price: decimal.RequireFromString(price), Stock: ptr(stock),
	})
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_ValoresPorDefecto(t *testing.T) {
	products, _ := newCatalog()

	p, err := products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Taza", Price: decimal.RequireFromString("12.50"),
	})

	require.NoError(t, err)
	assert.True(t, p.IsAvailable)
	assert.Zero(t, p.Stock)
	assert.Nil(t, p.CategoryID)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	products, _ := newCatalog()

	_, err := products.Create(context.Background(), dto.CreateProductRequest{
		Name: "Taza", Price: decimal.NewFromInt(1), CategoryID: ptr(int64(77)),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Category with ID 77 not found", err.Error())
}

func TestProductDelete_EsLogicoYOcultaElProducto(t *testing.T) {
	products, _ := newCatalog()
	ctx := context.Background()
	p := createProduct(t, products, "Taza", "10", 3)

	res, err := products.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Product deleted successfully", res.Message)
	assert.False(t, res.Entity.IsAvailable)
	assert.NotNil(t, res.Entity.DeletedAt)

	_, err = products.FindOne(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: ptr("Otra")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = products.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := products.List(ctx, dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductUpdate_Parcial(t *testing.T) {
	products, _ := newCatalog()
	p := createProduct(t, products, "Taza", "10", 3)

	out, err := products.Update(context.Background(), p.ID, dto.UpdateProductRequest{Price: ptr(decimal.NewFromInt(15))})

	require.NoError(t, err)
	assert.Equal(t, "Taza", out.Name)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 3, out.Stock)
}

func TestProductList_Filtros(t *testing.T) {
	products, _ := newCatalog()
	ctx := context.Background()
	createProduct(t, products, "Taza roja", "5", 1)
	createProduct(t, products, "Taza azul", "15", 1)
	createProduct(t, products, "Plato", "25", 1)

	list, err := products.List(ctx, dto.ProductListQuery{Search: "TAZA"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "Taza azul", list[0].Name) // más reciente primero

	minPrice := decimal.NewFromInt(10)
	list, err = products.List(ctx, dto.ProductListQuery{ProductFilterQuery: dto.ProductFilterQuery{MinPrice: &minPrice}})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = products.List(ctx, dto.ProductListQuery{SkipTake: dto.SkipTake{Skip: 1, Take: 1}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Taza azul", list[0].Name)

	list, err = products.List(ctx, dto.ProductListQuery{SkipTake: dto.SkipTake{Skip: 1}})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Taza azul", list[0].Name)
	assert.Equal(t, "Taza roja", list[1].Name)
}

func TestProductPaginate(t *testing.T) {
	products, _ := newCatalog()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		createProduct(t, products, "Producto", "1", 1)
	}

	page, err := products.Paginate(ctx, dto.ProductPageQuery{PageQuery: dto.PageQuery{CurrentPage: 2, PageSize: 2}})
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Len(t, page.Data, 2)

	page, err = products.Paginate(ctx, dto.ProductPageQuery{PageQuery: dto.PageQuery{CurrentPage: 9, PageSize: 2}})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 5, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
}

func TestProductPaginate_BuscaEnDescripcion(t *testing.T) {
	products, _ := newCatalog()
	ctx := context.Background()
	_, err := products.Create(ctx, dto.CreateProductRequest{Name: "Taza", Description: ptr("cerámica artesanal"), Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	page, err := products.Paginate(ctx, dto.ProductPageQuery{PageQuery: dto.PageQuery{SearchValue: "artesanal"}})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalItems)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_CRUD(t *testing.T) {
	products, categories := newCatalog()
	ctx := context.Background()

	c, err := categories.Create(ctx, dto.CategoryRequest{Name: "Cocina"})
	require.NoError(t, err)

	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Taza", Price: decimal.NewFromInt(1), CategoryID: &c.ID})
	require.NoError(t, err)

	upd, err := categories.Update(ctx, c.ID, dto.CategoryRequest{Name: "Hogar"})
	require.NoError(t, err)
	assert.Equal(t, "Hogar", upd.Name)

	res, err := categories.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Category deleted successfully", res.Message)
	assert.Equal(t, c.ID, res.Entity.ID)

	_, err = categories.FindOne(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// el producto queda sin categoría
	got, err := products.FindOne(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestCategory_PaginateYBusqueda(t *testing.T) {
	_, categories := newCatalog()
	ctx := context.Background()
	for _, n := range []string{"Cocina", "Baño", "Cocteles"} {
		_, err := categories.Create(ctx, dto.CategoryRequest{Name: n})
		require.NoError(t, err)
	}

	page, err := categories.Paginate(ctx, dto.PageQuery{SearchValue: "co", OrderBy: "name", OrderByMode: "asc"})
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalItems)
	assert.Equal(t, "Cocina", page.Data[0].Name)
	assert.Equal(t, 1, page.TotalPages)

	list, err := categories.List(ctx, dto.CategoryListQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
