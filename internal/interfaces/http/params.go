package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecommerce-api/internal/application/dto"
)

var (
	errInvalidID    = errors.New(msgInvalidID)
	errInvalidQuery = errors.New("invalid query parameters")
)

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// bindQuery vuelca el query string sobre out según sus tags `query`.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return errInvalidQuery
	}
	return nil
}

func queryDecimalPtr(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &d, nil
}

// pageQuery searchValue, currentPage, pageSize, orderBy, orderByMode.
func pageQuery(c *fiber.Ctx) (dto.PageQuery, error) {
	var q dto.PageQuery
	if err := bindQuery(c, &q); err != nil {
		return q, err
	}
	if !q.ValidMode() {
		return q, errors.New("orderByMode must be one of: asc, desc")
	}
	return q, nil
}

// skipTake skip/take de los listados sin paginar.
func skipTake(c *fiber.Ctx) (dto.SkipTake, error) {
	var st dto.SkipTake
	err := bindQuery(c, &st)
	return st, err
}

// productFilterQuery los precios van aparte: decimal no pasa por QueryParser.
func productFilterQuery(c *fiber.Ctx) (dto.ProductFilterQuery, error) {
	var (
		f   dto.ProductFilterQuery
		err error
	)
	if err = bindQuery(c, &f); err != nil {
		return f, err
	}
	if f.MinPrice, err = queryDecimalPtr(c, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryDecimalPtr(c, "maxPrice"); err != nil {
		return f, err
	}
	return f, nil
}
