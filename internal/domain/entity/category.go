package entity

import "time"

// Category agrupa productos. El borrado es físico; los productos quedan sin categoría.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
