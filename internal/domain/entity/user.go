package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
	RoleSupport  = "SUPPORT"
)

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCustomer, RoleSupport:
		return true
	}
	return false
}

// User identidad de acceso. Tiene a lo sumo un Profile y un Customer.
type User struct {
	ID            int64
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Role          string // ADMIN, CUSTOMER, SUPPORT
	EmailVerified bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relaciones hidratadas (nil si no se cargaron o no existen).
	Profile  *Profile
	Customer *Customer
}

// IsDeleted indica si el usuario fue dado de baja (soft delete).
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// Profile datos de presentación del usuario.
type Profile struct {
	ID             int64
	UserID         int64
	FirstName      string
	LastName       string
	Phone          *string
	Photo          *string
	DocumentType   *string
	DocumentNumber *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
