package dto

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role,omitempty"` // por defecto CUSTOMER
}

// Validate reglas de forma: email válido, password >= 6, nombres obligatorios.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if len(r.Password) < 6 {
		return errors.New("password must be longer than or equal to 6 characters")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return errors.New("firstName should not be empty")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return errors.New("lastName should not be empty")
	}
	if r.Role != "" && !entity.IsValidRole(r.Role) {
		return errors.New("role must be one of: ADMIN, CUSTOMER, SUPPORT")
	}
	return nil
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate email con forma válida y password no vacío.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return errors.New("password should not be empty")
	}
	return nil
}

// RefreshRequest cuerpo de /auth/refresh y /auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Validate refreshToken obligatorio.
func (r *RefreshRequest) Validate() error {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return errors.New("refreshToken should not be empty")
	}
	return nil
}

// TokenPairResponse par de tokens devuelto por login y refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ProfileResponse datos de presentación del usuario.
type ProfileResponse struct {
	ID             int64   `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Phone          *string `json:"phone"`
	Photo          *string `json:"photo"`
	DocumentType   *string `json:"documentType"`
	DocumentNumber *string `json:"documentNumber"`
}

// CustomerResponse identidad comercial del usuario.
type CustomerResponse struct {
	ID              int64   `json:"id"`
	Points          int     `json:"points"`
	Level           string  `json:"level"`
	Newsletter      bool    `json:"newsletter"`
	ShippingAddress *string `json:"shippingAddress"`
	BillingAddress  *string `json:"billingAddress"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID            int64             `json:"id"`
	Email         string            `json:"email"`
	Role          string            `json:"role"`
	EmailVerified bool              `json:"emailVerified"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	Profile       *ProfileResponse  `json:"profile"`
	Customer      *CustomerResponse `json:"customer"`
}

// NewUserResponse mapea la entidad a la respuesta pública.
func NewUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	out := &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if p := u.Profile; p != nil {
		out.Profile = &ProfileResponse{
			ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Phone: p.Phone, Photo: p.Photo,
			DocumentType: p.DocumentType, DocumentNumber: p.DocumentNumber,
		}
	}
	if c := u.Customer; c != nil {
		out.Customer = &CustomerResponse{
			ID: c.ID, Points: c.Points, Level: c.Level, Newsletter: c.Newsletter,
			ShippingAddress: c.ShippingAddress, BillingAddress: c.BillingAddress,
		}
	}
	return out
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email should not be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email must be an email")
	}
	return nil
}
