package domain

import (
	"errors"
	"fmt"
)

// Categorías de error de dominio (sin dependencias externas). La capa HTTP las
// traduce a códigos de estado; los casos de uso devuelven siempre una de ellas.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Errores específicos. Envuelven una categoría para que errors.Is funcione con ambas.
var (
	ErrEmailAlreadyExists = &Error{Kind: ErrConflict, Message: "Email already registered"}
	ErrInvalidCredentials = &Error{Kind: ErrUnauthorized, Message: "Invalid credentials"}
	ErrInvalidRefresh     = &Error{Kind: ErrUnauthorized, Message: "Invalid refresh token"}
	ErrUserNotFound       = &Error{Kind: ErrNotFound, Message: "User not found"}
	ErrCustomerNotFound   = &Error{Kind: ErrUnauthorized, Message: "Customer profile not found"}
	ErrAccessDenied       = &Error{Kind: ErrForbidden, Message: "Access denied"}
	ErrCartEmpty          = &Error{Kind: ErrInvalidInput, Message: "Cart is empty"}
	ErrCartItemNotFound   = &Error{Kind: ErrNotFound, Message: "Item not found in cart"}
	ErrProductUnavailable = &Error{Kind: ErrInvalidInput, Message: "Product is not available"}
	ErrOrderNotCancelable = &Error{Kind: ErrInvalidInput, Message: "Only PENDING orders can be cancelled"}
	ErrInvalidOrderStatus = &Error{Kind: ErrInvalidInput, Message: "Invalid order status"}
	ErrInsufficientStock  = &Error{Kind: ErrInvalidInput, Message: "Insufficient stock"}
)

// Error error de dominio con mensaje visible para el cliente.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrNotFound).
func (e *Error) Unwrap() error { return e.Kind }

// Is compara por identidad o, si target es *Error, por categoría y mensaje.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound construye un error 404 con mensaje formateado.
func NotFound(format string, args ...any) *Error { return newError(ErrNotFound, format, args...) }

// BadRequest construye un error 400 con mensaje formateado.
func BadRequest(format string, args ...any) *Error { return newError(ErrInvalidInput, format, args...) }

// Unauthorized construye un error 401 con mensaje formateado.
func Unauthorized(format string, args ...any) *Error {
	return newError(ErrUnauthorized, format, args...)
}

// Forbidden construye un error 403 con mensaje formateado.
func Forbidden(format string, args ...any) *Error { return newError(ErrForbidden, format, args...) }

// Conflict construye un error 409 con mensaje formateado.
func Conflict(format string, args ...any) *Error { return newError(ErrConflict, format, args...) }

// KindOf devuelve la categoría del error, o nil si no es un error de dominio.
func KindOf(err error) error {
	for _, k := range []error{ErrNotFound, ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrConflict} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// MessageOf devuelve el mensaje visible del error de dominio, o "" si no lo es.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
