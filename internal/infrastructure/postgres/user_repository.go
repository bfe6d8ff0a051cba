package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `u.id, u.email, u.password_hash, u.role, u.email_verified, u.deleted_at, u.created_at, u.updated_at`

// CreateUser persiste un nuevo usuario y completa ID y timestamps.
func (r *UserRepo) CreateUser(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, password_hash, role, email_verified)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, user.Email, user.PasswordHash, user.Role, user.EmailVerified).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CreateProfile persiste el perfil del usuario.
func (r *UserRepo) CreateProfile(ctx context.Context, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (user_id, first_name, last_name, phone, photo, document_type, document_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.UserID, p.FirstName, p.LastName, p.Phone, p.Photo, p.DocumentType, p.DocumentNumber,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// CreateCustomer persiste la identidad comercial del usuario.
func (r *UserRepo) CreateCustomer(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (user_id, points, level, newsletter, shipping_address, billing_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		c.UserID, c.Points, c.Level, c.Newsletter, c.ShippingAddress, c.BillingAddress,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// FindAuthByEmail solo lo necesario para login.
func (r *UserRepo) FindAuthByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT id, email, password_hash, role FROM users WHERE email = $1 AND deleted_at IS NULL`
	var u entity.User
	err := r.q.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auth user by email: %w", err)
	}
	return &u, nil
}

// FindByEmail obtiene un usuario activo por email, con relaciones.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findWithRelations(ctx, "u.email = $1", email)
}

// FindByID obtiene un usuario activo por ID, sin relaciones.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1 AND u.deleted_at IS NULL`
	var u entity.User
	err := r.q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// FindByIDWithRelations obtiene un usuario activo con Profile y Customer.
func (r *UserRepo) FindByIDWithRelations(ctx context.Context, id int64) (*entity.User, error) {
	return r.findWithRelations(ctx, "u.id = $1", id)
}

func (r *UserRepo) findWithRelations(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `,
		       p.id, p.first_name, p.last_name, p.phone, p.photo, p.document_type, p.document_number, p.created_at, p.updated_at,
		       c.id, c.points, c.level, c.newsletter, c.shipping_address, c.billing_address, c.created_at, c.updated_at
		FROM users u
		LEFT JOIN profiles  p ON p.user_id = u.id
		LEFT JOIN customers c ON c.user_id = u.id
		WHERE ` + where + ` AND u.deleted_at IS NULL`

	var (
		u                    entity.User
		pID                  *int64
		pFirst, pLast        *string
		pPhone, pPhoto       *string
		pDocType, pDocNumber *string
		pCreated, pUpdated   *time.Time
		cID                  *int64
		cPoints              *int
		cLevel               *string
		cNewsletter          *bool
		cShip, cBill         *string
		cCreated, cUpdated   *time.Time
	)
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.DeletedAt, &u.CreatedAt, &u.UpdatedAt,
		&pID, &pFirst, &pLast, &pPhone, &pPhoto, &pDocType, &pDocNumber, &pCreated, &pUpdated,
		&cID, &cPoints, &cLevel, &cNewsletter, &cShip, &cBill, &cCreated, &cUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user with relations: %w", err)
	}
	if pID != nil {
		u.Profile = &entity.Profile{
			ID: *pID, UserID: u.ID, FirstName: deref(pFirst), LastName: deref(pLast),
			Phone: pPhone, Photo: pPhoto, DocumentType: pDocType, DocumentNumber: pDocNumber,
			CreatedAt: derefTime(pCreated), UpdatedAt: derefTime(pUpdated),
		}
	}
	if cID != nil {
		c := &entity.Customer{
			ID: *cID, UserID: u.ID, Level: deref(cLevel),
			ShippingAddress: cShip, BillingAddress: cBill,
			CreatedAt: derefTime(cCreated), UpdatedAt: derefTime(cUpdated),
		}
		if cPoints != nil {
			c.Points = *cPoints
		}
		if cNewsletter != nil {
			c.Newsletter = *cNewsletter
		}
		u.Customer = c
	}
	return &u, nil
}

// FindCustomerByUserID obtiene el Customer del usuario (nil si no tiene).
func (r *UserRepo) FindCustomerByUserID(ctx context.Context, userID int64) (*entity.Customer, error) {
	query := `
		SELECT c.id, c.user_id, c.points, c.level, c.newsletter, c.shipping_address, c.billing_address, c.created_at, c.updated_at
		FROM customers c
		JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1 AND u.deleted_at IS NULL`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.Points, &c.Level, &c.Newsletter, &c.ShippingAddress, &c.BillingAddress,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by user: %w", err)
	}
	return &c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
