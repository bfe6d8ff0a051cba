package memory

import (
	"context"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.RefreshTokenRepository = (*RefreshTokenRepo)(nil)

// UserRepo usuarios, perfiles y clientes en memoria.
type UserRepo struct{ s *Store }

// NewUserRepository construye el repo.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) CreateUser(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	now := r.s.Now()
	u.ID = r.s.nextID()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) CreateProfile(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	p.ID = r.s.nextID()
	p.CreatedAt, p.UpdatedAt = now, now
	c := *p
	r.s.profiles[p.UserID] = &c
	return nil
}

func (r *UserRepo) CreateCustomer(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	c.ID = r.s.nextID()
	c.CreatedAt, c.UpdatedAt = now, now
	x := *c
	r.s.customers[c.ID] = &x
	return nil
}

func (r *UserRepo) FindAuthByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email && !u.IsDeleted() {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email && !u.IsDeleted() {
			return r.hydrate(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.IsDeleted() {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepo) FindByIDWithRelations(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.IsDeleted() {
		return nil, nil
	}
	return r.hydrate(u), nil
}

func (r *UserRepo) FindCustomerByUserID(_ context.Context, userID int64) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[userID]; !ok || u.IsDeleted() {
		return nil, nil
	}
	return r.customerOf(userID), nil
}

// hydrate requiere s.mu tomado.
func (r *UserRepo) hydrate(u *entity.User) *entity.User {
	out := cloneUser(u)
	if p, ok := r.s.profiles[u.ID]; ok {
		c := *p
		out.Profile = &c
	}
	out.Customer = r.customerOf(u.ID)
	return out
}

func (r *UserRepo) customerOf(userID int64) *entity.Customer {
	for _, c := range r.s.customers {
		if c.UserID == userID {
			x := *c
			return &x
		}
	}
	return nil
}

// SoftDeleteUser marca el usuario como borrado (solo para tests).
func (s *Store) SoftDeleteUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		now := s.Now()
		u.DeletedAt = &now
	}
}

// RefreshTokenRepo refresh tokens en memoria.
type RefreshTokenRepo struct{ s *Store }

// NewRefreshTokenRepository construye el repo.
func NewRefreshTokenRepository(s *Store) *RefreshTokenRepo { return &RefreshTokenRepo{s: s} }

func (r *RefreshTokenRepo) Create(_ context.Context, t *entity.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.nextID()
	t.CreatedAt = r.s.Now()
	x := *t
	r.s.tokens[t.ID] = &x
	return nil
}

func (r *RefreshTokenRepo) FindByTokenHash(_ context.Context, hash string) (*entity.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tokens {
		if t.TokenHash == hash {
			x := *t
			return &x, nil
		}
	}
	return nil, nil
}

func (r *RefreshTokenRepo) FindByTokenHashForUpdate(ctx context.Context, hash string) (*entity.RefreshToken, error) {
	return r.FindByTokenHash(ctx, hash)
}

func (r *RefreshTokenRepo) Revoke(_ context.Context, id int64, replacedByJTI *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[id]
	if !ok || t.RevokedAt != nil {
		return nil
	}
	now := r.s.Now()
	t.RevokedAt = &now
	if replacedByJTI != nil {
		j := *replacedByJTI
		t.ReplacedByJTI = &j
	}
	return nil
}

func (r *RefreshTokenRepo) RevokeFamily(_ context.Context, familyID string) (int64, error) {
	return r.revokeWhere(func(t *entity.RefreshToken) bool { return t.FamilyID == familyID }), nil
}

func (r *RefreshTokenRepo) RevokeAllForUser(_ context.Context, userID int64) (int64, error) {
	return r.revokeWhere(func(t *entity.RefreshToken) bool { return t.UserID == userID }), nil
}

func (r *RefreshTokenRepo) revokeWhere(match func(*entity.RefreshToken) bool) int64 {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	var n int64
	for _, t := range r.s.tokens {
		if t.RevokedAt == nil && match(t) {
			t.RevokedAt = &now
			n++
		}
	}
	return n
}

// RefreshTokens copia de todos los tokens (solo para tests).
func (s *Store) RefreshTokens() []entity.RefreshToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.RefreshToken, 0, len(s.tokens))
	for _, t := range s.tokens {
		out = append(out, *t)
	}
	return out
}
