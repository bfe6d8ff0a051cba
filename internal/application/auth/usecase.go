package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-api/pkg/jwt"
	"github.com/jhoicas/ecommerce-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// dummyHash se compara cuando el email no existe, para que el tiempo de respuesta
// no revele qué cuentas están registradas.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	return h
})

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	RefreshTTL time.Duration
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh, logout y perfil.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	tx        TxRunner
	jwtCfg    JWTConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	tx TxRunner,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if jwtCfg.RefreshTTL <= 0 {
		jwtCfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tx:        tx,
		jwtCfg:    jwtCfg,
		log:       log.Named("auth"),
		now:       time.Now,
	}
}

// Register crea User + Profile + Customer en una sola transacción.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	user := &entity.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	err = uc.tx.RunAuth(ctx, func(users repository.UserRepository, _ repository.RefreshTokenRepository) error {
		if err := users.CreateUser(ctx, user); err != nil {
			return err
		}
		profile := &entity.Profile{
			UserID:    user.ID,
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Phone:     in.Phone,
		}
		if err := users.CreateProfile(ctx, profile); err != nil {
			return err
		}
		customer := &entity.Customer{UserID: user.ID, Level: entity.CustomerLevelBronze}
		if err := users.CreateCustomer(ctx, customer); err != nil {
			return err
		}
		user.Profile = profile
		user.Customer = customer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// Login verifica credenciales y emite access + refresh token (familia nueva).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, meta ClientMeta) (*dto.TokenPairResponse, error) {
	user, err := uc.userRepo.FindAuthByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	refresh, rec := uc.newRefreshToken(user.ID, "", meta.IP, meta.UserAgent)
	if err := uc.tokenRepo.Create(ctx, rec); err != nil {
		return nil, err
	}
	access, err := uc.accessToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rota el refresh token: revoca el presentado y emite otro de la misma familia.
// Si el token ya había sido rotado se trata como robo y se revoca toda la familia.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	hash := HashToken(refreshToken)
	var (
		pair   *dto.TokenPairResponse
		reused *entity.RefreshToken
	)
	err := uc.tx.RunAuth(ctx, func(users repository.UserRepository, tokens repository.RefreshTokenRepository) error {
		rec, err := tokens.FindByTokenHashForUpdate(ctx, hash)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrInvalidRefresh
		}
		if rec.IsRevoked() {
			if rec.WasRotated() {
				// La revocación de la familia debe confirmarse: fn termina sin error.
				if _, err := tokens.RevokeFamily(ctx, rec.FamilyID); err != nil {
					return err
				}
				reused = rec
				return nil
			}
			return domain.ErrInvalidRefresh
		}
		if rec.IsExpired(uc.now()) {
			return domain.ErrInvalidRefresh
		}

		user, err := users.FindByID(ctx, rec.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.Unauthorized("User not found")
		}

		ip, ua := "", ""
		if rec.IP != nil {
			ip = *rec.IP
		}
		if rec.UserAgent != nil {
			ua = *rec.UserAgent
		}
		refresh, next := uc.newRefreshToken(user.ID, rec.FamilyID, ip, ua)
		if err := tokens.Create(ctx, next); err != nil {
			return err
		}
		if err := tokens.Revoke(ctx, rec.ID, &next.JTI); err != nil {
			return err
		}
		access, err := uc.accessToken(user)
		if err != nil {
			return err
		}
		pair = &dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if reused != nil {
		uc.log.Warn().
			Int64("user_id", reused.UserID).
			Str("family_id", reused.FamilyID).
			Msg("refresh token reutilizado, familia revocada")
		return nil, domain.ErrInvalidRefresh
	}
	return pair, nil
}

// Logout revoca el refresh token si está activo. Siempre responde "Logged out".
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken string) (*dto.MessageResponse, error) {
	rec, err := uc.tokenRepo.FindByTokenHash(ctx, HashToken(refreshToken))
	if err != nil {
		return nil, err
	}
	if rec != nil && rec.IsActive(uc.now()) {
		if err := uc.tokenRepo.Revoke(ctx, rec.ID, nil); err != nil {
			return nil, err
		}
	}
	return &dto.MessageResponse{Message: "Logged out"}, nil
}

// LogoutAll revoca todas las sesiones del usuario.
func (uc *AuthUseCase) LogoutAll(ctx context.Context, userID int64) (*dto.MessageResponse, error) {
	if _, err := uc.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Logged out"}, nil
}

// Me devuelve el usuario autenticado con perfil y cliente.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByIDWithRelations(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.NewUserResponse(user), nil
}

func (uc *AuthUseCase) accessToken(u *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{UserID: u.ID, Email: u.Email, Role: u.Role},
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

// newRefreshToken genera un token opaco (UUIDv4) y su registro. El jti es otro UUID para
// que la columna en claro no sirva como token. familyID vacío abre una familia nueva.
func (uc *AuthUseCase) newRefreshToken(userID int64, familyID, ip, userAgent string) (string, *entity.RefreshToken) {
	token := uuid.NewString()
	jti := uuid.NewString()
	if familyID == "" {
		familyID = jti
	}
	rec := &entity.RefreshToken{
		UserID:    userID,
		JTI:       jti,
		FamilyID:  familyID,
		TokenHash: HashToken(token),
		ExpiresAt: uc.now().Add(uc.jwtCfg.RefreshTTL),
		IP:        nonEmpty(ip),
		UserAgent: nonEmpty(userAgent),
	}
	return token, rec
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
