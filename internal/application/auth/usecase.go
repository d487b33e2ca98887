package auth

import (
	"context"
	"net/mail"

	"github.com/jhoicas/Tarjetas-api/internal/application/dto"
	"github.com/jhoicas/Tarjetas-api/internal/domain"
	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
	"github.com/jhoicas/Tarjetas-api/internal/domain/repository"
	"github.com/jhoicas/Tarjetas-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// IdentityTxRunner ejecuta fn dentro de una transacción con repos de
// usuarios y roles atados a ella. Lo implementa postgres.TxRunner.
type IdentityTxRunner interface {
	RunIdentity(ctx context.Context, fn func(
		users repository.UserRepository,
		roles repository.RoleRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	tx       IdentityTxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(tx IdentityTxRunner, userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{tx: tx, userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario de autoservicio con el rol USER y devuelve un
// token recién emitido. Retorna domain.ErrConflict si el username o el email
// ya existen; la verificación explícita va antes del insert y el constraint
// único de la DB respalda la carrera.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	err = uc.tx.RunIdentity(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		if taken, err := users.ExistsByUsername(ctx, in.Username); err != nil {
			return err
		} else if taken {
			return domain.ErrConflict
		}
		if taken, err := users.ExistsByEmail(ctx, in.Email); err != nil {
			return err
		} else if taken {
			return domain.ErrConflict
		}
		userRole, err := roles.FindByName(ctx, entity.RoleUser)
		if err != nil {
			return err
		}
		if userRole == nil {
			return domain.ErrNotFound // rol USER no sembrado
		}
		user.Roles = []entity.Role{*userRole}
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.RoleNames(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

// Login verifica username/password y devuelve un token. Retorna
// domain.ErrUnauthorized sin distinguir usuario desconocido de password
// incorrecto.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.RoleNames(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}
