package user

import (
	"context"
	"net/mail"

	"github.com/jhoicas/Tarjetas-api/internal/application/dto"
	"github.com/jhoicas/Tarjetas-api/internal/domain"
	"github.com/jhoicas/Tarjetas-api/internal/domain/access"
	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
	"github.com/jhoicas/Tarjetas-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// IdentityTxRunner ejecuta fn dentro de una transacción con repos de
// usuarios y roles atados a ella. Lo implementa postgres.TxRunner.
type IdentityTxRunner interface {
	RunIdentity(ctx context.Context, fn func(
		users repository.UserRepository,
		roles repository.RoleRepository,
	) error) error
}

// UserUseCase aprovisionamiento de usuarios por administradores.
type UserUseCase struct {
	tx       IdentityTxRunner
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(tx IdentityTxRunner, userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{tx: tx, userRepo: userRepo}
}

// List devuelve todos los usuarios con sus roles (solo ADMIN).
func (uc *UserUseCase) List(ctx context.Context, p entity.Principal) ([]dto.UserResponse, error) {
	if !access.CanListUsers(p) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	return out, nil
}

// Create aprovisiona un usuario con cualquier subconjunto de roles
// existentes (solo ADMIN). Los nombres de rol desconocidos se omiten; si
// ninguno resuelve, ErrInvalidInput. Username o email repetidos producen
// ErrConflict antes del insert.
func (uc *UserUseCase) Create(ctx context.Context, p entity.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !access.CanCreateUser(p) {
		return nil, domain.ErrForbidden
	}
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
		resolved, err := roles.FindByNames(ctx, in.Roles)
		if err != nil {
			return err
		}
		if len(resolved) == 0 {
			return domain.ErrInvalidInput
		}
		user.Roles = resolved
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	out := toResponse(user)
	return &out, nil
}

func toResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    u.RoleNames(),
	}
}
