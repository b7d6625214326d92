package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/spekmx/cotizador-api/internal/domain"
	"github.com/spekmx/cotizador-api/internal/domain/entity"
	"github.com/spekmx/cotizador-api/internal/domain/repository"
	"github.com/spekmx/cotizador-api/pkg/jwt"
)

// UseCase registro e inicio de sesión de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	jwtMgr   *jwt.Manager
}

func NewUseCase(userRepo repository.UserRepository, jwtMgr *jwt.Manager) *UseCase {
	return &UseCase{userRepo: userRepo, jwtMgr: jwtMgr}
}

// Register crea un usuario nuevo con la contraseña cifrada.
func (uc *UseCase) Register(email, password, name string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := uc.userRepo.GetByEmail(email)
	if err != nil && err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("verificando correo: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("cifrando contraseña: %w", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("creando usuario: %w", err)
	}
	return user, nil
}

// Login valida credenciales y emite un token de acceso.
func (uc *UseCase) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("buscando usuario: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := uc.jwtMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("emitiendo token: %w", err)
	}
	return token, user, nil
}
