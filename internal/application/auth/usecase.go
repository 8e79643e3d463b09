package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	admins   map[string]struct{}
}

// NewAuthUseCase construye el caso de uso. adminEmails reciben rol admin al registrarse.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, adminEmails []string) *AuthUseCase {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[e] = struct{}{}
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, admins: admins}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := entity.RoleCliente
	if _, ok := uc.admins[in.Email]; ok {
		role = entity.RoleAdmin
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
