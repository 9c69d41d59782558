package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"palabra-api/internal/domain"
	"palabra-api/internal/repository"
)

// AuthService orquesta los casos de uso de login y registro.
type AuthService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	tokens  *JWTService
	limiter LoginRateLimiter
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, tokens *JWTService, limiter LoginRateLimiter) *AuthService {
	return &AuthService{
		logger:  logger,
		users:   users,
		tokens:  tokens,
		limiter: limiter,
	}
}

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordIncorrect = errors.New("password incorrect")
	ErrUsernameTaken     = errors.New("username taken")
	ErrEmailTaken        = errors.New("email taken")
	ErrTooManyAttempts   = errors.New("too many login attempts")
)

const bcryptCost = 10

// RegisterInput son los datos de un registro; la contraseña llega ya
// validada por el caller (mínimo 6 caracteres).
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// LoginResult es un login exitoso: usuario más token de sesión de 24h.
type LoginResult struct {
	User  domain.User
	Token string
}

// Login busca el usuario por username, verifica la contraseña contra el
// hash almacenado y emite un token de sesión.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	if s.users == nil || s.tokens == nil {
		return LoginResult{}, errors.New("auth service not configured")
	}

	username = strings.TrimSpace(username)
	if s.limiter != nil && !s.limiter.Allow(strings.ToLower(username)) {
		return LoginResult{}, ErrTooManyAttempts
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LoginResult{}, ErrUserNotFound
		}
		return LoginResult{}, err
	}
	if !verifyPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrPasswordIncorrect
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user, Token: token}, nil
}

// Register crea un usuario nuevo tras comprobar unicidad de username y
// email. La carrera entre dos registros concurrentes la resuelve la
// restricción de unicidad del store. No emite token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("auth service not configured")
	}

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.users.Create(ctx, repository.CreateUserInput{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			if strings.Contains(err.Error(), "email") {
				return domain.User{}, ErrEmailTaken
			}
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// verifyPassword devuelve false ante hash malformado o vacío, nunca
// propaga el error de bcrypt.
func verifyPassword(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
