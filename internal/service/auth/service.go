package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/scoot-me/scootme/internal/domain"
	"github.com/scoot-me/scootme/internal/ports"
)

type Service struct {
	userRepo      ports.UserRepository
	cache         ports.Cache
	email         ports.EmailService
	jwtSecret     []byte
	tokenDuration time.Duration
	log           *zap.Logger
}

func NewService(userRepo ports.UserRepository, cache ports.Cache, email ports.EmailService, jwtSecret string, tokenDuration time.Duration, log *zap.Logger) ports.AuthService {
	if tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return &Service{
		userRepo:      userRepo,
		cache:         cache,
		email:         email,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
		log:           log,
	}
}

func (s *Service) Register(ctx context.Context, user *domain.User) (string, error) {
	if err := validateRegistration(user); err != nil {
		return "", err
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hashedPwd)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.AccountStatus = domain.AccountStatusActive
	user.Settings = domain.Settings{
		PushNotifications:  true,
		EmailNotifications: true,
		RideReminders:      true,
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", err
	}

	if s.email != nil {
		if err := s.email.SendWelcome(ctx, user); err != nil {
			s.log.Warn("Failed to send welcome email",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	return s.generateToken(user)
}

func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	if user.AccountStatus != domain.AccountStatusActive {
		return "", nil, fmt.Errorf("%w: account is not active", domain.ErrForbidden)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims", domain.ErrUnauthorized)
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid sub", domain.ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", domain.ErrUnauthorized)
	}
	return user, nil
}

// ForgotPassword replaces the password with a random temporary one and mails
// it to the account. An unknown email reports success so the endpoint cannot
// be used to probe which addresses have accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		s.log.Info("Password reset requested for unknown email")
		return nil
	}

	tempPassword, err := generateTempPassword(12)
	if err != nil {
		return err
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPwd)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}

	return s.email.SendPasswordReset(ctx, user, tempPassword)
}

func (s *Service) generateToken(user *domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"exp": time.Now().Add(s.tokenDuration).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func validateRegistration(user *domain.User) error {
	switch {
	case user == nil:
		return fmt.Errorf("%w: missing body", domain.ErrValidation)
	case strings.TrimSpace(user.Email) == "" || !strings.Contains(user.Email, "@"):
		return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
	case len(user.Password) < 8:
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	case strings.TrimSpace(user.FirstName) == "":
		return fmt.Errorf("%w: first name is required", domain.ErrValidation)
	}
	return nil
}

const tempPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

func generateTempPassword(length int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(tempPasswordAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
