package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gncc/cricket-dashboard/access"
	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/repositories"
	"github.com/gncc/cricket-dashboard/utils"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already registered")
)

const (
	MinPasswordLength      = 6
	SessionTTL             = 24 * time.Hour
	confirmationTokenBytes = 32
)

const (
	claimUserID = "user_id"
	claimRole   = "role"
	claimName   = "name"
	claimEmail  = "email"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, string, error)
	ParseSession(tokenString string) (access.Session, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
}

type RegisterInput struct {
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Password   string          `json:"password"`
	Role       models.UserRole `json:"role"`
	RedirectTo string          `json:"redirect_to,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	publicURL string
	logger    *slog.Logger
	now       func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, publicURL string, logger *slog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := normalizeEmail(input.Email)

	if fullName == "" {
		return nil, ErrFullNameRequired
	}
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	confirmationToken, err := utils.GenerateToken(confirmationTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	redirectTo := s.sanitizeRedirect(input.RedirectTo)

	user := &models.User{
		FullName:          fullName,
		Email:             email,
		PasswordHash:      hashedPassword,
		Role:              input.Role,
		EmailConfirmed:    false,
		ConfirmationToken: &confirmationToken,
		RedirectTo:        &redirectTo,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrAuthEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("confirmation_link", s.publicURL+"/auth/confirm?token="+url.QueryEscape(confirmationToken)),
	)

	user.PasswordHash = ""
	user.ConfirmationToken = nil
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrAuthInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user by email: %w", err)
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, "", ErrAuthInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	user.ConfirmationToken = nil
	return user, token, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		claimUserID: user.ID,
		claimRole:   string(user.Role),
		claimName:   user.FullName,
		claimEmail:  user.Email,
		"exp":       now.Add(SessionTTL).Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ParseSession validates a session token and returns the identity it carries.
func (s *authService) ParseSession(tokenString string) (access.Session, error) {
	if tokenString == "" {
		return access.Session{}, ErrAuthenticationFailed
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return access.Session{}, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return access.Session{}, ErrAuthenticationFailed
	}

	userID, _ := claims[claimUserID].(string)
	role, _ := claims[claimRole].(string)
	if userID == "" || !models.UserRole(role).Valid() {
		return access.Session{}, fmt.Errorf("%w: token is missing %s or %s", ErrAuthenticationFailed, claimUserID, claimRole)
	}
	name, _ := claims[claimName].(string)
	email, _ := claims[claimEmail].(string)

	return access.Session{
		UserID:   userID,
		Email:    email,
		FullName: name,
		Role:     models.UserRole(role),
	}, nil
}

// ConfirmEmail marks the account behind token as confirmed and returns where to send the user next.
func (s *authService) ConfirmEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrConfirmationTokenInvalid
	}

	user, err := s.userRepo.GetByConfirmationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrConfirmationTokenInvalid
		}
		return "", fmt.Errorf("failed to find confirmation token: %w", err)
	}

	if err := s.userRepo.ConfirmEmail(ctx, user.ID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrConfirmationTokenInvalid
		}
		return "", fmt.Errorf("failed to confirm email: %w", err)
	}

	s.logger.InfoContext(ctx, "email confirmed", slog.String("user_id", user.ID))

	if user.RedirectTo != nil && *user.RedirectTo != "" {
		return *user.RedirectTo, nil
	}
	return s.publicURL + "/dashboard", nil
}

// sanitizeRedirect keeps redirects on this site: absolute URLs must start with the public URL,
// relative ones must be rooted paths.
func (s *authService) sanitizeRedirect(target string) string {
	switch {
	case target == "":
	case strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//"):
		return s.publicURL + target
	case target == s.publicURL || strings.HasPrefix(target, s.publicURL+"/"):
		return target
	}
	return s.publicURL + "/dashboard"
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
