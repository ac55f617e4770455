package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret"

func newTestAuthService() (*authService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testSecret, "http://localhost:8080/", discardLogger()).(*authService)
	return svc, repo
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"missing name", RegisterInput{Email: "a@b.com", Password: "secret1", Role: models.RoleCaptain}, ErrFullNameRequired},
		{"bad email", RegisterInput{FullName: "A", Email: "nope", Password: "secret1", Role: models.RoleCaptain}, ErrInvalidEmail},
		{"short password", RegisterInput{FullName: "A", Email: "a@b.com", Password: "12345", Role: models.RoleCaptain}, ErrPasswordTooShort},
		{"bad role", RegisterInput{FullName: "A", Email: "a@b.com", Password: "secret1", Role: "coach"}, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.input); !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterStoresProfileAndConfirmation(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		FullName: "  Virat Kohli ",
		Email:    "Virat@Example.com",
		Password: "cover-drive",
		Role:     models.RoleCaptain,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("returned user must not carry the password hash")
	}

	stored, err := repo.GetByEmail(ctx, "virat@example.com")
	if err != nil {
		t.Fatalf("stored user not found by normalized email: %v", err)
	}
	if stored.FullName != "Virat Kohli" || stored.Role != models.RoleCaptain {
		t.Errorf("stored profile = %q/%q", stored.FullName, stored.Role)
	}
	if stored.EmailConfirmed || stored.ConfirmationToken == nil {
		t.Error("new user should be unconfirmed with a confirmation token")
	}
	if stored.RedirectTo == nil || *stored.RedirectTo != "http://localhost:8080/dashboard" {
		t.Errorf("redirect = %v, want dashboard", stored.RedirectTo)
	}

	_, err = svc.Register(ctx, RegisterInput{FullName: "Other", Email: "virat@example.com", Password: "secret1", Role: models.RolePlayer})
	if !errors.Is(err, ErrAuthEmailTaken) {
		t.Errorf("duplicate Register() error = %v, want ErrAuthEmailTaken", err)
	}
}

func TestSanitizeRedirect(t *testing.T) {
	svc, _ := newTestAuthService()

	tests := map[string]string{
		"":                                 "http://localhost:8080/dashboard",
		"/dashboard":                       "http://localhost:8080/dashboard",
		"http://localhost:8080/dashboard":  "http://localhost:8080/dashboard",
		"//evil.example.com/":              "http://localhost:8080/dashboard",
		"https://evil.example.com/phish":   "http://localhost:8080/dashboard",
		"http://localhost:8080.evil.com/x": "http://localhost:8080/dashboard",
	}
	for in, want := range tests {
		if got := svc.sanitizeRedirect(in); got != want {
			t.Errorf("sanitizeRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoginAndParseSession(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{FullName: "Shaan", Email: "shaan@example.com", Password: "yorker", Role: models.RolePlayer})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, _, err := svc.Login(ctx, LoginInput{Email: "shaan@example.com", Password: "wrong!"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("Login() with wrong password error = %v", err)
	}
	if _, _, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "yorker"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Errorf("Login() with unknown email error = %v", err)
	}

	user, token, err := svc.Login(ctx, LoginInput{Email: " SHAAN@example.com", Password: "yorker"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != registered.ID || token == "" {
		t.Fatalf("Login() = %q, %q", user.ID, token)
	}

	session, err := svc.ParseSession(token)
	if err != nil {
		t.Fatalf("ParseSession() error = %v", err)
	}
	if session.UserID != user.ID || session.Role != models.RolePlayer || session.FullName != "Shaan" || session.Email != "shaan@example.com" {
		t.Errorf("session = %+v", session)
	}
}

func TestParseSessionRejectsBadTokens(t *testing.T) {
	svc, _ := newTestAuthService()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1", "role": "captain", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredToken, _ := expired.SignedString([]byte(testSecret))

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1", "role": "captain", "exp": time.Now().Add(time.Hour).Unix(),
	})
	foreignToken, _ := foreign.SignedString([]byte("another-secret"))

	noRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1", "role": "umpire", "exp": time.Now().Add(time.Hour).Unix(),
	})
	noRoleToken, _ := noRole.SignedString([]byte(testSecret))

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"expired":      expiredToken,
		"wrong secret": foreignToken,
		"bad role":     noRoleToken,
	} {
		if _, err := svc.ParseSession(token); !errors.Is(err, ErrAuthenticationFailed) {
			t.Errorf("%s: ParseSession() error = %v, want ErrAuthenticationFailed", name, err)
		}
	}
}

func TestConfirmEmail(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		FullName: "Rahul", Email: "rahul@example.com", Password: "keeper", Role: models.RolePlayer, RedirectTo: "/dashboard?welcome=1",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	stored, _ := repo.GetByID(ctx, user.ID)
	token := *stored.ConfirmationToken

	if _, err := svc.ConfirmEmail(ctx, "unknown"); !errors.Is(err, ErrConfirmationTokenInvalid) {
		t.Errorf("ConfirmEmail(unknown) error = %v", err)
	}

	redirect, err := svc.ConfirmEmail(ctx, token)
	if err != nil {
		t.Fatalf("ConfirmEmail() error = %v", err)
	}
	if !strings.HasSuffix(redirect, "/dashboard?welcome=1") {
		t.Errorf("redirect = %q", redirect)
	}

	confirmed, _ := repo.GetByID(ctx, user.ID)
	if !confirmed.EmailConfirmed {
		t.Error("user should be confirmed")
	}
	if _, err := svc.ConfirmEmail(ctx, token); !errors.Is(err, ErrConfirmationTokenInvalid) {
		t.Errorf("second ConfirmEmail() error = %v, want token rejected", err)
	}
}
