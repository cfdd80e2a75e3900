package service

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/helpston-festival/festival-api/pkg/config"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
)

// AdminSessionCookie names the cookie carrying the admin session token.
const AdminSessionCookie = "admin_session"

const sessionSubject = "admin"

// AdminAuthService authenticates the single site administrator against
// a shared secret and issues signed session tokens with a fixed
// lifetime. There are no per-user accounts.
type AdminAuthService struct {
	cfg    config.AdminConfig
	logger *zap.Logger
}

// NewAdminAuthService constructs the service.
func NewAdminAuthService(cfg config.AdminConfig, logger *zap.Logger) *AdminAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminAuthService{cfg: cfg, logger: logger}
}

// Enabled reports whether admin access is configured at all. Without a
// password the admin surface stays closed rather than open.
func (s *AdminAuthService) Enabled() bool {
	return s.cfg.Password != ""
}

// SessionTTL exposes the configured session lifetime for cookie expiry.
func (s *AdminAuthService) SessionTTL() time.Duration {
	if s.cfg.SessionTTL <= 0 {
		return 24 * time.Hour
	}
	return s.cfg.SessionTTL
}

// Login checks the submitted password and returns a signed session
// token. The configured value may be a bcrypt hash; anything else is
// compared in constant time.
func (s *AdminAuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		s.logger.Error("admin login attempted without ADMIN_PASSWORD configured")
		return "", appErrors.ErrAdminDisabled
	}

	if !s.passwordMatches(password) {
		return "", appErrors.ErrInvalidPassword
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   sessionSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.SessionTTL())),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey())
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	return signed, nil
}

// ValidateSession checks a session token from the cookie.
func (s *AdminAuthService) ValidateSession(tokenValue string) error {
	if !s.Enabled() {
		return appErrors.ErrAdminDisabled
	}
	if tokenValue == "" {
		return appErrors.ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(tokenValue, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.signingKey(), nil
	})
	if err != nil || !token.Valid {
		return appErrors.ErrUnauthorized
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != sessionSubject {
		return appErrors.ErrUnauthorized
	}
	return nil
}

func (s *AdminAuthService) passwordMatches(password string) bool {
	if strings.HasPrefix(s.cfg.Password, "$2a$") || strings.HasPrefix(s.cfg.Password, "$2b$") || strings.HasPrefix(s.cfg.Password, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.Password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.Password), []byte(password)) == 1
}

// The session secret falls back to the password so a single configured
// value is enough for a working deployment.
func (s *AdminAuthService) signingKey() []byte {
	if s.cfg.SessionSecret != "" {
		return []byte(s.cfg.SessionSecret)
	}
	return []byte(s.cfg.Password)
}
