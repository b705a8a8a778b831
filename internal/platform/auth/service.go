package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"verde-backend/internal/platform/config"
)

// Subject carried in every session token. There are no per-user accounts;
// the records surface is gated by a single shared passphrase.
const SessionSubject = "records"

var ErrInvalidPassphrase = errors.New("invalid passphrase")

type Service struct {
	passphrase     string
	passphraseHash string
	secret         []byte
	ttl            time.Duration
}

func NewService(cfg config.AuthConfig) (*Service, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.Passphrase == "" && cfg.PassphraseHash == "" {
		return nil, errors.New("passphrase or passphrase_hash is required")
	}
	return &Service{
		passphrase:     cfg.Passphrase,
		passphraseHash: cfg.PassphraseHash,
		secret:         []byte(cfg.JWTSecret),
		ttl:            time.Duration(cfg.SessionTTLMinutes) * time.Minute,
	}, nil
}

func (s *Service) Secret() []byte { return s.secret }

// Login verifies the shared passphrase and issues a session token.
func (s *Service) Login(passphrase string) (string, error) {
	if !s.verify(passphrase) {
		return "", ErrInvalidPassphrase
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": SessionSubject,
		"exp": time.Now().Add(s.ttl).Unix(),
		"iat": time.Now().Unix(),
	})
	return token.SignedString(s.secret)
}

func (s *Service) verify(passphrase string) bool {
	if passphrase == "" {
		return false
	}
	if s.passphraseHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passphraseHash), []byte(passphrase)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.passphrase), []byte(passphrase)) == 1
}
