// Package jwt mints and verifies the signed session tokens used by the API.
//
// Tokens are HMAC-signed JWTs carrying the user id in "sub", an optional
// email and a "type" claim that separates access tokens from refresh tokens.
// Nothing is persisted: a token is valid while its signature checks out and
// it has not expired, so rotating the secret invalidates every issued token.
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iudanet/todokeeper/internal/apperr"
)

// TokenType discriminates access tokens from refresh tokens
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Verification failures. All of them are authentication failures.
var (
	ErrInvalidToken     = fmt.Errorf("%w: invalid or expired token", apperr.ErrAuthentication)
	ErrWrongTokenType   = fmt.Errorf("%w: invalid token type", apperr.ErrAuthentication)
	ErrMissingSubject   = fmt.Errorf("%w: token has no subject", apperr.ErrAuthentication)
	ErrMalformedSubject = fmt.Errorf("%w: invalid user id format", apperr.ErrAuthentication)
)

// Config configures the token service
type Config struct {
	Secret     []byte
	Algorithm  string // HS256, HS384 or HS512
	Issuer     string // optional; checked on verify when set
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims is the token payload
type Claims struct {
	Email string    `json:"email,omitempty"`
	Type  TokenType `json:"type"`
	gojwt.RegisteredClaims
}

// Token is a freshly minted token
type Token struct {
	ExpiresAt time.Time
	Value     string
	Type      TokenType
}

// Principal is the identity carried by a verified access token
type Principal struct {
	Email  string
	UserID uuid.UUID
}

// Service mints and verifies tokens. Safe for concurrent use.
type Service struct {
	method gojwt.SigningMethod
	parser *gojwt.Parser
	now    func() time.Time
	cfg    Config
}

// Option customizes a Service
type Option func(*Service)

// WithClock overrides the time source, used by tests to mint expired tokens
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService validates cfg and creates a token service
func NewService(cfg Config, opts ...Option) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt secret cannot be empty")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	method, ok := gojwt.GetSigningMethod(cfg.Algorithm).(*gojwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %q", cfg.Algorithm)
	}

	s := &Service{
		cfg:    cfg,
		method: method,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	parserOpts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{method.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(func() time.Time { return s.now() }),
	}
	if cfg.Issuer != "" {
		parserOpts = append(parserOpts, gojwt.WithIssuer(cfg.Issuer))
	}
	s.parser = gojwt.NewParser(parserOpts...)

	return s, nil
}

// AccessTTL returns the default access token lifetime
func (s *Service) AccessTTL() time.Duration {
	return s.cfg.AccessTTL
}

// MintAccess creates an access token for subject. A zero ttl means the configured default.
func (s *Service) MintAccess(subject, email string, ttl time.Duration) (Token, error) {
	if ttl == 0 {
		ttl = s.cfg.AccessTTL
	}
	return s.mint(subject, email, TypeAccess, ttl)
}

// MintRefresh creates a refresh token for subject. A zero ttl means the configured default.
func (s *Service) MintRefresh(subject string, ttl time.Duration) (Token, error) {
	if ttl == 0 {
		ttl = s.cfg.RefreshTTL
	}
	return s.mint(subject, "", TypeRefresh, ttl)
}

func (s *Service) mint(subject, email string, typ TokenType, ttl time.Duration) (Token, error) {
	now := s.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Email: email,
		Type:  typ,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
			IssuedAt:  gojwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	value, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign %s token: %w", typ, err)
	}

	return Token{Value: value, Type: typ, ExpiresAt: expiresAt}, nil
}

// Verify checks signature, algorithm and expiry and returns the claims.
// It never fails loudly: any problem yields false.
func (s *Service) Verify(token string) (*Claims, bool) {
	claims := &Claims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*gojwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}

// RequireAccess verifies an access token and returns its principal
func (s *Service) RequireAccess(token string) (*Principal, error) {
	claims, id, err := s.require(token, TypeAccess)
	if err != nil {
		return nil, err
	}
	return &Principal{UserID: id, Email: claims.Email}, nil
}

// RequireAccessSubject verifies an access token and returns the user id it was issued for
func (s *Service) RequireAccessSubject(token string) (uuid.UUID, error) {
	_, id, err := s.require(token, TypeAccess)
	return id, err
}

// RequireRefreshSubject verifies a refresh token and returns the user id it was issued for
func (s *Service) RequireRefreshSubject(token string) (uuid.UUID, error) {
	_, id, err := s.require(token, TypeRefresh)
	return id, err
}

func (s *Service) require(token string, want TokenType) (*Claims, uuid.UUID, error) {
	claims, ok := s.Verify(token)
	if !ok {
		return nil, uuid.Nil, ErrInvalidToken
	}

	if claims.Type != want {
		return nil, uuid.Nil, ErrWrongTokenType
	}

	if claims.Subject == "" {
		return nil, uuid.Nil, ErrMissingSubject
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return nil, uuid.Nil, ErrMalformedSubject
	}

	return claims, id, nil
}
