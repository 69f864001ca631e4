package auth

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"handly/config"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/service"
	"handly/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
// Access and refresh tokens share one signing key and differ by the "kind" claim.
type jwtService struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	parser     *jwt.Parser
	now        func() time.Time
	logger     *slog.Logger
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config, logger *slog.Logger) (service.TokenService, error) {
	accessTTL, refreshTTL := time.Hour, 30*24*time.Hour
	if cfg.Auth != nil {
		if cfg.Auth.AccessTTL > 0 {
			accessTTL = cfg.Auth.AccessTTL
		}
		if cfg.Auth.RefreshTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTTL
		}
	}

	svc, err := newJWTService(cfg.SecretKey.Signing, accessTTL, refreshTTL, time.Now, logger)
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func newJWTService(secret string, accessTTL, refreshTTL time.Duration, now func() time.Time, logger *slog.Logger) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &jwtService{
		signingKey: []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(now),
		),
		now:    now,
		logger: logger,
	}, nil
}

// IssueTokens creates a new access token and refresh token for a given subject.
func (s *jwtService) IssueTokens(subject string) (*service.TokenPair, error) {
	now := s.now()
	pair := &service.TokenPair{
		AccessExpiresAt:  now.Add(s.accessTTL),
		RefreshExpiresAt: now.Add(s.refreshTTL),
	}

	var err error
	if pair.AccessToken, err = s.sign(subject, service.TokenKindAccess, pair.AccessExpiresAt); err != nil {
		return nil, err
	}
	if pair.RefreshToken, err = s.sign(subject, service.TokenKindRefresh, pair.RefreshExpiresAt); err != nil {
		return nil, err
	}

	return pair, nil
}

// VerifyToken checks signature, expiry and kind of tokenString.
func (s *jwtService) VerifyToken(tokenString string, expected service.TokenKind) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.signingKey, nil
	})
	if err != nil {
		s.logger.Debug("token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
	}

	if !token.Valid || claims.Subject == "" {
		return nil, domainerrors.ErrTokenInvalid
	}
	if claims.Kind != expected {
		s.logger.Debug("token kind mismatch",
			slog.String("expected", string(expected)),
			slog.String("actual", string(claims.Kind)),
		)

		return nil, domainerrors.ErrTokenInvalid
	}

	return claims, nil
}

// AccessTokenTTL returns the configured duration for access tokens.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

func (s *jwtService) sign(subject string, kind service.TokenKind, expiresAt time.Time) (string, error) {
	claims := &service.Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrTokenIssueFailed, err.Error())
	}

	return signed, nil
}
