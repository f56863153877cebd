package auth

import (
	"time"

	"birdy/config"
	domainerrors "birdy/internal/domain/errors"
	"birdy/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	confirmationIssuer   = "birdy"
	confirmationAudience = "email-confirmation"
	defaultConfirmTTL    = 24 * time.Hour
)

// confirmationClaims binds a token to the email it was issued for.
type confirmationClaims struct {
	jwt.RegisteredClaims
}

type jwtConfirmationService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewConfirmationTokenService returns a ConfirmationTokenService issuing HS256 JWTs.
func NewConfirmationTokenService(cfg *config.Config) (service.ConfirmationTokenService, error) {
	if cfg == nil || cfg.SecretKey.Confirmation == "" {
		return nil, errors.New("confirmation secret key is not configured")
	}

	ttl := defaultConfirmTTL
	if cfg.Auth != nil && cfg.Auth.ConfirmationTTL > 0 {
		ttl = cfg.Auth.ConfirmationTTL
	}

	return &jwtConfirmationService{
		secret: []byte(cfg.SecretKey.Confirmation),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token whose subject is the email.
func (s *jwtConfirmationService) Issue(email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := confirmationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    confirmationIssuer,
			Audience:  jwt.ClaimStrings{confirmationAudience},
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to sign confirmation token")
	}

	return token, expiresAt, nil
}

// Verify checks signature, audience, expiry and the bound email.
func (s *jwtConfirmationService) Verify(email, token string) error {
	claims := &confirmationClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(confirmationIssuer),
		jwt.WithAudience(confirmationAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		// The signature is verified before claims, so an expired token is authentic.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domainerrors.ErrConfirmationExpired
		}

		return domainerrors.ErrInvalidLink.WithDetails(err.Error())
	}

	if claims.Subject != email {
		return domainerrors.ErrInvalidLink.WithDetails("token was issued for another email")
	}

	return nil
}
