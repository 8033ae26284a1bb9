package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "namevault/pkg/domain"
	dErrors "namevault/pkg/domain-errors"
)

// Claims carries the caller account in the token subject plus registered
// claims. The registrar core never sees tokens; it only receives the account.
type Claims struct {
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation. HS256 with a shared signing
// key; key distribution is a deployment concern.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewService(signingKey, issuer, audience string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// GenerateAccessToken mints a token whose subject is the account reference.
func (s *Service) GenerateAccessToken(account id.Account, expiresIn time.Duration) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})
	return newToken.SignedString(s.signingKey)
}

// ValidateToken parses and verifies a token, returning the caller account.
func (s *Service) ValidateToken(tokenString string) (id.Account, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.ZeroAccount, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return id.ZeroAccount, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return id.ZeroAccount, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Subject == "" {
		return id.ZeroAccount, dErrors.New(dErrors.CodeUnauthorized, "token has no subject")
	}
	return id.Account(claims.Subject), nil
}
