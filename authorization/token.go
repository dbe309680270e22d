package authorization

import (
	"fmt"
	"time"

	"github.com/cristalhq/jwt/v4"

	"stayvista_service/domain"
	"stayvista_service/errors"
)

// Session credentials are stateless, expiry is the only bound on their
// validity.
const TokenLifetime = 365 * 24 * time.Hour

type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

func (manager *TokenManager) Issue(email string) (string, time.Time, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, manager.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	builder := jwt.NewBuilder(signer)

	now := time.Now().UTC()
	claims := &domain.Claims{
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: now.Add(TokenLifetime),
	}

	token, err := builder.Build(claims)
	if err != nil {
		return "", time.Time{}, err
	}

	return token.String(), claims.ExpiresAt, nil
}

func (manager *TokenManager) Verify(tokenString string) (*domain.Claims, error) {
	verifier, err := jwt.NewVerifierHS(jwt.HS256, manager.secret)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse([]byte(tokenString), verifier)
	if err != nil {
		return nil, fmt.Errorf(errors.InvalidTokenError)
	}

	var claims domain.Claims
	if err := jwt.ParseClaims(token.Bytes(), verifier, &claims); err != nil {
		return nil, fmt.Errorf(errors.InvalidTokenError)
	}

	if claims.Email == "" || !claims.ExpiresAt.After(time.Now().UTC()) {
		return nil, fmt.Errorf(errors.InvalidTokenError)
	}

	return &claims, nil
}
