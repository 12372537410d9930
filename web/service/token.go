package service

import (
	"errors"
	"time"

	"gerisafe/config"

	"github.com/golang-jwt/jwt/v5"
)

// registrationTokenMaxAge is the validity window of a confirmation link.
// Tokens older than this are rejected and no account is created.
const registrationTokenMaxAge = 3600 * time.Second

var (
	ErrTokenExpired = errors.New("confirmation token has expired")
	ErrTokenInvalid = errors.New("confirmation token is invalid")
)

// PendingRegistration carries the registration form fields between the
// register handler and email confirmation. The password is already hashed;
// no user row exists until the token is confirmed.
type PendingRegistration struct {
	Name         string
	Profession   string
	Department   string
	Email        string
	PasswordHash string
}

type registrationClaims struct {
	jwt.RegisteredClaims
	Name         string `json:"name"`
	Profession   string `json:"profession"`
	Department   string `json:"department"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// TokenService mints and verifies the signed, time-limited confirmation
// tokens embedded in registration email links.
type TokenService struct{}

func (s *TokenService) GeneratePendingRegistration(reg *PendingRegistration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, registrationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(registrationTokenMaxAge)),
		},
		Name:         reg.Name,
		Profession:   reg.Profession,
		Department:   reg.Department,
		Email:        reg.Email,
		PasswordHash: reg.PasswordHash,
	})
	return token.SignedString([]byte(config.GetSecret()))
}

func (s *TokenService) ParsePendingRegistration(tokenString string) (*PendingRegistration, error) {
	claims := &registrationClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(config.GetSecret()), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return &PendingRegistration{
		Name:         claims.Name,
		Profession:   claims.Profession,
		Department:   claims.Department,
		Email:        claims.Email,
		PasswordHash: claims.PasswordHash,
	}, nil
}
