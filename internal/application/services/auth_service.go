package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/infrastructure/config"
	"github.com/promanage/core/internal/ports"
)

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService hashes passwords and mints and verifies identity tokens
type AuthService struct {
	jwtConfig  config.JWTConfig
	bcryptCost int
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates a new auth service
func NewAuthService(jwtConfig config.JWTConfig, bcryptCost int) *AuthService {
	return &AuthService{
		jwtConfig:  jwtConfig,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// HashPassword returns a salted bcrypt hash of plain
func (s *AuthService) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches hash
func (s *AuthService) VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// VerifyDummyPassword spends the same bcrypt work as VerifyPassword against a
// throwaway hash, so a login for an unknown email costs as much as a wrong password.
func (s *AuthService) VerifyDummyPassword(plain string) {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("promanage-unknown-account"), s.bcryptCost)
		if err != nil {
			return
		}
		s.dummyHash = hash
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(plain))
}

// IssueToken signs the identity into an HS256 token
func (s *AuthService) IssueToken(identity entities.Identity) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: identity.UserID.Hex(),
		Name:   identity.Name,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   identity.UserID.Hex(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// VerifyToken validates a token and returns the identity it carries.
// Every failure is reported as Unauthenticated.
func (s *AuthService) VerifyToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtConfig.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.jwtConfig.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.Unauthenticated("Authentication invalid"), err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, entities.Unauthenticated("Authentication invalid")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, entities.Unauthenticated("Authentication invalid")
	}

	return &ports.Claims{
		UserID: userID,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}
