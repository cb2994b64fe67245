package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims carries the user id in the standard "sub" claim.
type Claims struct {
	Role      authorization.UserRole `json:"role"`
	TokenType TokenType              `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID parses the subject. It returns 0 when the subject is not a positive
// integer.
func (c *Claims) UserID() uint {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type JWTService struct {
	secret           []byte
	method           *jwt.SigningMethodHMAC
	accessExpMinutes int
	refreshExpDays   int
}

// NewJWTService signs with HS256.
func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		method:           jwt.SigningMethodHS256,
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}
}

// NewJWTServiceWithAlgorithm signs and verifies with the named HMAC
// algorithm (HS256, HS384 or HS512). An empty name means HS256.
func NewJWTServiceWithAlgorithm(secret, algorithm string, accessExpMinutes, refreshExpDays int) (*JWTService, error) {
	method, err := HMACSigningMethod(algorithm)
	if err != nil {
		return nil, err
	}
	s := NewJWTService(secret, accessExpMinutes, refreshExpDays)
	s.method = method
	return s, nil
}

// HMACSigningMethod resolves an algorithm name through the jwt registry and
// rejects anything outside the HMAC family.
func HMACSigningMethod(algorithm string) (*jwt.SigningMethodHMAC, error) {
	if algorithm == "" {
		return jwt.SigningMethodHS256, nil
	}
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q: only HS256, HS384 and HS512 are allowed", algorithm)
	}
	return method, nil
}

// Algorithm returns the signing algorithm name.
func (s *JWTService) Algorithm() string {
	return s.method.Alg()
}

func (s *JWTService) sign(userID uint, role authorization.UserRole, tokenType TokenType, ttl time.Duration) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *JWTService) IssueAccessToken(userID uint, role authorization.UserRole) (string, error) {
	return s.sign(userID, role, TokenTypeAccess, time.Duration(s.accessExpMinutes)*time.Minute)
}

func (s *JWTService) IssueRefreshToken(userID uint, role authorization.UserRole) (string, error) {
	return s.sign(userID, role, TokenTypeRefresh, time.Duration(s.refreshExpDays)*24*time.Hour)
}

// Generate issues an access and refresh token for the user.
func (s *JWTService) Generate(userID uint, role authorization.UserRole) (*TokenPair, error) {
	access, err := s.IssueAccessToken(userID, role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(userID, role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessExpMinutes * 60),
	}, nil
}

// Verify checks signature, algorithm, expiry and the claim shape. Any failure
// yields (nil, false); parse errors are not exposed.
func (s *JWTService) Verify(tokenString string) (claims *Claims, ok bool) {
	defer func() {
		if recover() != nil {
			claims, ok = nil, false
		}
	}()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, false
	}

	c, isClaims := token.Claims.(*Claims)
	if !isClaims || c.UserID() == 0 || !c.Role.IsValid() {
		return nil, false
	}
	if c.TokenType != TokenTypeAccess && c.TokenType != TokenTypeRefresh {
		return nil, false
	}
	return c, true
}

// VerifyType is Verify plus a token_type check.
func (s *JWTService) VerifyType(tokenString string, want TokenType) (*Claims, bool) {
	claims, ok := s.Verify(tokenString)
	if !ok || claims.TokenType != want {
		return nil, false
	}
	return claims, true
}

// AccessExpMinutes returns the access token expiration time in minutes
func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}
