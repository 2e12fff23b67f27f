package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role is the closed set of roles a principal can hold.
type Role string

const (
	RoleStudent Role = "student"
	RoleVendor  Role = "vendor"
	RoleAdmin   Role = "admin"
	RoleCanteen Role = "canteen"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleVendor, RoleAdmin, RoleCanteen:
		return true
	}
	return false
}

// Principal is the authenticated caller attached to every request.
type Principal struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	VendorType string `json:"vendorType,omitempty"`
}

// TokenManager issues and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(strings.TrimSpace(secret)), ttl: ttl, now: time.Now}
}

// Issue signs a token carrying the principal.
func (m *TokenManager) Issue(p Principal) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := m.now()
	claims := jwt.MapClaims{
		"id":   p.ID,
		"role": string(p.Role),
		"name": p.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}
	if p.Type != "" {
		claims["type"] = p.Type
	}
	if p.VendorType != "" {
		claims["vendorType"] = p.VendorType
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a token string and returns the principal it carries.
func (m *TokenManager) Parse(tokenStr string) (*Principal, error) {
	if len(m.secret) == 0 {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	if id == "" || !Role(role).Valid() {
		return nil, fmt.Errorf("invalid token claims")
	}

	p := &Principal{ID: id, Role: Role(role)}
	p.Name, _ = claims["name"].(string)
	p.Type, _ = claims["type"].(string)
	p.VendorType, _ = claims["vendorType"].(string)
	return p, nil
}

// ExtractBearer strips an optional "Bearer " prefix from an Authorization header.
func ExtractBearer(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
