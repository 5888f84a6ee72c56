package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lendingapi/internal/auth"
	"lendingapi/internal/entity"
)

// TestUser is a fixture customer account.
var TestUser = entity.User{
	ID:        "7c9cbd18-25c5-4a3f-9a6e-111111111111",
	Username:  "testuser",
	Email:     "test@example.com",
	Password:  "hashedpassword",
	Type:      entity.UserTypeCustomer,
	Roles:     []string{entity.RoleUser},
	CreatedAt: time.Now(),
	UpdatedAt: time.Now(),
}

// TestAdminUser is a fixture admin account.
var TestAdminUser = entity.User{
	ID:        "7c9cbd18-25c5-4a3f-9a6e-222222222222",
	Username:  "adminuser",
	Email:     "admin@example.com",
	Password:  "hashedpassword",
	Type:      entity.UserTypeAdmin,
	Roles:     []string{entity.RoleUser, entity.RoleAdmin},
	CreatedAt: time.Now(),
	UpdatedAt: time.Now(),
}

// TestBook is a fixture book with copies on the shelf.
var TestBook = entity.Book{
	ID:         "7c9cbd18-25c5-4a3f-9a6e-333333333333",
	Title:      "Dracula",
	WriterName: "Bram Stoker",
	CategoryID: "7c9cbd18-25c5-4a3f-9a6e-444444444444",
	Amount:     3,
	CreatedAt:  time.Now(),
	UpdatedAt:  time.Now(),
}

// GenerateTestToken returns a valid JWT for the given user.
func GenerateTestToken(secret string, user entity.User) string {
	token, _, _ := auth.GenerateToken(secret, user.ID, user.Username, user.Roles, time.Hour)
	return token
}

// GenerateExpiredToken returns a JWT that expired an hour ago.
func GenerateExpiredToken(secret string, user entity.User) string {
	c := auth.Claims{
		Sub:      user.ID,
		Username: user.Username,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest creates an HTTP request with an optional JSON body.
func NewRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRequestWithAuth creates an HTTP request carrying a bearer token.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}
