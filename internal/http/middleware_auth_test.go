package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"lendingapi/internal/entity"
	"lendingapi/internal/testutil"
)

func TestAuthMiddleware(t *testing.T) {
	var gotUserID string
	var gotRoles []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFrom(r)
		gotRoles = RolesFrom(r)
		w.WriteHeader(http.StatusOK)
	})
	protected := AuthMiddleware(testSecret)(next)

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"valid token", testutil.GenerateTestToken(testSecret, testutil.TestUser), http.StatusOK},
		{"missing token", "", http.StatusUnauthorized},
		{"garbage token", "not.a.token", http.StatusUnauthorized},
		{"expired token", testutil.GenerateExpiredToken(testSecret, testutil.TestUser), http.StatusUnauthorized},
		{"wrong secret", testutil.GenerateTestToken("other-secret", testutil.TestUser), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID, gotRoles = "", nil

			w := httptest.NewRecorder()
			r := testutil.NewRequestWithAuth(http.MethodGet, "/v1/api/books", nil, tt.token)
			protected.ServeHTTP(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, testutil.TestUser.ID, gotUserID)
				assert.Equal(t, testutil.TestUser.Roles, gotRoles)
			} else {
				assert.Empty(t, gotUserID)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	adminOnly := AuthMiddleware(testSecret)(RequireRole(entity.RoleAdmin)(next))

	t.Run("admin role passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		token := testutil.GenerateTestToken(testSecret, testutil.TestAdminUser)
		adminOnly.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/v1/api/book", nil, token))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("customer role is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		token := testutil.GenerateTestToken(testSecret, testutil.TestUser)
		adminOnly.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/v1/api/book", nil, token))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no token is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		adminOnly.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/v1/api/book", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
