package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendingapi/internal/auth"
	"lendingapi/internal/entity"
	"lendingapi/internal/store/mocks"
	"lendingapi/internal/testutil"
	"lendingapi/internal/usecase"
)

func TestAuthHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	users := mocks.NewMockUserRepository(ctrl)
	handler := NewAuthHandler(users, testSecret)

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func()
		expectedStatus int
	}{
		{
			name: "success",
			body: map[string]string{
				"username": "newuser",
				"password": "Password123",
				"email":    "new@example.com",
			},
			setupMock: func() {
				users.EXPECT().
					GetByUsername(gomock.Any(), "newuser").
					Return(entity.User{}, usecase.ErrNotFound)
				users.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ interface{}, u *entity.User) error {
						assert.Equal(t, entity.UserTypeCustomer, u.Type)
						assert.Equal(t, []string{entity.RoleUser}, u.Roles)
						assert.NotEqual(t, "Password123", u.Password)
						u.ID = "new-user-id"
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			body:           "not json",
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing email",
			body: map[string]string{
				"username": "newuser",
				"password": "Password123",
			},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "weak password",
			body: map[string]string{
				"username": "newuser",
				"password": "123",
				"email":    "new@example.com",
			},
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "username already exists",
			body: map[string]string{
				"username": "testuser",
				"password": "Password123",
				"email":    "test@example.com",
			},
			setupMock: func() {
				users.EXPECT().
					GetByUsername(gomock.Any(), "testuser").
					Return(testutil.TestUser, nil)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			w := httptest.NewRecorder()
			r := testutil.NewRequest(http.MethodPost, "/v1/api/auth/register", tt.body)
			handler.Register(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	users := mocks.NewMockUserRepository(ctrl)
	handler := NewAuthHandler(users, testSecret)

	hash, err := auth.HashPassword("Password123")
	require.NoError(t, err)
	storedUser := testutil.TestUser
	storedUser.Password = hash

	t.Run("success returns a usable token", func(t *testing.T) {
		users.EXPECT().GetByUsername(gomock.Any(), "testuser").Return(storedUser, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/v1/api/auth/login",
			map[string]string{"username": "testuser", "password": "Password123"})
		handler.Login(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("wrong password", func(t *testing.T) {
		users.EXPECT().GetByUsername(gomock.Any(), "testuser").Return(storedUser, nil)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/v1/api/auth/login",
			map[string]string{"username": "testuser", "password": "WrongPassword1"})
		handler.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(entity.User{}, usecase.ErrNotFound)

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/v1/api/auth/login",
			map[string]string{"username": "ghost", "password": "Password123"})
		handler.Login(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodPost, "/v1/api/auth/login",
			map[string]string{"username": "testuser"})
		handler.Login(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
