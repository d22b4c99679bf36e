package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapter "shopfront/internal/storefront/adapters/session"
	"shopfront/internal/storefront/apiclient"
	"shopfront/internal/storefront/app/dto"
	"shopfront/internal/storefront/app/services"
)

var ErrConnectionRefused = errors.New("connection refused")

func TestLogin(t *testing.T) {
	loginReq := &dto.LoginRequest{Username: "asha", Password: "s3cret"}

	tests := []struct {
		name        string
		req         *dto.LoginRequest
		setupMock   func(m *mockAPIClient)
		expectedErr error
		wantAccess  string
		wantRefresh string
	}{
		{
			name: "success - tokens saved",
			req:  loginReq,
			setupMock: func(m *mockAPIClient) {
				m.On("Do", mock.Anything, http.MethodPost, services.PathLogin, loginReq, mock.Anything, 1).
					Run(respond(`{"access":"A1","refresh":"R1"}`)).Return(nil).Once()
			},
			wantAccess:  "A1",
			wantRefresh: "R1",
		},
		{
			name:        "error - empty password",
			req:         &dto.LoginRequest{Username: "asha"},
			setupMock:   func(*mockAPIClient) {},
			expectedErr: services.ErrInvalidInput,
			wantAccess:  "OLD",
			wantRefresh: "OLDR",
		},
		{
			name: "error - bad credentials",
			req:  loginReq,
			setupMock: func(m *mockAPIClient) {
				m.On("Do", mock.Anything, http.MethodPost, services.PathLogin, loginReq, mock.Anything, 1).
					Return(&apiclient.HTTPError{StatusCode: http.StatusBadRequest}).Once()
			},
			expectedErr: services.ErrInvalidCredentials,
		},
		{
			name: "error - 401 from login form",
			req:  loginReq,
			setupMock: func(m *mockAPIClient) {
				m.On("Do", mock.Anything, http.MethodPost, services.PathLogin, loginReq, mock.Anything, 1).
					Return(&apiclient.HTTPError{StatusCode: http.StatusUnauthorized}).Once()
			},
			expectedErr: services.ErrInvalidCredentials,
		},
		{
			name: "error - response without refresh token",
			req:  loginReq,
			setupMock: func(m *mockAPIClient) {
				m.On("Do", mock.Anything, http.MethodPost, services.PathLogin, loginReq, mock.Anything, 1).
					Run(respond(`{"access":"A1"}`)).Return(nil).Once()
			},
			expectedErr: services.ErrMalformedLogin,
		},
		{
			name: "error - network",
			req:  loginReq,
			setupMock: func(m *mockAPIClient) {
				m.On("Do", mock.Anything, http.MethodPost, services.PathLogin, loginReq, mock.Anything, 1).
					Return(&apiclient.NetworkError{Method: "POST", URL: "x", Err: ErrConnectionRefused}).Once()
			},
			expectedErr: apiclient.ErrNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			client := new(mockAPIClient)
			tt.setupMock(client)

			store := adapter.NewMemoryStore()
			require.NoError(t, store.SaveSession(ctx, "OLD", "OLDR"))

			err := services.NewAuthService(client, store).Login(ctx, tt.req)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			access, _ := store.AccessToken(ctx)
			refresh, _ := store.RefreshToken(ctx)
			assert.Equal(t, tt.wantAccess, access)
			assert.Equal(t, tt.wantRefresh, refresh)

			client.AssertExpectations(t)
		})
	}
}

func TestRegister(t *testing.T) {
	valid := func() *dto.RegisterRequest {
		return &dto.RegisterRequest{
			Username:        "asha",
			Email:           "asha@example.com",
			Password:        "s3cret",
			PasswordConfirm: "s3cret",
		}
	}

	t.Run("success without tokens keeps session empty", func(t *testing.T) {
		ctx := context.Background()
		client := new(mockAPIClient)
		req := valid()
		client.On("Do", mock.Anything, http.MethodPost, services.PathRegister, req, mock.Anything, 1).
			Run(respond(`{"message":"You have successfully registered.","status":"success"}`)).Return(nil).Once()

		store := adapter.NewMemoryStore()
		resp, err := services.NewAuthService(client, store).Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "success", resp.Status)

		ok, err := services.NewAuthService(client, store).LoggedIn(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		client.AssertExpectations(t)
	})

	t.Run("success with tokens logs in", func(t *testing.T) {
		ctx := context.Background()
		client := new(mockAPIClient)
		req := valid()
		client.On("Do", mock.Anything, http.MethodPost, services.PathRegister, req, mock.Anything, 1).
			Run(respond(`{"message":"ok","access":"A1","refresh":"R1"}`)).Return(nil).Once()

		store := adapter.NewMemoryStore()
		svc := services.NewAuthService(client, store)
		_, err := svc.Register(ctx, req)
		require.NoError(t, err)

		ok, err := svc.LoggedIn(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	invalid := []struct {
		name   string
		mutate func(r *dto.RegisterRequest)
	}{
		{name: "empty username", mutate: func(r *dto.RegisterRequest) { r.Username = " " }},
		{name: "bad email", mutate: func(r *dto.RegisterRequest) { r.Email = "asha" }},
		{name: "password mismatch", mutate: func(r *dto.RegisterRequest) { r.PasswordConfirm = "other" }},
		{name: "empty password", mutate: func(r *dto.RegisterRequest) { r.Password, r.PasswordConfirm = "", "" }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockAPIClient)
			req := valid()
			tt.mutate(req)

			_, err := services.NewAuthService(client, adapter.NewMemoryStore()).Register(context.Background(), req)
			assert.ErrorIs(t, err, services.ErrInvalidInput)
			client.AssertNotCalled(t, "Do")
		})
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	client := new(mockAPIClient)
	store := adapter.NewMemoryStore()
	require.NoError(t, store.SaveSession(ctx, "A1", "R1"))

	svc := services.NewAuthService(client, store)
	require.NoError(t, svc.Logout(ctx))

	ok, err := svc.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	client.AssertNotCalled(t, "Do")
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("request", func(t *testing.T) {
		client := new(mockAPIClient)
		client.On("Do", mock.Anything, http.MethodPost, services.PathPasswordReset,
			&dto.PasswordResetRequest{Email: "asha@example.com"}, mock.Anything, 1).
			Run(respond(`{"status":"success","message":"sent"}`)).Return(nil).Once()

		resp, err := services.NewAuthService(client, adapter.NewMemoryStore()).RequestPasswordReset(ctx, "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, "sent", resp.Message)
		client.AssertExpectations(t)
	})

	t.Run("request with bad email", func(t *testing.T) {
		client := new(mockAPIClient)
		_, err := services.NewAuthService(client, adapter.NewMemoryStore()).RequestPasswordReset(ctx, "nope")
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	})

	t.Run("confirm escapes path segments", func(t *testing.T) {
		client := new(mockAPIClient)
		req := &dto.PasswordResetConfirmRequest{NewPassword: "n3w", NewPasswordConfirm: "n3w"}
		client.On("Do", mock.Anything, http.MethodPost, "/api/password_reset_confirm/MQ/abc%2Fdef/", req, mock.Anything, 1).
			Run(respond(`{"status":"success"}`)).Return(nil).Once()

		resp, err := services.NewAuthService(client, adapter.NewMemoryStore()).
			ConfirmPasswordReset(ctx, "MQ", "abc/def", req)
		require.NoError(t, err)
		assert.Equal(t, "success", resp.Status)
		client.AssertExpectations(t)
	})

	t.Run("confirm mismatch", func(t *testing.T) {
		client := new(mockAPIClient)
		_, err := services.NewAuthService(client, adapter.NewMemoryStore()).ConfirmPasswordReset(ctx, "MQ", "t",
			&dto.PasswordResetConfirmRequest{NewPassword: "a", NewPasswordConfirm: "b"})
		assert.ErrorIs(t, err, services.ErrInvalidInput)
		client.AssertNotCalled(t, "Do")
	})
}
