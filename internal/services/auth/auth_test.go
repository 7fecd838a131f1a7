package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matricare/matricare-backend/internal/lib/jwt"
	"github.com/matricare/matricare-backend/internal/lib/password"
	"github.com/matricare/matricare-backend/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRegister(t *testing.T) {
	users := new(UsersMock)
	users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "priya" &&
			u.Role == "user" &&
			u.SubscriptionPlan == "basic" &&
			u.SubscriptionStatus == "inactive" &&
			u.PasswordHash != "secret-pass"
	})).Return("uid-1", nil)

	svc := NewAuthService(users, jwt.NewJWTMaker("secret", time.Hour))
	uid, err := svc.Register(context.Background(), "priya@example.com", "priya", "secret-pass", "pregnancy", "vegetarian")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	users.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	hash, err := password.GetHash("secret-pass")
	require.NoError(t, err)

	tests := []struct {
		name      string
		setupMock func(*UsersMock)
		password  string
		wantErr   bool
		wantRole  string
	}{
		{
			name: "успешный вход",
			setupMock: func(m *UsersMock) {
				m.On("GetUserByUsername", mock.Anything, "priya").Return(&models.User{
					UID: "uid-1", Username: "priya", PasswordHash: hash, Role: "user",
				}, nil)
			},
			password: "secret-pass",
			wantRole: "user",
		},
		{
			name: "неверный пароль",
			setupMock: func(m *UsersMock) {
				m.On("GetUserByUsername", mock.Anything, "priya").Return(&models.User{
					UID: "uid-1", Username: "priya", PasswordHash: hash, Role: "user",
				}, nil)
			},
			password: "wrong-pass",
			wantErr:  true,
		},
		{
			name: "пользователь не найден",
			setupMock: func(m *UsersMock) {
				m.On("GetUserByUsername", mock.Anything, "priya").Return(nil, errors.New("no rows"))
			},
			password: "secret-pass",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMock(users)

			svc := NewAuthService(users, jwt.NewJWTMaker("secret", time.Hour))
			token, role, err := svc.Login(context.Background(), "priya", tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.wantRole, role)

			claims, err := svc.ValidateToken(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, "priya", claims.Username)
			assert.Equal(t, "uid-1", claims.UserUID)
		})
	}
}
