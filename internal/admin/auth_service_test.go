package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"guestbook/internal/common"
	"guestbook/internal/dbmysql"
)

func activeAdmin(t *testing.T, email, password string) *dbmysql.AdminUser {
	t.Helper()
	hash, err := common.HashPassword(password)
	require.NoError(t, err)
	return &dbmysql.AdminUser{
		AdminID:      1,
		Email:        email,
		PasswordHash: hash,
		Status:       "active",
	}
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockAdminRepository(ctrl)
	svc := NewAuthService(repo)

	admin := activeAdmin(t, "host@example.com", "secret123")
	repo.EXPECT().ByEmail(gomock.Any(), "host@example.com").Return(admin, nil)
	repo.EXPECT().TouchLogin(gomock.Any(), uint64(1), gomock.Any()).Return(nil)

	token, err := svc.Login(context.Background(), "host@example.com", "secret123")
	require.NoError(t, err)

	claims, err := common.ValidToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), claims.AdminID)
	assert.Equal(t, "host@example.com", claims.Email)
}

func TestLogin_NormalizesEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockAdminRepository(ctrl)
	svc := NewAuthService(repo)

	admin := activeAdmin(t, "host@example.com", "secret123")
	repo.EXPECT().ByEmail(gomock.Any(), "host@example.com").Return(admin, nil)
	repo.EXPECT().TouchLogin(gomock.Any(), uint64(1), gomock.Any()).Return(nil)

	_, err := svc.Login(context.Background(), "  Host@Example.COM ", "secret123")
	assert.NoError(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockAdminRepository(ctrl)
	svc := NewAuthService(repo)

	admin := activeAdmin(t, "host@example.com", "secret123")
	repo.EXPECT().ByEmail(gomock.Any(), "host@example.com").Return(admin, nil)

	_, err := svc.Login(context.Background(), "host@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockAdminRepository(ctrl)
	svc := NewAuthService(repo)

	repo.EXPECT().ByEmail(gomock.Any(), "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	// same error as a wrong password, account existence stays private
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockAdminRepository(ctrl)
	svc := NewAuthService(repo)

	admin := activeAdmin(t, "host@example.com", "secret123")
	admin.Status = "disabled"
	repo.EXPECT().ByEmail(gomock.Any(), "host@example.com").Return(admin, nil)

	_, err := svc.Login(context.Background(), "host@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLogin_TouchLoginFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockAdminRepository(ctrl)
	svc := NewAuthService(repo)

	admin := activeAdmin(t, "host@example.com", "secret123")
	repo.EXPECT().ByEmail(gomock.Any(), "host@example.com").Return(admin, nil)
	repo.EXPECT().TouchLogin(gomock.Any(), uint64(1), gomock.Any()).Return(errors.New("db hiccup"))

	token, err := svc.Login(context.Background(), "host@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_InputValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockAdminRepository(ctrl)
	svc := NewAuthService(repo)

	_, err := svc.Login(context.Background(), "", "secret123")
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), "not-an-email", "secret123")
	assert.Error(t, err)

	_, err = svc.Login(context.Background(), "host@example.com", "")
	assert.Error(t, err)
}

func TestLogin_TouchLoginTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockAdminRepository(ctrl)

	fixed := time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)
	svc := &authService{repo: repo, now: func() time.Time { return fixed }}

	admin := activeAdmin(t, "host@example.com", "secret123")
	repo.EXPECT().ByEmail(gomock.Any(), "host@example.com").Return(admin, nil)
	repo.EXPECT().TouchLogin(gomock.Any(), uint64(1), fixed).Return(nil)

	_, err := svc.Login(context.Background(), "host@example.com", "secret123")
	assert.NoError(t, err)
}
