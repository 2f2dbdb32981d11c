package service

import (
	"context"
	"errors"
	"testing"

	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/config"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/dto"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/license"
	"github.com/KaizenStudioDev/proyecto-inventario-web-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (AuthService, *stubUserRepo) {
	users := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(users, license.NewGate(), cfg), users
}

func seedUser(t *testing.T, users *stubUserRepo, email, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{Email: email, PasswordHash: string(hash), Active: true}
	require.NoError(t, users.Create(context.Background(), nil, u))
	require.NoError(t, users.CreateProfile(context.Background(), nil, &model.Profile{
		UserID: u.ID, Role: role, FullName: "Test User", Theme: "light", Locale: "es",
	}))
	return u
}

func TestLogin(t *testing.T) {
	svc, users := newAuthFixture()
	seedUser(t, users, "ana@opero.local", "s3cret-pass", model.RoleVendedor)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@opero.local", Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleVendedor, resp.User.Role)
	assert.Empty(t, resp.User.DemoTier)

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@opero.local", Password: "wrong",
	})
	assert.EqualError(t, err, "invalid credentials")

	_, err = svc.Login(context.Background(), dto.LoginRequest{
		Email: "nobody@opero.local", Password: "s3cret-pass",
	})
	assert.EqualError(t, err, "invalid credentials")
}

func TestSignup(t *testing.T) {
	svc, users := newAuthFixture()

	resp, err := svc.Signup(context.Background(), dto.SignupRequest{
		Email: "new@opero.local", Password: "longenough", FullName: "Nueva Cuenta",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleVendedor, resp.User.Role)
	assert.Equal(t, "Nueva Cuenta", resp.User.FullName)
	assert.Equal(t, "light", resp.User.Theme)
	assert.Equal(t, "es", resp.User.Locale)

	// User and profile were both persisted.
	u, err := users.FindByEmail(context.Background(), "new@opero.local")
	require.NoError(t, err)
	_, err = users.FindProfileByUserID(context.Background(), u.ID)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), dto.SignupRequest{
		Email: "new@opero.local", Password: "longenough", FullName: "Duplicada",
	})
	assert.EqualError(t, err, "email already registered")
}

func TestResolveProfileFailOpen(t *testing.T) {
	svc, users := newAuthFixture()
	userID := uuid.New()

	// No profile row: the resolver substitutes the read-only tester default
	// instead of failing.
	resp := svc.ResolveProfile(context.Background(), userID, "ana@opero.local")
	require.NotNil(t, resp)
	assert.Equal(t, model.RoleTester, resp.Role)
	assert.Equal(t, "ana@opero.local", resp.Email)

	// Same when the fetch itself errors.
	users.profileErr = errors.New("connection refused")
	resp = svc.ResolveProfile(context.Background(), userID, "ana@opero.local")
	require.NotNil(t, resp)
	assert.Equal(t, model.RoleTester, resp.Role)
}

func TestResolveProfileDemoTier(t *testing.T) {
	svc, users := newAuthFixture()
	u := seedUser(t, users, "basic@demo.com", "demo1234", model.RoleVendedor)

	resp := svc.ResolveProfile(context.Background(), u.ID, u.Email)
	assert.Equal(t, string(license.TierBasic), resp.DemoTier)

	u2 := seedUser(t, users, "enterprise@demo.com", "demo1234", model.RoleAdmin)
	resp = svc.ResolveProfile(context.Background(), u2.ID, u2.Email)
	assert.Equal(t, string(license.TierEnterprise), resp.DemoTier)
}

func TestRefresh(t *testing.T) {
	svc, users := newAuthFixture()
	u := seedUser(t, users, "ana@opero.local", "s3cret-pass", model.RoleAdmin)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@opero.local", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, model.RoleAdmin, refreshed.User.Role)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.EqualError(t, err, "refresh token invalid or expired")

	// A deactivated account cannot refresh.
	require.NoError(t, users.Deactivate(context.Background(), u.ID))
	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.EqualError(t, err, "user not found or inactive")
}

func TestUpdateProfile(t *testing.T) {
	svc, users := newAuthFixture()
	u := seedUser(t, users, "ana@opero.local", "s3cret-pass", model.RoleVendedor)

	dark := "dark"
	name := "Ana Paredes"
	resp, err := svc.UpdateProfile(context.Background(), u.ID, dto.UpdateProfileRequest{
		FullName: &name, Theme: &dark,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Paredes", resp.FullName)
	assert.Equal(t, "dark", resp.Theme)
	assert.Equal(t, "es", resp.Locale) // untouched field keeps its value

	_, err = svc.UpdateProfile(context.Background(), uuid.New(), dto.UpdateProfileRequest{FullName: &name})
	assert.EqualError(t, err, "profile not found")
}

func TestListUsersMissingProfile(t *testing.T) {
	svc, users := newAuthFixture()
	seedUser(t, users, "ana@opero.local", "s3cret-pass", model.RoleAdmin)

	// A user without a profile row lists with the tester fallback role.
	orphan := &model.User{Email: "orphan@opero.local", PasswordHash: "x", Active: true}
	require.NoError(t, users.Create(context.Background(), nil, orphan))

	list, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	byEmail := map[string]dto.UserResponse{}
	for _, item := range list {
		byEmail[item.Email] = item
	}
	assert.Equal(t, model.RoleAdmin, byEmail["ana@opero.local"].Role)
	assert.Equal(t, model.RoleTester, byEmail["orphan@opero.local"].Role)
}
