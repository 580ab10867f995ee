package services

import (
	"context"
	"securix/models"
	"securix/repositories"
	"securix/storage"
	"securix/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, storage.Mirror) {
	t.Helper()
	clock := utils.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mirror := storage.NewMemoryMirror()
	svc := NewAuthService(repositories.NewUserRepository(), utils.NewJWTService("test-secret"), NewMockNotifier(), mirror, clock)
	return svc, mirror
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	response, err := svc.Register(ctx, models.RegisterRequest{
		Email:    "a@x.kz",
		Phone:    "+77011234567",
		Name:     "Aigerim",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, response.User.ID)
	assert.Equal(t, "a@x.kz", response.User.Email)
	assert.Equal(t, "+77011234567", response.User.Phone)
	assert.Equal(t, "Aigerim", response.User.Name)
	assert.Equal(t, models.RoleClient, response.User.Role)
	assert.Empty(t, response.User.Password)
	assert.NotEmpty(t, response.AccessToken)
	assert.Equal(t, "Bearer", response.TokenType)

	require.NotNil(t, svc.CurrentUser())
	assert.True(t, svc.IsAuthenticated())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	req := models.RegisterRequest{Email: "a@x.kz", Phone: "+77011234567", Name: "Aigerim", Password: "secret123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	req.Phone = "+77017654321"
	_, err = svc.Register(ctx, req)
	require.Error(t, err)

	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", serviceErr.Code)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"bad email", models.RegisterRequest{Email: "nope", Phone: "+77011234567", Name: "Aigerim", Password: "secret123"}},
		{"bad phone", models.RegisterRequest{Email: "a@x.kz", Phone: "abc", Name: "Aigerim", Password: "secret123"}},
		{"short password", models.RegisterRequest{Email: "a@x.kz", Phone: "+77011234567", Name: "Aigerim", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.Error(t, err)
		})
	}
}

func TestLoginFabricatesUnknownUser(t *testing.T) {
	svc, _ := newAuthService(t)

	response, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "new@x.kz",
		Password: "whatever1",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@x.kz", response.User.Email)
	assert.NotEmpty(t, response.User.ID)
	assert.True(t, svc.IsAuthenticated())
}

func TestLoginVerifiesKnownPassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{
		Email: "a@x.kz", Phone: "+77011234567", Name: "Aigerim", Password: "secret123",
	})
	require.NoError(t, err)
	svc.Logout(ctx)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "a@x.kz", Password: "wrongpass"})
	require.Error(t, err)
	assert.False(t, svc.IsAuthenticated())

	_, err = svc.Login(ctx, models.LoginRequest{Email: "a@x.kz", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, svc.IsAuthenticated())
}

func TestLoginMalformedCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "secret123"})
	require.Error(t, err)

	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", serviceErr.Code)
}

func TestRefreshTokens(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, models.RegisterRequest{
		Email: "a@x.kz", Phone: "+77011234567", Name: "Aigerim", Password: "secret123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, registered.AccessToken, refreshed.AccessToken)

	// Access tokens are not accepted in place of refresh tokens.
	_, err = svc.RefreshTokens(ctx, registered.AccessToken)
	require.Error(t, err)
	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", serviceErr.Code)

	_, err = svc.RefreshTokens(ctx, "garbage")
	assert.Error(t, err)
}

func TestLogout(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{Email: "a@x.kz", Password: "secret123"})
	require.NoError(t, err)

	svc.Logout(ctx)
	assert.Nil(t, svc.CurrentUser())

	// Logout is unconditional and repeatable.
	svc.Logout(ctx)
	assert.False(t, svc.IsAuthenticated())
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, models.UpdateProfileRequest{Name: "New Name"})
	require.Error(t, err)
	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", serviceErr.Code)

	_, err = svc.Register(ctx, models.RegisterRequest{
		Email: "a@x.kz", Phone: "+77011234567", Name: "Aigerim", Password: "secret123",
	})
	require.NoError(t, err)

	user, err := svc.UpdateProfile(ctx, models.UpdateProfileRequest{
		Name: "Aigerim S.",
		EmergencyContacts: []models.EmergencyContact{
			{Name: "Dana", Phone: "+77017654321", Label: "sister", Consent: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Aigerim S.", user.Name)
	assert.Equal(t, "a@x.kz", user.Email) // untouched fields survive the merge
	require.Len(t, user.EmergencyContacts, 1)
	assert.NotEmpty(t, user.EmergencyContacts[0].ID)
}

func TestUpdateProfilePhoneConflict(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, models.RegisterRequest{
		Email: "a@x.kz", Phone: "+77011234567", Name: "Aigerim", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, models.RegisterRequest{
		Email: "d@x.kz", Phone: "+77017654321", Name: "Dana", Password: "secret123",
	})
	require.NoError(t, err)

	// Dana is the current session; taking Aigerim's number is rejected.
	_, err = svc.UpdateProfile(ctx, models.UpdateProfileRequest{Phone: "+7 701 123 4567"})
	require.Error(t, err)
	serviceErr, ok := utils.GetServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", serviceErr.Code)

	// Re-submitting your own number is not a conflict.
	_, err = svc.UpdateProfile(ctx, models.UpdateProfileRequest{Phone: "+77017654321"})
	assert.NoError(t, err)
}

func TestSessionMirroredAndRestored(t *testing.T) {
	svc, mirror := newAuthService(t)
	ctx := context.Background()

	response, err := svc.Register(ctx, models.RegisterRequest{
		Email: "a@x.kz", Phone: "+77011234567", Name: "Aigerim", Password: "secret123",
	})
	require.NoError(t, err)

	// A new service over the same mirror restores the session slot.
	clock := utils.NewFakeClock(time.Now())
	restored := NewAuthService(repositories.NewUserRepository(), utils.NewJWTService("test-secret"), NewMockNotifier(), mirror, clock)
	require.NotNil(t, restored.CurrentUser())
	assert.Equal(t, response.User.ID, restored.CurrentUser().ID)

	// Logout clears the mirrored slot too.
	svc.Logout(ctx)
	again := NewAuthService(repositories.NewUserRepository(), utils.NewJWTService("test-secret"), NewMockNotifier(), mirror, clock)
	assert.Nil(t, again.CurrentUser())
}

func TestVerificationCodeRoundTrip(t *testing.T) {
	svc, mirror := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.SendVerificationCode(ctx, models.SendCodeRequest{Phone: "+77011234567"}))

	var code string
	found, err := mirror.Get(ctx, storage.KeySMSCodePrefix+"+77011234567", &code)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, code, 6)

	err = svc.VerifyCode(ctx, models.VerifyCodeRequest{Phone: "+77011234567", Code: "000001"})
	assert.Error(t, err)

	err = svc.VerifyCode(ctx, models.VerifyCodeRequest{Phone: "+7 701 123 4567", Code: code})
	require.NoError(t, err)

	// Codes are single-use.
	err = svc.VerifyCode(ctx, models.VerifyCodeRequest{Phone: "+77011234567", Code: code})
	assert.Error(t, err)
}
