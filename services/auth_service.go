package services

import (
	"context"
	"securix/models"
	"securix/repositories"
	"securix/storage"
	"securix/utils"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Simulated backend latencies, matching what the client app fakes.
const (
	loginDelay         = 1000 * time.Millisecond
	registerDelay      = 1500 * time.Millisecond
	updateProfileDelay = 500 * time.Millisecond
)

// AuthService owns the single current-session slot. The credential check is
// a mock: any well-formed login is accepted and a user record is fabricated
// when none exists yet. Every mutation mirrors the slot so a restart
// restores the session.
type AuthService struct {
	userRepo        *repositories.UserRepository
	jwtService      *utils.JWTService
	passwordService *utils.PasswordService
	validator       *utils.ValidationService
	notifier        Notifier
	mirror          storage.Mirror
	clock           utils.Clock

	mu      sync.RWMutex
	current *models.User
}

func NewAuthService(
	userRepo *repositories.UserRepository,
	jwtService *utils.JWTService,
	notifier Notifier,
	mirror storage.Mirror,
	clock utils.Clock,
) *AuthService {
	as := &AuthService{
		userRepo:        userRepo,
		jwtService:      jwtService,
		passwordService: utils.NewPasswordService(),
		validator:       utils.NewValidationService(),
		notifier:        notifier,
		mirror:          mirror,
		clock:           clock,
	}
	as.restoreSession()
	return as
}

func (as *AuthService) restoreSession() {
	var snapshot models.AuthSnapshot
	found, err := as.mirror.Get(context.Background(), storage.KeyAuth, &snapshot)
	if err != nil {
		logrus.Warnf("Failed to restore session from mirror: %v", err)
		return
	}
	if found && snapshot.User != nil {
		as.current = snapshot.User
		logrus.Infof("Restored session for user %s", snapshot.User.ID)
	}
}

func (as *AuthService) mirrorSession(ctx context.Context) {
	if err := as.mirror.Put(ctx, storage.KeyAuth, models.AuthSnapshot{User: as.current}); err != nil {
		logrus.Warnf("Failed to mirror session: %v", err)
	}
}

func (as *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewInvalidCredentialsError()
	}

	as.clock.Sleep(ctx, loginDelay)

	user, err := as.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		if user.Password != "" && !as.passwordService.VerifyPassword(user.Password, req.Password) {
			return nil, utils.NewInvalidCredentialsError()
		}
	} else {
		// Mock credential check: unknown but well-formed credentials get a
		// fabricated account, standing in for the real backend.
		user = &models.User{
			ID:    utils.GenerateUUID(),
			Email: req.Email,
			Phone: "+77771234567",
			Name:  "Securix Client",
			Role:  models.RoleClient,
		}
		if err := as.userRepo.Create(ctx, user); err != nil {
			logrus.Errorf("Failed to create fabricated user: %v", err)
			return nil, utils.NewInternalError("Failed to log in")
		}
	}

	return as.openSession(ctx, user)
}

func (as *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError("Invalid registration data")
	}

	as.clock.Sleep(ctx, registerDelay)

	hashedPassword, err := as.passwordService.HashPassword(req.Password)
	if err != nil {
		logrus.Errorf("Failed to hash password: %v", err)
		return nil, utils.NewInternalError("Failed to create account")
	}

	user := &models.User{
		ID:       utils.GenerateUUID(),
		Email:    req.Email,
		Phone:    utils.NormalizePhoneNumber(req.Phone),
		Password: hashedPassword,
		Name:     req.Name,
		Role:     models.RoleClient,
	}

	if err := as.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return as.openSession(ctx, user)
}

func (as *AuthService) openSession(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	tokenPair, err := as.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		logrus.Errorf("Failed to generate tokens: %v", err)
		return nil, utils.NewInternalError("Failed to generate authentication tokens")
	}

	as.mu.Lock()
	as.current = user
	as.mirrorSession(ctx)
	as.mu.Unlock()

	response := *user
	response.Password = ""

	return &models.AuthResponse{
		User:         response,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// RefreshTokens exchanges a valid refresh token for a fresh pair and reopens
// the session for its user.
func (as *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := as.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, utils.NewUnauthorizedError("Invalid refresh token")
	}

	user, err := as.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, utils.NewUnauthorizedError("Invalid refresh token")
	}

	tokenPair, err := as.jwtService.RefreshToken(refreshToken)
	if err != nil {
		return nil, utils.NewUnauthorizedError("Invalid refresh token")
	}

	as.mu.Lock()
	as.current = user
	as.mirrorSession(ctx)
	as.mu.Unlock()

	response := *user
	response.Password = ""

	return &models.AuthResponse{
		User:         response,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		TokenType:    tokenPair.TokenType,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// Logout clears the session slot unconditionally.
func (as *AuthService) Logout(ctx context.Context) {
	as.mu.Lock()
	as.current = nil
	as.mirrorSession(ctx)
	as.mu.Unlock()
}

// CurrentUser returns the session slot, nil when logged out.
func (as *AuthService) CurrentUser() *models.User {
	as.mu.RLock()
	defer as.mu.RUnlock()

	if as.current == nil {
		return nil
	}
	clone := *as.current
	clone.Password = ""
	return &clone
}

func (as *AuthService) IsAuthenticated() bool {
	return as.CurrentUser() != nil
}

// UpdateProfile merges the provided fields into the current user.
func (as *AuthService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return nil, utils.NewValidationError("Invalid profile data")
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	if as.current == nil {
		return nil, utils.NewNotAuthenticatedError()
	}

	as.clock.Sleep(ctx, updateProfileDelay)

	updated := *as.current
	if req.Name != "" {
		updated.Name = req.Name
	}
	if req.Phone != "" {
		phone := utils.NormalizePhoneNumber(req.Phone)
		if owner, err := as.userRepo.GetByPhone(ctx, phone); err == nil && owner.ID != updated.ID {
			return nil, utils.NewConflictError("User with this phone number already exists")
		}
		updated.Phone = phone
	}
	if req.Avatar != "" {
		updated.Avatar = req.Avatar
	}
	if req.EmergencyContacts != nil {
		for i := range req.EmergencyContacts {
			if req.EmergencyContacts[i].ID == "" {
				req.EmergencyContacts[i].ID = utils.GenerateUUID()
			}
		}
		updated.EmergencyContacts = req.EmergencyContacts
	}

	if err := as.userRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	as.current = &updated
	as.mirrorSession(ctx)

	clone := updated
	clone.Password = ""
	return &clone, nil
}

// SetSubscriptionRef updates the subscription summary on the current user.
// Called by the subscription service after plan changes; a no-op when logged
// out since the subscription slot is not tied to a session.
func (as *AuthService) SetSubscriptionRef(ctx context.Context, ref *models.SubscriptionRef) {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.current == nil {
		return
	}
	updated := *as.current
	updated.Subscription = ref
	if err := as.userRepo.Update(ctx, &updated); err != nil {
		logrus.Warnf("Failed to update subscription ref: %v", err)
		return
	}
	as.current = &updated
	as.mirrorSession(ctx)
}

// SendVerificationCode stores a random 6-digit code for the phone and hands
// it to the notifier.
func (as *AuthService) SendVerificationCode(ctx context.Context, req models.SendCodeRequest) error {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return utils.NewValidationError("Invalid phone number")
	}

	phone := utils.NormalizePhoneNumber(req.Phone)
	code := utils.GenerateVerificationCode()

	if err := as.mirror.Put(ctx, storage.KeySMSCodePrefix+phone, code); err != nil {
		logrus.Errorf("Failed to store verification code: %v", err)
		return utils.NewInternalError("Failed to send verification code")
	}

	return as.notifier.SendSMS(ctx, phone, "Securix verification code: "+code)
}

// VerifyCode checks a previously sent code. Codes are single-use.
func (as *AuthService) VerifyCode(ctx context.Context, req models.VerifyCodeRequest) error {
	if validationErrors := as.validator.ValidateStruct(req); len(validationErrors) > 0 {
		return utils.NewValidationError("Invalid verification request")
	}

	phone := utils.NormalizePhoneNumber(req.Phone)
	var stored string
	found, err := as.mirror.Get(ctx, storage.KeySMSCodePrefix+phone, &stored)
	if err != nil {
		logrus.Errorf("Failed to read verification code: %v", err)
		return utils.NewInternalError("Failed to verify code")
	}
	if !found || stored != req.Code {
		return utils.NewVerificationCodeError()
	}

	if err := as.mirror.Delete(ctx, storage.KeySMSCodePrefix+phone); err != nil {
		logrus.Warnf("Failed to delete verification code: %v", err)
	}
	return nil
}
