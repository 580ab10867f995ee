// controllers/auth_controller.go
package controllers

import (
	"securix/models"
	"securix/services"
	"securix/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Register handles user registration
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	response, err := ac.authService.Register(c.Request.Context(), req)
	if err != nil {
		logrus.Errorf("Registration failed: %v", err)
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", response)
}

// Login handles user authentication
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), req)
	if err != nil {
		logrus.Warnf("Login failed: %v", err)
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Login successful", response)
}

// Refresh exchanges a refresh token for a new token pair.
func (ac *AuthController) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	response, err := ac.authService.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Token refreshed", response)
}

// Logout clears the session slot. Never fails.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.authService.Logout(c.Request.Context())
	utils.SuccessResponse(c, "Logged out", nil)
}

// Me returns the current session user.
func (ac *AuthController) Me(c *gin.Context) {
	user := ac.authService.CurrentUser()
	if user == nil {
		utils.UnauthorizedResponse(c, "Not authenticated")
		return
	}
	utils.SuccessResponse(c, "Current user", user)
}

// UpdateProfile merges provided fields into the current user.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	user, err := ac.authService.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated", user)
}

// SendCode issues an SMS verification code.
func (ac *AuthController) SendCode(c *gin.Context) {
	var req models.SendCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := ac.authService.SendVerificationCode(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Verification code sent", nil)
}

// VerifyCode checks an SMS verification code.
func (ac *AuthController) VerifyCode(c *gin.Context) {
	var req models.VerifyCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if err := ac.authService.VerifyCode(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Phone number verified", nil)
}
