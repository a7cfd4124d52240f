package v1

import (
	"net/http"

	"github.com/profyt7/carelinkai-sub005/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// AuthHandler defines the interface for account and session endpoints
type AuthHandler interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Me(ctx *gin.Context)
	ChangePassword(ctx *gin.Context)
	ForgotPassword(ctx *gin.Context)
	ResetPassword(ctx *gin.Context)
	SendVerification(ctx *gin.Context)
	ResendVerification(ctx *gin.Context)
	VerifyEmail(ctx *gin.Context)
	SetupTwoFactor(ctx *gin.Context)
	EnableTwoFactor(ctx *gin.Context)
	DisableTwoFactor(ctx *gin.Context)
}

type authHandler struct {
	authService      users.AuthService
	accountService   users.AccountService
	userService      users.UserService
	twoFactorService users.TwoFactorService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	authService users.AuthService,
	accountService users.AccountService,
	userService users.UserService,
	twoFactorService users.TwoFactorService,
) AuthHandler {
	return &authHandler{
		authService:      authService,
		accountService:   accountService,
		userService:      userService,
		twoFactorService: twoFactorService,
	}
}

// Register handles the POST request creating a self-service account
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body RegisterRequest true "Account data"
// @Success 201 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (handler *authHandler) Register(ctx *gin.Context) {
	var request RegisterRequest
	if !bindRequest(ctx, &request) {
		return
	}

	user, err := handler.authService.Register(ctx.Request.Context(), &users.RegisterInput{
		Email:     request.Email,
		Password:  request.Password,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Phone:     request.Phone,
		Role:      users.Role(request.Role),
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newUserResponse(user))
}

// Login handles the POST request exchanging credentials for a bearer token
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body LoginRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (handler *authHandler) Login(ctx *gin.Context) {
	var request LoginRequest
	if !bindRequest(ctx, &request) {
		return
	}

	session, err := handler.authService.Login(ctx.Request.Context(), &users.LoginInput{
		Email:    request.Email,
		Password: request.Password,
		Code:     request.Code,
	})
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      newUserResponse(session.User),
	})
}

// Me returns the account of the caller
func (handler *authHandler) Me(ctx *gin.Context) {
	user, err := handler.userService.GetByID(ctx.Request.Context(), currentPrincipal(ctx).ID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// ChangePassword replaces the caller's password after checking the current one
func (handler *authHandler) ChangePassword(ctx *gin.Context) {
	var request ChangePasswordRequest
	if !bindRequest(ctx, &request) {
		return
	}

	if err := handler.authService.ChangePassword(ctx.Request.Context(), currentPrincipal(ctx), request.CurrentPassword, request.NewPassword); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: "password changed"})
}

// mailedLinkMessage does not reveal whether the address is registered
const mailedLinkMessage = "If your email is registered, you will receive instructions shortly."

// ForgotPassword handles the POST request mailing a password reset link
// @Summary Request a password reset link
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body EmailRequest true "Account email"
// @Success 200 {object} InfoResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/forgot-password [post]
func (handler *authHandler) ForgotPassword(ctx *gin.Context) {
	var request EmailRequest
	if !bindRequest(ctx, &request) {
		return
	}
	if err := handler.accountService.ForgotPassword(ctx.Request.Context(), request.Email); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: mailedLinkMessage})
}

// ResetPassword handles the POST request redeeming a reset token
// @Summary Reset a password with a mailed token
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} InfoResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/reset-password [post]
func (handler *authHandler) ResetPassword(ctx *gin.Context) {
	var request ResetPasswordRequest
	if !bindRequest(ctx, &request) {
		return
	}
	if err := handler.accountService.ResetPassword(ctx.Request.Context(), request.Token, request.NewPassword); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: "password reset"})
}

// SendVerification mails the caller a verification link
func (handler *authHandler) SendVerification(ctx *gin.Context) {
	if err := handler.accountService.SendVerification(ctx.Request.Context(), currentPrincipal(ctx)); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: "verification email sent"})
}

func (handler *authHandler) ResendVerification(ctx *gin.Context) {
	var request EmailRequest
	if !bindRequest(ctx, &request) {
		return
	}
	if err := handler.accountService.ResendVerification(ctx.Request.Context(), request.Email); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: mailedLinkMessage})
}

// VerifyEmail handles the POST request redeeming a verification token
// @Summary Verify an email address
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body VerifyEmailRequest true "Verification token"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/verify-email [post]
func (handler *authHandler) VerifyEmail(ctx *gin.Context) {
	var request VerifyEmailRequest
	if !bindRequest(ctx, &request) {
		return
	}
	user, err := handler.accountService.VerifyEmail(ctx.Request.Context(), request.Token)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newUserResponse(user))
}

// SetupTwoFactor issues a new authenticator secret and backup codes.
// Two-factor stays off until EnableTwoFactor confirms a code.
func (handler *authHandler) SetupTwoFactor(ctx *gin.Context) {
	setup, err := handler.twoFactorService.Setup(ctx.Request.Context(), currentPrincipal(ctx))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, TwoFactorSetupResponse{
		Secret:      setup.Secret,
		OTPAuthURL:  setup.OTPAuthURL,
		BackupCodes: setup.BackupCodes,
	})
}

func (handler *authHandler) EnableTwoFactor(ctx *gin.Context) {
	var request TwoFactorCodeRequest
	if !bindRequest(ctx, &request) {
		return
	}
	if err := handler.twoFactorService.Enable(ctx.Request.Context(), currentPrincipal(ctx), request.Code); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: "two-factor authentication enabled"})
}

func (handler *authHandler) DisableTwoFactor(ctx *gin.Context) {
	var request TwoFactorCodeRequest
	if !bindRequest(ctx, &request) {
		return
	}
	if err := handler.twoFactorService.Disable(ctx.Request.Context(), currentPrincipal(ctx), request.Code); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: "two-factor authentication disabled"})
}
