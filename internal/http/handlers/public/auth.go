package public

import (
	"errors"
	"net/http"
	"time"

	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/http/response"
	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UserResponse is the public account view.
type UserResponse struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Image:         user.Image,
		Role:          user.Role,
		EmailVerified: user.EmailVerifiedAt != nil,
		CreatedAt:     user.CreatedAt,
	}
}

// RegisterRequest is the account signup payload.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	service.CaptchaVerifyPayload
}

// Register creates an account and queues the verification email.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneRegister, req.CaptchaVerifyPayload); err != nil {
		respondCaptchaError(c, err)
		return
	}

	user, err := h.AuthService.Register(service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusBadRequest, "Email is already registered", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusBadRequest, "Invalid email address", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Registration failed", err)
		}
		return
	}
	response.Created(c, toUserResponse(user))
}

// LoginRequest is the signin payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	service.CaptchaVerifyPayload
}

// Login exchanges credentials for a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaVerifyPayload); err != nil {
		respondCaptchaError(c, err)
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Login failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       toUserResponse(user),
	})
}

// VerifyEmailRequest carries the emailed verification token.
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyEmail confirms an account's email address.
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.AuthService.VerifyEmail(req.Token); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenInvalid):
			respondError(c, http.StatusBadRequest, "Verification link is invalid or expired", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Verification failed", err)
		}
		return
	}
	response.Message(c, "Email verified")
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword queues a password reset email. The response is the same
// whether or not the address exists.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.AuthService.RequestPasswordReset(req.Email); err != nil {
		respondError(c, http.StatusInternalServerError, "Request failed", err)
		return
	}
	response.Message(c, "If the email is registered, a reset link has been sent")
}

// ResetPasswordRequest carries the reset token and the new password.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetPassword sets a new password from a reset token.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.AuthService.ResetPassword(req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenInvalid):
			respondError(c, http.StatusBadRequest, "Reset link is invalid or expired", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, http.StatusBadRequest, err.Error(), nil)
		default:
			respondError(c, http.StatusInternalServerError, "Reset failed", err)
		}
		return
	}
	response.Message(c, "Password updated")
}

// ChangePasswordRequest changes the password of a signed-in user.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword updates the current user's password.
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.AuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, http.StatusBadRequest, "Current password is incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, http.StatusBadRequest, err.Error(), nil)
		default:
			respondError(c, http.StatusInternalServerError, "Password change failed", err)
		}
		return
	}
	response.Message(c, "Password updated")
}

// Me returns the current account.
func (h *Handler) Me(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetByID(uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, http.StatusNotFound, "Account not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Fetch failed", err)
		}
		return
	}
	response.Success(c, toUserResponse(user))
}

// UpdateProfileRequest edits the display fields of the current account.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// UpdateProfile updates the current account's display fields.
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	user, err := h.UserService.UpdateProfile(uid, req.Name, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, http.StatusNotFound, "Account not found", nil)
		default:
			respondError(c, http.StatusInternalServerError, "Update failed", err)
		}
		return
	}
	response.Success(c, toUserResponse(user))
}

func respondCaptchaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCaptchaRequired):
		respondError(c, http.StatusBadRequest, "Captcha is required", nil)
	case errors.Is(err, service.ErrCaptchaInvalid):
		respondError(c, http.StatusBadRequest, "Captcha answer is incorrect", nil)
	default:
		respondError(c, http.StatusInternalServerError, "Captcha verification failed", err)
	}
}
