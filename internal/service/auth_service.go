package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/techgear-vn/techgear-api/internal/config"
	"github.com/techgear-vn/techgear-api/internal/constants"
	"github.com/techgear-vn/techgear-api/internal/logger"
	"github.com/techgear-vn/techgear-api/internal/models"
	"github.com/techgear-vn/techgear-api/internal/queue"
	"github.com/techgear-vn/techgear-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const verificationTokenTTL = 24 * time.Hour

// AuthService owns accounts and sessions.
type AuthService struct {
	cfg         *config.Config
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewAuthService creates the auth service.
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, queueClient *queue.Client) *AuthService {
	return &AuthService{
		cfg:         cfg,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// HashPassword hashes with bcrypt.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against its hash.
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword checks the password policy.
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims is the session token payload.
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a session token for the user.
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates and decodes a session token.
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// RegisterInput is the account creation payload.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates an account and queues the verification email.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidCredentials
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         constants.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID, constants.TokenPurposeVerifyEmail)
	if err != nil {
		logger.Warnw("verification_token_issue_failed", "user_id", user.ID, "error", err)
		return user, nil
	}
	s.enqueueEmail(user, token, constants.TokenPurposeVerifyEmail)
	return user, nil
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.userRepo.TouchLastLogin(user.ID); err != nil {
		logger.Warnw("last_login_update_failed", "user_id", user.ID, "error", err)
	}
	return user, token, expiresAt, nil
}

// VerifyEmail consumes a verification token and marks the account.
func (s *AuthService) VerifyEmail(token string) error {
	row, err := s.userRepo.ConsumeToken(strings.TrimSpace(token), constants.TokenPurposeVerifyEmail)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrTokenInvalid
	}
	return s.userRepo.MarkEmailVerified(row.UserID)
}

// RequestPasswordReset queues a reset email. Unknown addresses are
// silently accepted so the endpoint does not leak which emails exist.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	token, err := s.issueToken(user.ID, constants.TokenPurposeResetPassword)
	if err != nil {
		return err
	}
	s.enqueueEmail(user, token, constants.TokenPurposeResetPassword)
	return nil
}

// ResetPassword consumes a reset token and replaces the password.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}
	row, err := s.userRepo.ConsumeToken(strings.TrimSpace(token), constants.TokenPurposeResetPassword)
	if err != nil {
		return err
	}
	if row == nil {
		return ErrTokenInvalid
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.Update(row.UserID, map[string]interface{}{"password_hash": hash})
}

// ChangePassword replaces the password after checking the old one.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.Update(userID, map[string]interface{}{"password_hash": hash})
}

func (s *AuthService) issueToken(userID uint, purpose string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)
	err := s.userRepo.CreateToken(&models.VerificationToken{
		UserID:    userID,
		Token:     token,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) enqueueEmail(user *models.User, token, purpose string) {
	if s.queueClient == nil {
		return
	}
	payload := queue.VerificationEmailPayload{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	}
	var err error
	if purpose == constants.TokenPurposeResetPassword {
		err = s.queueClient.EnqueueResetPasswordEmail(payload)
	} else {
		err = s.queueClient.EnqueueVerificationEmail(payload)
	}
	if err != nil {
		logger.Warnw("account_email_enqueue_failed", "user_id", user.ID, "purpose", purpose, "error", err)
	}
}
