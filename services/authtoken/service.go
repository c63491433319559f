package authtoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"fleetflow/constants"
	sessionModel "fleetflow/models/session"
	userModel "fleetflow/models/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrSessionRevoked     = errors.New("session revoked or expired")
)

// Claims is the resolved content of a verified access token
type Claims struct {
	UserID      uint
	Username    string
	Role        userModel.Role
	Permissions []string
	SessionID   string
	Exp         int64
}

// TokenPair is what a successful login or refresh returns
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64
}

// Service issues and verifies tokens against persisted sessions
type Service struct {
	db         *gorm.DB
	jwtSecret  []byte
	accessExp  time.Duration
	refreshExp time.Duration
}

// NewService creates a new token service from environment configuration
func NewService(db *gorm.DB) *Service {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default-secret-key-change-in-production"
	}

	accessExp := 15 * time.Minute
	if v := os.Getenv("JWT_ACCESS_EXPIRY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			accessExp = parsed
		}
	}

	refreshExp := 7 * 24 * time.Hour
	if v := os.Getenv("JWT_REFRESH_EXPIRY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			refreshExp = parsed
		}
	}

	return &Service{
		db:         db,
		jwtSecret:  []byte(secret),
		accessExp:  accessExp,
		refreshExp: refreshExp,
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword checks if a password matches a hash
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login verifies credentials and opens a new session
func (s *Service) Login(username, password string) (*TokenPair, *userModel.User, error) {
	var usr userModel.User
	if err := s.db.Where("username = ?", username).First(&usr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !usr.Active {
		return nil, nil, ErrUserInactive
	}

	if !CheckPassword(password, usr.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.openSession(&usr)
	if err != nil {
		return nil, nil, err
	}
	return pair, &usr, nil
}

// Refresh rotates the refresh token and mints a fresh access token
func (s *Service) Refresh(refreshToken string) (*TokenPair, error) {
	hash := hashRefreshToken(refreshToken)

	var sess sessionModel.Session
	if err := s.db.Preload("User").Where("refresh_token_hash = ?", hash).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !sess.IsUsable(time.Now()) {
		return nil, ErrSessionRevoked
	}
	if !sess.User.Active {
		return nil, ErrUserInactive
	}

	newRefresh, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	sess.RefreshTokenHash = hashRefreshToken(newRefresh)
	sess.ExpiresAt = time.Now().Add(s.refreshExp)
	if err := s.db.Save(&sess).Error; err != nil {
		return nil, err
	}

	access, expiresAt, err := s.signAccessToken(&sess.User, sess.TokenID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: newRefresh,
		ExpiresAt:    expiresAt,
	}, nil
}

// Revoke closes the session identified by the access token's session id
func (s *Service) Revoke(sessionID string) error {
	return s.db.Model(&sessionModel.Session{}).
		Where("token_id = ?", sessionID).
		Update("revoked", true).Error
}

// ValidateAccess verifies an access token and resolves its claims
func (s *Service) ValidateAccess(tokenString string) (*Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}
	username, ok := mapClaims["username"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	roleStr, ok := mapClaims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	sid, ok := mapClaims["sid"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	exp, ok := mapClaims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	var perms []string
	if raw, ok := mapClaims["permissions"].([]interface{}); ok {
		for _, p := range raw {
			if perm, ok := p.(string); ok {
				perms = append(perms, perm)
			}
		}
	}

	return &Claims{
		UserID:      uint(userID),
		Username:    username,
		Role:        userModel.Role(roleStr),
		Permissions: perms,
		SessionID:   sid,
		Exp:         int64(exp),
	}, nil
}

// SessionActive reports whether the session backing a token is still open
func (s *Service) SessionActive(sessionID string) bool {
	var sess sessionModel.Session
	if err := s.db.Where("token_id = ?", sessionID).First(&sess).Error; err != nil {
		return false
	}
	return sess.IsUsable(time.Now())
}

func (s *Service) openSession(usr *userModel.User) (*TokenPair, error) {
	refresh, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	sess := sessionModel.Session{
		TokenID:          uuid.NewString(),
		UserID:           usr.ID,
		RefreshTokenHash: hashRefreshToken(refresh),
		ExpiresAt:        time.Now().Add(s.refreshExp),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return nil, err
	}

	access, expiresAt, err := s.signAccessToken(usr, sess.TokenID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) signAccessToken(usr *userModel.User, sessionID string) (string, int64, error) {
	perms := usr.Permissions
	if len(perms) == 0 {
		perms = constants.PermissionsForRole(string(usr.Role))
	}

	expiresAt := time.Now().Add(s.accessExp).Unix()
	claims := jwt.MapClaims{
		"user_id":     usr.ID,
		"username":    usr.Username,
		"role":        string(usr.Role),
		"permissions": []string(perms),
		"sid":         sessionID,
		"exp":         expiresAt,
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt, nil
}

func generateRefreshToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
