package auth

import (
	"errors"
	"fmt"

	"fleetflow/logger"
	"fleetflow/middleware"
	userModel "fleetflow/models/user"
	"fleetflow/services/authtoken"
	"fleetflow/types"
	authTypes "fleetflow/types/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController handles login, refresh and session management
type AuthController struct {
	DB     *gorm.DB
	Tokens *authtoken.Service
	Logger *logger.AsyncLogger
}

// NewAuthController creates a new auth controller
func NewAuthController(db *gorm.DB, tokens *authtoken.Service, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{DB: db, Tokens: tokens, Logger: asyncLogger}
}

// Login verifies credentials and opens a session
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	pair, usr, err := ac.Tokens.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authtoken.ErrInvalidCredentials) || errors.Is(err, authtoken.ErrUserInactive) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Invalid username or password",
			})
		}
		logger.Error("Login failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	ac.Logger.Log(logger.RequestLogEntryRedacted(c))
	logger.Success("User logged in: " + usr.Username)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Login successful",
		Data: authTypes.LoginResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresAt:    pair.ExpiresAt,
			User:         usr,
		},
	})
}

// Refresh rotates the refresh token and mints a new access token
func (ac *AuthController) Refresh(c *fiber.Ctx) error {
	var req authTypes.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	pair, err := ac.Tokens.Refresh(req.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid or expired refresh token",
		})
	}

	ac.Logger.Log(logger.RequestLogEntryRedacted(c))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Token refreshed",
		Data: authTypes.LoginResponse{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresAt:    pair.ExpiresAt,
		},
	})
}

// Me returns the authenticated user's profile
func (ac *AuthController) Me(c *fiber.Ctx) error {
	claims := middleware.SessionFromCtx(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid session",
		})
	}

	var usr userModel.User
	if err := ac.DB.First(&usr, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "User not found",
			})
		}
		logger.Error("Failed to load user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    usr,
	})
}

// Logout revokes the session backing the current token
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	claims := middleware.SessionFromCtx(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid session",
		})
	}

	if err := ac.Tokens.Revoke(claims.SessionID); err != nil {
		logger.Error("Failed to revoke session", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to log out",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Logged out",
	})
}

// Register creates a new dashboard user (admin only)
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	hash, err := authtoken.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	newUser := userModel.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         userModel.Role(req.Role),
		Active:       true,
	}
	if req.Email != "" {
		newUser.Email = &req.Email
	}

	if err := ac.DB.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Username or email already taken",
		})
	}

	ac.Logger.Log(logger.RequestLogEntryRedacted(c))
	logger.Success(fmt.Sprintf("User created successfully with ID: %d", newUser.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "User created successfully",
		Data:    newUser,
	})
}
