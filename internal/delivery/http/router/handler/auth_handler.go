// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/VaibhavPTM/resort-sas-project/internal/delivery/http/middleware"
	"github.com/VaibhavPTM/resort-sas-project/internal/delivery/http/response"
	domainerrors "github.com/VaibhavPTM/resort-sas-project/internal/domain/errors"
	"github.com/VaibhavPTM/resort-sas-project/internal/domain/entity"
	"github.com/VaibhavPTM/resort-sas-project/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// signupRequest is the POST /signup payload.
type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

// loginRequest is the POST /login payload. No minimum length here; a short
// password is simply a wrong password.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// googleLoginRequest is the POST /google payload.
type googleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// userResponse is the account shape exposed over the API.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Provider  string    `json:"provider"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// sessionResponse is the payload of every successful authentication.
type sessionResponse struct {
	User         userResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

func toUserResponse(account *entity.Account) userResponse {
	return userResponse{
		ID:        account.ID.String(),
		Email:     account.Email,
		Name:      account.Name,
		AvatarURL: account.AvatarURL,
		Provider:  account.AuthProvider.String(),
		IsActive:  account.IsActive,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func toSessionResponse(output *usecase.AuthOutput) sessionResponse {
	return sessionResponse{
		User:         toUserResponse(output.User),
		Token:        output.AccessToken,
		RefreshToken: output.RefreshToken,
	}
}

// Signup handles the account registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Signup(c.Request().Context(), &usecase.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSessionResponse(output), "Account created successfully")
}

// Login handles the password login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionResponse(output), "Login successful")
}

// GoogleLogin handles sign-in with a Google ID token.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid Google sign-in input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.GoogleLogin(c.Request().Context(), &usecase.GoogleLoginInput{
		Credential: req.Credential,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionResponse(output), "Google sign-in successful")
}

// Me returns the account behind the current session. The auth middleware has
// already validated the token and loaded the account.
func (h *AuthHandler) Me(c echo.Context) error {
	account, ok := c.Get(middleware.ContextKeyAccount).(*entity.Account)
	if !ok {
		return domainerrors.ErrAuthenticationRequired.WrapMessage("no account on context")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"user": toUserResponse(account),
	}, "Session retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, "Service is healthy")
}
