package handler

import (
	"encoding/json"
	"errors"
	"go-voice-api/common"
	"go-voice-api/logger"
	"go-voice-api/model"
	"go-voice-api/service"
	"net/http"
)

type AuthHandler struct {
	service service.IAuthService
}

func NewAuthHandler(service service.IAuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup godoc
// @Summary      Register a new user
// @Description  Creates an identity and returns an access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.SignupRequest true "signup payload"
// @Success      201  {object}  model.TokenPair
// @Failure      409  {object}  common.AppError
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignupRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.service.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return common.NewConflictError("Email already registered", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create user", err)
	}

	logger.Log.WithField("email", req.Email).Info("Signup request completed")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Signin godoc
// @Summary      Authenticate a user
// @Description  Verifies credentials and returns a fresh token pair, rotating the stored refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.SigninRequest true "signin payload"
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  common.AppError
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SigninRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.service.Signin(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewUnauthorizedError(nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not sign in", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Refresh godoc
// @Summary      Rotate a session
// @Description  Exchanges a valid refresh token for a new pair; the presented token becomes unusable
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RefreshRequest true "refresh payload"
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  common.AppError
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewUnauthorizedError(nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not refresh session", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Me godoc
// @Summary      Current user
// @Description  Returns the identity behind the presented access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.User
// @Failure      401  {object}  common.AppError
// @Router       /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, appErr := userFrom(r)
	if appErr != nil {
		return appErr
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
	return nil
}
