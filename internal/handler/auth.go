package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/bookboxapp/bookbox/internal/model"
	"github.com/bookboxapp/bookbox/internal/response"
	"github.com/bookboxapp/bookbox/internal/service"
	"github.com/bookboxapp/bookbox/internal/validation"
)

type authHandler struct {
	authService *service.AuthService
	validator   *validation.RequestValidator
}

func NewAuthHandler(authService *service.AuthService, validator *validation.RequestValidator) *authHandler {
	return &authHandler{
		authService: authService,
		validator:   validator,
	}
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=12,max=72"`
	Username  string `json:"username" validate:"required,min=3,max=30"`
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Username, req.FirstName, req.LastName)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.issueSession(w, user)

	response.Created(w, toUserDTO(user))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.issueSession(w, user)

	response.Success(w, toUserDTO(user))
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	response.NoContent(w)
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *authHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	err := h.authService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Same answer whether or not the email exists
	response.Success(w, map[string]string{
		"message": "if an account exists for that email, a reset link has been sent",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

func (h *authHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, h.validator, &req); err != nil {
		response.HandleError(w, err)
		return
	}

	user, err := h.authService.ResetPassword(r.Context(), req.Token, req.Password)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.issueSession(w, user)

	response.Success(w, toUserDTO(user))
}

// issueSession mints a JWT for the user and sets the session cookie.
func (h *authHandler) issueSession(w http.ResponseWriter, user *model.User) {
	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate jwt", "error", err, "user_id", user.ID)
		return
	}
	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))
}
