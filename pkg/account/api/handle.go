package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/simple-auth/simple-auth/pkg/account"
	"github.com/simple-auth/simple-auth/pkg/notification"
)

// Handle exposes the account flows over HTTP
type Handle struct {
	service  *account.Service
	notifier *notification.Manager
	baseURL  string
	auth     *jwtauth.JWTAuth
}

// Option configures the handle
type Option func(*Handle)

// WithNotifier sets the notification manager used for best-effort
// delivery of verification links and OTP codes
func WithNotifier(manager *notification.Manager) Option {
	return func(h *Handle) {
		h.notifier = manager
	}
}

// WithBaseURL sets the base URL used to build verification links
func WithBaseURL(baseURL string) Option {
	return func(h *Handle) {
		h.baseURL = baseURL
	}
}

// WithAuth guards the password rotation and lookup routes with a bearer
// token verifier
func WithAuth(auth *jwtauth.JWTAuth) Option {
	return func(h *Handle) {
		h.auth = auth
	}
}

// NewHandle creates a new account API handle
func NewHandle(service *account.Service, opts ...Option) *Handle {
	h := &Handle{service: service}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes registers the account endpoints
func (h *Handle) Routes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/verify-email", h.VerifyEmail)
	r.Post("/password/reset", h.RequestOtp)
	r.Post("/password/reset/confirm", h.ConfirmOtp)
	r.Post("/oauth/{provider}", h.ProviderLogin)

	r.Group(func(r chi.Router) {
		if h.auth != nil {
			r.Use(jwtauth.Verifier(h.auth))
			r.Use(jwtauth.Authenticator(h.auth))
		}
		r.Get("/users/{email}", h.Lookup)
		r.Put("/password", h.RotatePassword)
	})
}

// Register handles POST /register
func (h *Handle) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Email and password are required"})
		return
	}

	acct, err := h.service.Register(r.Context(), account.RegisterParams{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		CountryCode: req.CountryCode,
		Password:    req.Password,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.sendVerificationEmail(acct)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toAccountResponse(acct))
}

// VerifyEmail handles POST /verify-email
func (h *Handle) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Token is required"})
		return
	}

	if err := h.service.VerifyEmailToken(r.Context(), req.Token); err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, VerifyEmailResponse{Message: "Email verified successfully"})
}

// Lookup handles GET /users/{email}
func (h *Handle) Lookup(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	acct, err := h.service.FindByEmail(r.Context(), email)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toAccountResponse(acct))
}

// RotatePassword handles PUT /password
func (h *Handle) RotatePassword(w http.ResponseWriter, r *http.Request) {
	var req RotatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	acct, err := h.service.RotatePassword(r.Context(), req.Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toAccountResponse(acct))
}

// RequestOtp handles POST /password/reset
func (h *Handle) RequestOtp(w http.ResponseWriter, r *http.Request) {
	var req RequestOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Email is required"})
		return
	}

	acct, err := h.service.RequestOtp(r.Context(), req.Email)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.sendOtpEmail(acct)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, RequestOtpResponse{Message: "Password reset code sent"})
}

// ConfirmOtp handles POST /password/reset/confirm
func (h *Handle) ConfirmOtp(w http.ResponseWriter, r *http.Request) {
	var req ConfirmOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.service.ConfirmOtpReset(r.Context(), req.Email, req.Otp, req.NewPassword); err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, ConfirmOtpResponse{Message: "Password has been reset"})
}

// ProviderLogin handles POST /oauth/{provider}
func (h *Handle) ProviderLogin(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")

	var req ProviderLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: "Invalid request body"})
		return
	}

	proj, err := h.service.ReconcileProviderLogin(r.Context(), providerName, req.Profile, req.AccessToken)
	if err != nil {
		slog.Error("Provider login failed", "provider", providerName, "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Error: err.Error()})
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, proj)
}

// renderError maps flow failures onto status codes
func (h *Handle) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "An unexpected error occurred"

	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		status = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, account.ErrEmailTaken), errors.Is(err, account.ErrPhoneTaken):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, account.ErrInvalidToken), errors.Is(err, account.ErrInvalidPassword):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, account.ErrInvalidOtp), errors.Is(err, account.ErrOtpExpired):
		status = http.StatusNotAcceptable
		message = err.Error()
	default:
		slog.Error("Request failed", "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message})
}

// sendVerificationEmail delivers the verification link, best effort
func (h *Handle) sendVerificationEmail(acct account.Account) {
	if h.notifier == nil {
		return
	}

	err := h.notifier.Send(notification.EmailVerifyNotice, notification.NotificationData{
		To: acct.Email,
		Data: map[string]string{
			"DisplayName":      acct.DisplayName,
			"VerificationLink": fmt.Sprintf("%s/verify-email?token=%s", h.baseURL, acct.PendingToken),
			"ExpiryMinutes":    "5",
		},
	})
	if err != nil {
		slog.Error("Failed to send verification email", "account_id", acct.ID, "error", err)
	}
}

// sendOtpEmail delivers the reset code, best effort
func (h *Handle) sendOtpEmail(acct account.Account) {
	if h.notifier == nil || acct.Otp == nil {
		return
	}

	err := h.notifier.Send(notification.ResetOtpNotice, notification.NotificationData{
		To: acct.Email,
		Data: map[string]string{
			"DisplayName":   acct.DisplayName,
			"Otp":           strconv.FormatInt(acct.Otp.Code, 10),
			"ExpiryMinutes": "15",
		},
	})
	if err != nil {
		slog.Error("Failed to send otp email", "account_id", acct.ID, "error", err)
	}
}

// toAccountResponse maps an account onto its external view
func toAccountResponse(acct account.Account) AccountResponse {
	var resp AccountResponse
	copier.Copy(&resp, &acct)
	resp.ID = acct.ID.String()
	return resp
}
