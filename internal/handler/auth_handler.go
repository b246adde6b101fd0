package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"usuarios/internal/errors"
	"usuarios/internal/logging"
	"usuarios/internal/service"
)

// AuthHandler handles the registration and login endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// CredentialsRequest is the body of /register and /login.
// Older clients send the password as "contraseña"; "password" wins when both are set.
type CredentialsRequest struct {
	Mail       string `json:"mail" example:"a@x.com"`
	Password   string `json:"password" example:"secret"`
	Contrasena string `json:"contraseña" swaggerignore:"true"`
}

type credentials struct {
	Mail     string `validate:"required"`
	Password string `validate:"required"`
}

func (r CredentialsRequest) credentials() credentials {
	password := r.Password
	if password == "" {
		password = r.Contrasena
	}
	return credentials{Mail: r.Mail, Password: password}
}

// RegisterResponse is returned when a user is created.
type RegisterResponse struct {
	Message string `json:"message" example:"Usuario creado con éxito"`
	ID      uint   `json:"id" example:"1"`
}

// LoginResponse is returned on a successful login. No session is issued.
type LoginResponse struct {
	Message string `json:"message" example:"Login exitoso"`
	UserID  uint   `json:"userId" example:"1"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Mail and password"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	creds, err := h.bind(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), creds.Mail, creds.Password)
	if err != nil {
		return h.fail(c, "register", err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: errors.MsgUserCreated,
		ID:      user.ID,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Mail and password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	creds, err := h.bind(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Login(c.Request().Context(), creds.Mail, creds.Password)
	if err != nil {
		return h.fail(c, "login", err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: errors.MsgLoginSuccessful,
		UserID:  user.ID,
	})
}

func (h *AuthHandler) bind(c echo.Context) (credentials, error) {
	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return credentials{}, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: errors.MsgInvalidBody,
			Code:  "INVALID_REQUEST",
		})
	}

	creds := req.credentials()
	if err := c.Validate(&creds); err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrValidation)
		return credentials{}, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return creds, nil
}

// fail maps err to its HTTP response. Internal causes are logged, never returned.
func (h *AuthHandler) fail(c echo.Context, op string, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if errors.IsInternal(err) {
		logging.FromContext(h.log, c).Error(op+" failed", "err", err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
