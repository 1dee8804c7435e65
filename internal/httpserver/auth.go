package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/itineraire-app/auth-service/internal/logging"
	"github.com/itineraire-app/auth-service/internal/service"
	"github.com/itineraire-app/auth-service/internal/transport"
)

const serverErrorMessage = "Erreur du serveur, veuilleur réessayer ultérieurement"

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "JSON incorrect")
	}

	res, err := h.Svc.Register(ctx, req.Identifiant, req.MotDePasse)
	if err != nil {
		return h.errorFromService(c, l, "register_failed", err)
	}

	l.Info("register_successful", "username", req.Identifiant)
	return c.JSON(http.StatusOK, transport.Response{
		Statut:  transport.StatutSucces,
		Message: fmt.Sprintf("Utilisateur %s créé !", req.Identifiant),
		Token:   res.Token,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "JSON incorrect")
	}

	res, err := h.Svc.Login(ctx, req.Identifiant, req.MotDePasse)
	if err != nil {
		return h.errorFromService(c, l, "login_failed", err)
	}

	l.Info("login_successful", "username", req.Identifiant)
	return c.JSON(http.StatusOK, transport.Response{
		Statut:  transport.StatutSucces,
		Message: fmt.Sprintf("Utilisateur %s connecté !", req.Identifiant),
		Token:   res.Token,
	})
}

func (h *AuthHTTP) LogOut(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	var req transport.TokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("logout_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "JSON incorrect")
	}

	if err := h.Svc.LogOut(ctx, req.Jeton); err != nil {
		return h.errorFromService(c, l, "logout_failed", err)
	}

	l.Info("logout_successful")
	return c.JSON(http.StatusOK, transport.Response{
		Statut:  transport.StatutSucces,
		Message: "Utilisateur déconnecté !",
	})
}

func (h *AuthHTTP) Verify(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_verify")

	var req transport.TokenRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("verify_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "JSON incorrect")
	}

	user, err := h.Svc.VerifyToken(ctx, req.Jeton)
	if err != nil {
		return h.errorFromService(c, l, "verify_failed", err)
	}

	return c.JSON(http.StatusOK, transport.Response{
		Statut:  transport.StatutSucces,
		Message: "token validé !",
		Utilisateur: &transport.UserInfo{
			UserID:      user.ID,
			Identifiant: user.Username,
		},
	})
}

func (h *AuthHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_update")

	var req transport.UpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "JSON incorrect")
	}

	if err := h.Svc.UpdateCredentials(ctx, req.Jeton, req.ID, req.Identifiant, req.MotDePasse); err != nil {
		return h.errorFromService(c, l, "update_failed", err)
	}

	l.Info("update_successful", "user_id", req.ID)
	return c.JSON(http.StatusOK, transport.Response{
		Statut:  transport.StatutSucces,
		Message: "Les modifications ont bien été effectuées",
	})
}

// errorFromService maps service errors onto the envelope and status matrix.
// Everything unexpected collapses to the generic 500 so no store or hash
// failure leaks to a client.
func (h *AuthHTTP) errorFromService(c echo.Context, l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "JSON incorrect")
	case errors.Is(err, service.ErrInvalidCredentials):
		l.Warn(event, "status", 401, "error", err)
		return errorJSON(c, http.StatusUnauthorized, "Identifiants incorrects")
	case errors.Is(err, service.ErrUnknownToken):
		l.Warn(event, "status", 401, "error", err)
		return errorJSON(c, http.StatusUnauthorized, "Jeton inconnu")
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "error", err)
		return errorJSON(c, http.StatusConflict, "Nom d'utilisateur déjà utilisé")
	default:
		l.Error(event, "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, serverErrorMessage)
	}
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, transport.Response{
		Statut:  transport.StatutErreur,
		Message: message,
	})
}
