package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"barorder/internal/commons"
	"barorder/internal/dto"
	apperrors "barorder/internal/errors"
)

type LoginService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error)
}

type Controller struct {
	auth   LoginService
	logger *zap.Logger
}

func NewController(auth LoginService, logger *zap.Logger) *Controller {
	return &Controller{auth: auth, logger: logger}
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := commons.DecodeJSON(r, &req); err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	var details []apperrors.ValidationDetail
	if strings.TrimSpace(req.Username) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "username", Message: "username is required"})
	}
	if req.Password == "" {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password is required"})
	}
	if len(details) > 0 {
		commons.WriteError(w, r, c.logger, apperrors.NewValidationError("validation failed", details...))
		return
	}

	token, expiresAt, err := c.auth.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		commons.WriteError(w, r, c.logger, err)
		return
	}

	commons.WriteJSON(w, http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt.UTC()}, c.logger)
}
