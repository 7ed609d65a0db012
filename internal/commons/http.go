package commons

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"barorder/internal/dto"
	apperrors "barorder/internal/errors"
)

type traceIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceID returns the request's trace id, or a fresh one outside a traced
// request.
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError maps an application error to its HTTP status and a short
// user-facing body. Store failures are logged with their cause here.
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	traceID := TraceID(r.Context())
	logger = logger.With(zap.String("traceId", traceID))

	resp := dto.ErrorResponse{
		TraceID:   traceID,
		Timestamp: time.Now().UTC(),
	}

	// A store failure hides whatever it wraps, so it is matched first.
	if rc, ok := apperrors.IsRemoteCallError(err); ok {
		logger.Error("store call failed", zap.Error(err))
		resp.Status = http.StatusInternalServerError
		resp.Code = rc.Code
		resp.Message = rc.Message
	} else if ve, ok := apperrors.IsValidationError(err); ok {
		resp.Status = http.StatusBadRequest
		resp.Code = ve.Code
		resp.Message = ve.Message
		resp.Details = ve.Details
	} else if nf, ok := apperrors.IsNotFoundError(err); ok {
		resp.Status = http.StatusNotFound
		resp.Code = "NOT_FOUND"
		resp.Message = nf.Message
	} else if ce, ok := apperrors.IsConflictError(err); ok {
		resp.Status = http.StatusConflict
		resp.Code = ce.Code
		resp.Message = ce.Message
	} else if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		resp.Status = http.StatusUnauthorized
		resp.Code = "UNAUTHORIZED"
		resp.Message = ue.Message
	} else if de, ok := apperrors.IsDeadlockError(err); ok {
		logger.Warn("giving up after repeated deadlocks", zap.Error(err))
		resp.Status = http.StatusServiceUnavailable
		resp.Code = "DEADLOCK"
		resp.Message = de.Message
	} else {
		logger.Error("unexpected error", zap.Error(err))
		resp.Status = http.StatusInternalServerError
		resp.Code = "INTERNAL_ERROR"
		resp.Message = "an unexpected error occurred"
	}

	WriteJSON(w, resp.Status, resp, logger)
}

func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
	}
	return nil
}
